//go:build satdebug

package sat

import "fmt"

// checkInvariants verifies I1-I5 from the data model and panics (the
// documented release behavior for "Internal invariant violation") on the
// first violation found. It is compiled in only under the satdebug build
// tag: release builds never pay for it.
func (s *Solver) checkInvariants() {
	s.checkWatchedLiteralInvariant()
	s.checkTrailUniqueness()
	s.checkAntecedentSoundness()
	s.checkLevelMonotonicity()
	s.checkNoDanglingWatches()
}

// I1: every active clause with >= 2 literals has at least one watched
// literal unassigned or True.
func (s *Solver) checkWatchedLiteralInvariant() {
	check := func(clauses []*Clause) {
		for _, c := range clauses {
			if c.isDeleted() || len(c.literals) < 2 {
				continue
			}
			v0, v1 := s.LitValue(c.literals[0]), s.LitValue(c.literals[1])
			if v0 == False && v1 == False {
				panic(fmt.Sprintf("sat: I1 violated: both watches False in %s", c))
			}
		}
	}
	check(s.constraints)
	check(s.learnts)
}

// I2: every variable appears on the trail at most once.
func (s *Solver) checkTrailUniqueness() {
	seen := make(map[int]bool, len(s.trail))
	for _, l := range s.trail {
		v := l.VarID()
		if seen[v] {
			panic(fmt.Sprintf("sat: I2 violated: variable %d assigned twice on trail", v))
		}
		seen[v] = true
	}
}

// I3: every literal of an antecedent clause other than the asserted one is
// False at a decision level <= the asserted literal's level.
func (s *Solver) checkAntecedentSoundness() {
	for v := 0; v < s.numVars; v++ {
		c := s.assignReasons[v]
		if c == nil || s.assigns[v] == Unknown {
			continue
		}
		lvl := s.assignLevels[v]
		for _, l := range c.literals[1:] {
			if s.LitValue(l) != False {
				panic(fmt.Sprintf("sat: I3 violated: antecedent %s has non-False literal %s", c, l))
			}
			if s.assignLevels[l.VarID()] > lvl {
				panic(fmt.Sprintf("sat: I3 violated: antecedent %s literal assigned after var %d", c, v))
			}
		}
	}
}

// I4: trail positions are non-decreasing in decision level.
func (s *Solver) checkLevelMonotonicity() {
	last := -1
	for _, l := range s.trail {
		lvl := s.assignLevels[l.VarID()]
		if lvl < last {
			panic("sat: I4 violated: trail decision levels decreased")
		}
		last = lvl
	}
}

// I5: every active clause appears in exactly the watch lists of its two
// (or one, for singletons) current watched literals.
func (s *Solver) checkNoDanglingWatches() {
	present := func(lit Literal, c *Clause) bool {
		for _, w := range s.watchers[lit] {
			if w.clause == c {
				return true
			}
		}
		return false
	}
	check := func(clauses []*Clause) {
		for _, c := range clauses {
			if c.isDeleted() || len(c.literals) < 2 {
				continue
			}
			if !present(c.literals[0].Opposite(), c) {
				panic(fmt.Sprintf("sat: I5 violated: %s missing watch at literals[0]", c))
			}
			if !present(c.literals[1].Opposite(), c) {
				panic(fmt.Sprintf("sat: I5 violated: %s missing watch at literals[1]", c))
			}
		}
	}
	check(s.constraints)
	check(s.learnts)
}
