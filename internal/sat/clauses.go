package sat

import "strings"

type status uint8

const (
	statusDeleted   status = 0b001
	statusLearnt    status = 0b010
	statusProtected status = 0b100
)

// Clause is an ordered, duplicate-free list of literals plus the handful of
// fields the solver needs to watch and, for learnt clauses, to score it for
// deletion.
type Clause struct {
	activity float64

	// The clause's literals. Contains at least two literals while the
	// clause is active; nil once the clause has been deleted.
	literals []Literal

	// sliceRef is the pooled backing array literals was allocated from
	// (see clause_pool.go / clause_pool_none.go), kept so Delete can
	// return it.
	sliceRef *[]Literal

	// prevPos resumes the next-watch scan from where the previous one left
	// off, since a clause that was scanned far to find a new watch is
	// likely to need scanning just as far next time. Always in
	// [2, len(literals)] when valid.
	prevPos int

	// lbd is the literal block distance computed when the clause was
	// learnt: the number of distinct decision levels among its literals.
	// Lower is better; ReduceDB sorts on it.
	lbd int

	// proofID identifies this clause in the active ProofRecorder. -1 when
	// proof recording is disabled.
	proofID ClauseID

	statusMask status
}

func (c *Clause) isDeleted() bool   { return c.statusMask&statusDeleted != 0 }
func (c *Clause) isLearnt() bool    { return c.statusMask&statusLearnt != 0 }
func (c *Clause) isProtected() bool { return c.statusMask&statusProtected != 0 }

func (c *Clause) setProtected()   { c.statusMask |= statusProtected }
func (c *Clause) setUnprotected() { c.statusMask &^= statusProtected }

// isSatisfied reports whether some literal of c is currently True.
func (c *Clause) isSatisfied(s *Solver) bool {
	for _, l := range c.literals {
		if s.LitValue(l) == True {
			return true
		}
	}
	return false
}

// NewClause builds a Clause from tmpLiterals, which it may reorder and
// shrink in place. When learnt is false, it also removes tautologies,
// duplicate literals, and literals already assigned False, and reports
// ok=false (with c=nil) if the formula is now known unsatisfiable at the
// root level. A nil Clause with ok=true means the clause was trivially
// satisfied (tautology, already-true literal) or was a unit clause handled
// directly via enqueue; an empty clause yields ok=false. proofID is the ClauseID this clause was
// already recorded under by the caller (analyze, for a learnt clause);
// it is ignored, and a fresh one obtained from the active ProofRecorder,
// when learnt is false.
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool, proofID ClauseID) (c *Clause, ok bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, dup := seen[tmpLiterals[i].Opposite()]; dup {
				return nil, true // tautology
			}
			if _, dup := seen[tmpLiterals[i]]; dup {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root level
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false // empty clause: UNSAT
	case 1:
		// A unit clause is never watched, so it is never added to the
		// clause database; it is still given a real proof id and used as
		// its literal's assignment reason, so a later analyze (including
		// one resolving all the way to the empty clause at decision level
		// 0) can explain it instead of hitting a nil reason.
		lit := tmpLiterals[0]
		id := proofID
		if !learnt {
			id = s.proof.RecordClause(tmpLiterals)
		}
		reason := &Clause{literals: []Literal{lit}, proofID: id}
		if learnt {
			reason.statusMask |= statusLearnt
		}
		return nil, s.enqueue(lit, reason)
	default:
		ref := allocSlice(size)
		lits := (*ref)[:0]
		lits = append(lits, tmpLiterals...)

		c := &Clause{
			literals: lits,
			sliceRef: ref,
			prevPos:  2,
		}
		if learnt {
			c.proofID = proofID
			c.statusMask |= statusLearnt
			c.lbd = computeLBD(s, c.literals)

			maxLevel, wl := -1, 1
			for i, lit := range c.literals {
				if lvl := s.assignLevels[lit.VarID()]; lvl > maxLevel {
					maxLevel, wl = lvl, i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
		} else {
			c.proofID = s.proof.RecordClause(c.literals)
		}

		s.addWatch(c.literals[0].Opposite(), c, c.literals[1])
		s.addWatch(c.literals[1].Opposite(), c, c.literals[0])
		return c, true
	}
}

// computeLBD returns the number of distinct decision levels represented
// among lits.
func computeLBD(s *Solver, lits []Literal) int {
	s.lbdSeen.Clear()
	n := 0
	for _, l := range lits {
		lvl := s.assignLevels[l.VarID()]
		if lvl < 0 {
			continue
		}
		if !s.lbdSeen.Contains(lvl) {
			s.lbdSeen.Add(lvl)
			n++
		}
	}
	return n
}

func (c *Clause) locked(s *Solver) bool {
	return s.assignReasons[c.literals[0].VarID()] == c
}

// Delete removes c from the clause database's watch lists and returns its
// backing slice to the pool. It must only be called for clauses that are no
// longer referenced by the clause database (see Solver.ReduceDB).
func (c *Clause) Delete(s *Solver) {
	c.statusMask |= statusDeleted
	s.removeWatch(c.literals[0].Opposite(), c)
	s.removeWatch(c.literals[1].Opposite(), c)
	freeSlice(c.sliceRef)
	c.literals = nil
	c.sliceRef = nil
}

// Simplify drops literals assigned False at the root level and reports
// whether the clause is now satisfied (and can be removed outright). It
// never touches literals[0] or literals[1], since those are watched
// positions; it only reports satisfaction if one of them is already True.
func (c *Clause) Simplify(s *Solver) bool {
	if s.LitValue(c.literals[0]) == True || s.LitValue(c.literals[1]) == True {
		return true
	}
	k := 2
	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[k] = c.literals[i]
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// explainConflict copies every literal of c into *out: with c entirely
// False, each is itself the antecedent literal analyze resolves on.
func (c *Clause) explainConflict(out *[]Literal) {
	*out = append((*out)[:0], c.literals...)
}

// explainAssign copies every literal of c other than literals[0] into *out:
// the antecedent for literals[0] having been forced True by this clause.
func (c *Clause) explainAssign(out *[]Literal) {
	*out = append((*out)[:0], c.literals[1:]...)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
