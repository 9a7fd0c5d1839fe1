package sat

import (
	"context"
	"io"
	"sort"
)

// watcher is one entry of a literal's watch list: the clause watching that
// literal becoming True (which falsifies one of the clause's own literals),
// plus a cached "blocker" literal that, if already True, proves the clause
// satisfied without dereferencing it.
type watcher struct {
	clause  *Clause
	blocker Literal
}

// Stats reports cumulative counters for a Solver, independent of whatever
// Observer is attached.
type Stats struct {
	Decisions    int64
	Conflicts    int64
	Propagations int64
	Restarts     int64
}

// Solver is a CDCL SAT solver: two-watched-literal unit propagation, 1-UIP
// conflict analysis with non-chronological backjumping, a pluggable
// branching heuristic, geometric restarts, and LBD-based clause deletion.
type Solver struct {
	options  Options
	brancher brancher
	observer Observer
	proof    ProofRecorder

	numVars int

	assigns       []LBool
	assignLevels  []int
	assignReasons []*Clause

	trail    []Literal
	trailLim []int

	watchers [][]watcher

	constraints []*Clause
	learnts     []*Clause

	clauseInc   float64
	clauseDecay float64

	propQueue *Queue[Literal]

	seenVar ResetSet // variables resolved on during the current analyze call
	lbdSeen ResetSet // decision levels seen while computing a clause's LBD

	tmpLearnt   []Literal
	tmpExplain  []Literal
	tmpPending  []Literal
	tmpResolved []Literal

	avgLBD EMA

	stats Stats

	model []bool
	unsat bool
}

// NewSolver returns an empty Solver configured by opts.
func NewSolver(opts Options) *Solver {
	obs := opts.Observer
	if obs == nil {
		obs = noopObserver{}
	}
	proof := opts.Proof
	if proof == nil {
		proof = NoopProof()
	}
	return &Solver{
		options:     opts,
		brancher:    newBrancher(opts.Heuristic, opts, opts.RandSeed),
		observer:    obs,
		proof:       proof,
		propQueue:   NewQueue[Literal](128),
		clauseInc:   1,
		clauseDecay: opts.ClauseDecay,
		avgLBD:      NewEMA(0.95),
	}
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// AddVariable registers a new variable and returns its ID.
func (s *Solver) AddVariable() int {
	v := s.numVars
	s.numVars++

	s.assigns = append(s.assigns, Unknown)
	s.assignLevels = append(s.assignLevels, -1)
	s.assignReasons = append(s.assignReasons, nil)

	s.watchers = append(s.watchers, nil, nil)

	s.seenVar.Expand()
	s.lbdSeen.Expand()

	s.brancher.addVar()
	return v
}

// NumVariables returns the number of variables registered so far.
func (s *Solver) NumVariables() int { return s.numVars }

// NumAssigns returns the number of currently-assigned variables.
func (s *Solver) NumAssigns() int { return len(s.trail) }

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int { return len(s.constraints) }

// NumLearnts returns the number of learnt clauses currently kept.
func (s *Solver) NumLearnts() int { return len(s.learnts) }

// Stats returns a snapshot of the solver's cumulative counters.
func (s *Solver) Stats() Stats { return s.stats }

// Model returns the satisfying assignment found by the last Solve call that
// returned Sat, indexed by variable ID. Its contents are unspecified after
// any other result.
func (s *Solver) Model() []bool { return s.model }

// VarValue returns the current assignment of variable v.
func (s *Solver) VarValue(v int) LBool { return s.assigns[v] }

// LitValue returns the current assignment of literal l.
func (s *Solver) LitValue(l Literal) LBool {
	v := s.assigns[l.VarID()]
	if !l.IsPositive() {
		return v.Opposite()
	}
	return v
}

// WriteProof writes the resolution refutation accumulated by the last
// Unsat Solve call, if proof recording was enabled via Options.Proof.
func (s *Solver) WriteProof(w io.Writer) error {
	return s.proof.WriteTo(w)
}

func (s *Solver) decisionLevel() int { return len(s.trailLim) }

func (s *Solver) addWatch(lit Literal, c *Clause, blocker Literal) {
	s.watchers[lit] = append(s.watchers[lit], watcher{clause: c, blocker: blocker})
}

func (s *Solver) removeWatch(lit Literal, c *Clause) {
	ws := s.watchers[lit]
	for i, w := range ws {
		if w.clause == c {
			ws[i] = ws[len(ws)-1]
			s.watchers[lit] = ws[:len(ws)-1]
			return
		}
	}
}

// enqueue assigns lit True at the current decision level, recording reason
// as its antecedent clause (nil for a decision). It returns false if lit
// was already assigned False — a conflict.
func (s *Solver) enqueue(lit Literal, reason *Clause) bool {
	switch s.LitValue(lit) {
	case True:
		return true
	case False:
		return false
	}

	v := lit.VarID()
	s.assigns[v] = Lift(lit.IsPositive())
	s.assignLevels[v] = s.decisionLevel()
	s.assignReasons[v] = reason
	s.trail = append(s.trail, lit)
	s.propQueue.Push(lit)
	return true
}

// AddClause adds an original (non-learnt) clause to the solver. It returns
// false if the clause set is now known unsatisfiable, either because this
// call made it so or because it already was.
func (s *Solver) AddClause(lits []Literal) bool {
	if s.unsat {
		return false
	}
	if s.decisionLevel() > 0 {
		s.cancelUntil(0)
	}
	tmp := append([]Literal(nil), lits...)
	c, ok := NewClause(s, tmp, false, -1)
	if !ok {
		s.unsat = true
		return false
	}
	if c != nil {
		s.constraints = append(s.constraints, c)
	}
	return true
}

// Simplify removes clauses already satisfied at decision level 0 from both
// the constraint and learnt clause databases. It may only be called at
// decision level 0, and returns false if the clause set is unsatisfiable.
func (s *Solver) Simplify() bool {
	if s.unsat {
		return false
	}
	if s.decisionLevel() != 0 {
		panic("sat: Simplify called above decision level 0")
	}
	s.constraints = simplifyInPlace(s, s.constraints)
	s.learnts = simplifyInPlace(s, s.learnts)
	return true
}

func simplifyInPlace(s *Solver, clauses []*Clause) []*Clause {
	k := 0
	for _, c := range clauses {
		if c.locked(s) {
			clauses[k] = c
			k++
			continue
		}
		if c.Simplify(s) {
			c.Delete(s)
			continue
		}
		clauses[k] = c
		k++
	}
	return clauses[:k]
}

// ReduceDB discards the worse (higher-LBD) half of the learnt clause
// database, always keeping clauses currently locked (serving as another
// literal's assignment reason) and glue clauses (lbd <= 2).
func (s *Solver) ReduceDB() {
	ls := s.learnts
	sort.Slice(ls, func(i, j int) bool {
		if ls[i].lbd != ls[j].lbd {
			return ls[i].lbd < ls[j].lbd
		}
		return ls[i].activity > ls[j].activity
	})

	mid := len(ls) / 2
	kept := ls[:0]
	for i, c := range ls {
		if i < mid || c.locked(s) || c.lbd <= 2 {
			kept = append(kept, c)
			continue
		}
		c.Delete(s)
	}
	s.learnts = kept
}

func (s *Solver) bumpClauseActivity(c *Clause) {
	c.activity += s.clauseInc
	if c.activity > 1e100 {
		for _, l := range s.learnts {
			l.activity *= 1e-100
		}
		s.clauseInc *= 1e-100
	}
}

func (s *Solver) decayClauseActivity() {
	s.clauseInc /= s.clauseDecay
}

// recordLearntClause builds and registers a clause from a just-analyzed
// conflict under its already-derived proof id. A unit clause is enqueued
// directly by NewClause and not kept, since it holds at every future
// decision level; an empty clause (proofID the empty-clause derivation)
// marks the formula unsatisfiable.
func (s *Solver) recordLearntClause(lits []Literal, proofID ClauseID) *Clause {
	c, ok := NewClause(s, lits, true, proofID)
	if !ok {
		s.unsat = true
		return nil
	}
	if c == nil {
		return nil
	}
	s.learnts = append(s.learnts, c)
	s.bumpClauseActivity(c)
	s.observer.OnLearn(len(c.literals), c.lbd)
	s.avgLBD.Add(float64(c.lbd))
	return c
}

// propagate drains the propagation queue, applying unit propagation through
// every clause watching a literal that has just become True. It returns the
// clause that conflicted, or nil once the queue empties without one.
func (s *Solver) propagate() *Clause {
	for !s.propQueue.IsEmpty() {
		lit := s.propQueue.Pop()
		s.stats.Propagations++
		s.observer.OnPropagation()

		falsified := lit.Opposite()
		ws := s.watchers[lit]

		keep := 0
		var conflict *Clause
		for i := 0; i < len(ws); i++ {
			w := ws[i]
			if s.LitValue(w.blocker) == True {
				ws[keep] = w
				keep++
				continue
			}

			c := w.clause
			if c.literals[0] == falsified {
				c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
			}

			if s.LitValue(c.literals[0]) == True {
				ws[keep] = watcher{clause: c, blocker: c.literals[0]}
				keep++
				continue
			}

			n := len(c.literals)
			start := c.prevPos
			if start < 2 || start >= n {
				start = 2
			}
			foundNewWatch := false
			for step := 0; step < n-2; step++ {
				k := start + step
				if k >= n {
					k -= n - 2
				}
				if s.LitValue(c.literals[k]) != False {
					c.literals[1], c.literals[k] = c.literals[k], c.literals[1]
					c.prevPos = k + 1
					if c.prevPos >= n {
						c.prevPos = 2
					}
					s.addWatch(c.literals[1].Opposite(), c, c.literals[0])
					foundNewWatch = true
					break
				}
			}
			if foundNewWatch {
				continue // moved to a different watch list, drop from this one
			}

			// Unit or conflict: stays watched at this literal.
			ws[keep] = watcher{clause: c, blocker: c.literals[0]}
			keep++

			if !s.enqueue(c.literals[0], c) {
				conflict = c
				for j := i + 1; j < len(ws); j++ {
					ws[keep] = ws[j]
					keep++
				}
				break
			}
		}
		s.watchers[lit] = ws[:keep]

		if conflict != nil {
			s.propQueue.Clear()
			return conflict
		}
	}
	return nil
}

// analyze performs resolution-based conflict analysis starting from the
// clause that just conflicted. Above decision level 0 it stops at the first
// unique implication point (1-UIP) and returns the learnt clause (with the
// asserting literal at index 0) and the level to backjump to. At decision
// level 0 there is no decision to cut against, so every seen literal is
// resolved away and the returned clause is empty. proofID is the ClauseID
// the final derived clause was recorded under.
func (s *Solver) analyze(conflict *Clause) (learnt []Literal, btLevel int, proofID ClauseID) {
	s.seenVar.Clear()
	atRoot := s.decisionLevel() == 0

	outLearnt := append(s.tmpLearnt[:0], Literal(-1))
	// pending holds the literals seen so far that sit at the current decision
	// level and have not yet been eliminated as a resolution pivot. Together
	// with outLearnt[1:] it is the literal set of the resolvent still being
	// built; recording it (rather than outLearnt alone) is what keeps the
	// proof's intermediate clauses sound.
	pending := s.tmpPending[:0]
	var p Literal
	trailIdx := len(s.trail) - 1

	reasonClause := conflict
	workingID := conflict.proofID
	first := true

	for {
		if first {
			reasonClause.explainConflict(&s.tmpExplain)
			first = false
		} else {
			reasonClause.explainAssign(&s.tmpExplain)
		}

		for _, q := range s.tmpExplain {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.brancher.onLearn(v)

			lvl := s.assignLevels[v]
			switch {
			case lvl == s.decisionLevel():
				pending = append(pending, q)
			case lvl > 0:
				outLearnt = append(outLearnt, q)
			}
		}

		if reasonClause != conflict {
			resolvent := append(append(s.tmpResolved[:0], outLearnt[1:]...), pending...)
			derivedID := s.proof.RecordClause(resolvent)
			s.proof.RecordResolution(workingID, reasonClause.proofID, derivedID)
			workingID = derivedID
			s.tmpResolved = resolvent
		}

		// At decision level 0 every seen literal lands in pending (there is
		// no decision to cut against), so the derivation is only complete
		// once nothing is left outstanding — that point is the empty clause.
		if atRoot && len(pending) == 0 {
			outLearnt = outLearnt[:0]
			break
		}

		for {
			p = s.trail[trailIdx]
			trailIdx--
			if s.seenVar.Contains(p.VarID()) {
				break
			}
		}
		for i, l := range pending {
			if l.VarID() == p.VarID() {
				pending = append(pending[:i], pending[i+1:]...)
				break
			}
		}
		reasonClause = s.assignReasons[p.VarID()]
		if !atRoot && len(pending) == 0 {
			break
		}
	}

	if len(outLearnt) > 0 {
		outLearnt[0] = p.Opposite()
	}
	s.tmpLearnt = outLearnt
	s.tmpPending = pending

	btLevel = 0
	if len(outLearnt) > 1 {
		maxIdx, maxLvl := 1, s.assignLevels[outLearnt[1].VarID()]
		for i := 2; i < len(outLearnt); i++ {
			if lvl := s.assignLevels[outLearnt[i].VarID()]; lvl > maxLvl {
				maxLvl, maxIdx = lvl, i
			}
		}
		outLearnt[1], outLearnt[maxIdx] = outLearnt[maxIdx], outLearnt[1]
		btLevel = maxLvl
	}

	return outLearnt, btLevel, workingID
}

// assume pushes a new decision level and assigns lit True as a decision
// (reason nil). It returns false if lit was already assigned False.
func (s *Solver) assume(lit Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	return s.enqueue(lit, nil)
}

// cancelUntil undoes every assignment made above the given decision level;
// the assignments of that level itself are kept.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		lim := s.trailLim[len(s.trailLim)-1]
		for i := len(s.trail) - 1; i >= lim; i-- {
			lit := s.trail[i]
			v := lit.VarID()
			val := s.assigns[v]
			s.assigns[v] = Unknown
			s.assignLevels[v] = -1
			s.assignReasons[v] = nil
			s.brancher.onUnassign(v, val)
		}
		s.trail = s.trail[:lim]
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	s.propQueue.Clear()
}

// Solve runs the search to completion, to a configured bound, or until ctx
// is cancelled, whichever comes first.
func (s *Solver) Solve(ctx context.Context) Status {
	if s.unsat {
		return Unsat
	}
	if s.decisionLevel() > 0 {
		s.cancelUntil(0)
	}
	if !s.Simplify() {
		return Unsat
	}

	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	status := s.search(ctx)
	if status == Sat {
		s.saveModel()
	}
	return status
}

func (s *Solver) saveModel() {
	s.model = make([]bool, s.numVars)
	for v := 0; v < s.numVars; v++ {
		s.model[v] = s.assigns[v] == True
	}
}

const reduceDBInterval = 2000

// search is the main CDCL loop: propagate to a fixpoint or conflict,
// analyze and backjump on conflict, decide otherwise, with periodic
// geometric restarts and LBD-based clause deletion.
func (s *Solver) search(ctx context.Context) Status {
	restartBound := s.options.RestartBase
	conflictsThisRestart := int64(0)

	for {
		select {
		case <-ctx.Done():
			return Unknown
		default:
		}

		if conflict := s.propagate(); conflict != nil {
			s.stats.Conflicts++
			s.observer.OnConflict()

			learnt, btLevel, derivedID := s.analyze(conflict)
			s.cancelUntil(btLevel)

			c := s.recordLearntClause(learnt, derivedID)
			if s.unsat {
				return Unsat
			}
			if c != nil && !s.enqueue(c.literals[0], c) {
				return Unsat
			}

			s.brancher.decay()
			s.decayClauseActivity()
			conflictsThisRestart++

			if s.options.MaxConflicts >= 0 && s.stats.Conflicts >= s.options.MaxConflicts {
				return Unknown
			}
			if s.options.ReduceDB &&
				s.stats.Conflicts%reduceDBInterval == 0 &&
				len(s.learnts) > s.NumConstraints() {
				s.ReduceDB()
			}
			continue
		}

		s.checkInvariants()

		if s.decisionLevel() == 0 && !s.Simplify() {
			return Unsat
		}

		if s.options.RestartBase > 0 && conflictsThisRestart >= restartBound {
			s.observer.OnRestart()
			s.stats.Restarts++
			s.cancelUntil(0)
			conflictsThisRestart = 0
			restartBound = int64(float64(restartBound) * s.options.RestartMultiplier)
			continue
		}

		if s.NumAssigns() == s.numVars {
			return Sat
		}

		lit := s.brancher.decide(s)
		s.stats.Decisions++
		s.observer.OnDecision()
		s.assume(lit)
	}
}
