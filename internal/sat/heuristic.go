package sat

import (
	"math/rand"
	"time"
)

// brancher is the closed interface behind HeuristicKind: every decision
// strategy the solver supports implements it, and the driver never
// dispatches on a string or enum beyond picking which brancher to build at
// construction time (see newBrancher).
type brancher interface {
	// addVar is called once per AddVariable, in order, so the brancher can
	// grow any per-variable state it keeps.
	addVar()

	// onUnassign is called whenever a variable is unassigned (backjump or
	// restart), with the value it held just before. Branchers that track
	// phase-saving or an activity-ordered heap use this to make the
	// variable a decision candidate again.
	onUnassign(v int, val LBool)

	// onLearn is called once per variable that appeared in a resolution
	// step during conflict analysis of a just-learnt clause. Branchers
	// that don't use activity scores ignore it.
	onLearn(v int)

	// decay is called once per conflict, after onLearn, to age activity
	// scores. Branchers that don't use activity scores ignore it.
	decay()

	// decide returns the next decision literal. The solver guarantees at
	// least one variable is unassigned.
	decide(s *Solver) Literal
}

func newBrancher(kind HeuristicKind, opts Options, seed int64) brancher {
	switch kind {
	case KindFirstUnassigned:
		return &firstUnassignedBrancher{}
	case KindRandom:
		src := seed
		if src == 0 {
			src = time.Now().UnixNano()
		}
		return &randomBrancher{rng: rand.New(rand.NewSource(src))}
	case KindGreedy:
		return &greedyBrancher{}
	default:
		return &vsidsBrancher{order: NewVarOrder(opts.VariableDecay, opts.PhaseSaving)}
	}
}

// vsidsBrancher is the default heuristic: VSIDS activity with phase saving,
// backed by VarOrder's indexed heap.
type vsidsBrancher struct {
	order *VarOrder
}

func (b *vsidsBrancher) addVar()                      { b.order.AddVar(0, false) }
func (b *vsidsBrancher) onUnassign(v int, val LBool)  { b.order.Reinsert(v, val) }
func (b *vsidsBrancher) onLearn(v int)                { b.order.BumpScore(v) }
func (b *vsidsBrancher) decay()                       { b.order.DecayScores() }
func (b *vsidsBrancher) decide(s *Solver) Literal     { return b.order.NextDecision(s) }

// firstUnassignedBrancher always picks the lowest-indexed unassigned
// variable and assigns it True.
type firstUnassignedBrancher struct {
	nVars int
}

func (b *firstUnassignedBrancher) addVar()                     { b.nVars++ }
func (b *firstUnassignedBrancher) onUnassign(v int, val LBool) {}
func (b *firstUnassignedBrancher) onLearn(v int)                {}
func (b *firstUnassignedBrancher) decay()                       {}

func (b *firstUnassignedBrancher) decide(s *Solver) Literal {
	for v := 0; v < b.nVars; v++ {
		if s.VarValue(v) == Unknown {
			return PositiveLiteral(v)
		}
	}
	panic("sat: firstUnassignedBrancher.decide called with no unassigned variable")
}

// randomBrancher picks a uniformly random unassigned variable and polarity.
type randomBrancher struct {
	nVars int
	rng   *rand.Rand
}

func (b *randomBrancher) addVar()                     { b.nVars++ }
func (b *randomBrancher) onUnassign(v int, val LBool) {}
func (b *randomBrancher) onLearn(v int)                {}
func (b *randomBrancher) decay()                       {}

func (b *randomBrancher) decide(s *Solver) Literal {
	unassigned := make([]int, 0, b.nVars)
	for v := 0; v < b.nVars; v++ {
		if s.VarValue(v) == Unknown {
			unassigned = append(unassigned, v)
		}
	}
	if len(unassigned) == 0 {
		panic("sat: randomBrancher.decide called with no unassigned variable")
	}
	v := unassigned[b.rng.Intn(len(unassigned))]
	if b.rng.Intn(2) == 0 {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}

// greedyBrancher picks the (variable, polarity) pair that satisfies the
// largest number of currently-unsatisfied clauses. It is O(clauses) per
// decision, which is acceptable for a heuristic offered mainly for
// comparison against VSIDS, not for production-scale solving.
type greedyBrancher struct {
	nVars int
}

func (b *greedyBrancher) addVar()                     { b.nVars++ }
func (b *greedyBrancher) onUnassign(v int, val LBool) {}
func (b *greedyBrancher) onLearn(v int)                {}
func (b *greedyBrancher) decay()                       {}

func (b *greedyBrancher) decide(s *Solver) Literal {
	posCount := make([]int, b.nVars)
	negCount := make([]int, b.nVars)

	count := func(clauses []*Clause) {
		for _, c := range clauses {
			if c.isDeleted() || c.isSatisfied(s) {
				continue
			}
			for _, lit := range c.literals {
				if s.LitValue(lit) != Unknown {
					continue
				}
				if lit.IsPositive() {
					posCount[lit.VarID()]++
				} else {
					negCount[lit.VarID()]++
				}
			}
		}
	}
	count(s.constraints)
	count(s.learnts)

	bestVar, bestCount := -1, -1
	bestPositive := true
	for v := 0; v < b.nVars; v++ {
		if s.VarValue(v) != Unknown {
			continue
		}
		if posCount[v] > bestCount {
			bestVar, bestCount, bestPositive = v, posCount[v], true
		}
		if negCount[v] > bestCount {
			bestVar, bestCount, bestPositive = v, negCount[v], false
		}
	}
	if bestVar == -1 {
		// No unsatisfied clause constrains any unassigned variable: fall
		// back to the lowest-indexed one.
		for v := 0; v < b.nVars; v++ {
			if s.VarValue(v) == Unknown {
				return PositiveLiteral(v)
			}
		}
		panic("sat: greedyBrancher.decide called with no unassigned variable")
	}
	if bestPositive {
		return PositiveLiteral(bestVar)
	}
	return NegativeLiteral(bestVar)
}
