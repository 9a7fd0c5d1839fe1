package sat

import (
	"github.com/rhartert/yagh"
)

// VarOrder maintains VSIDS activity scores and the order in which
// unassigned variables should be branched on. It is backed by an indexed
// binary heap so that BumpScore, Reinsert, and NextDecision are all
// logarithmic, and already-assigned variables are lazily skipped at pop
// time rather than eagerly removed from the heap.
type VarOrder struct {
	order *yagh.IntMap[float64]

	scores     []float64 // in [0, 1e100)
	scoreInc   float64   // in (0, 1e100)
	scoreDecay float64   // in (0, 1]

	phases      []LBool
	phaseSaving bool
}

// NewVarOrder returns a new, empty VarOrder.
func NewVarOrder(decay float64, phaseSaving bool) *VarOrder {
	return &VarOrder{
		order:       yagh.New[float64](0),
		scoreInc:    1,
		scoreDecay:  decay,
		phaseSaving: phaseSaving,
	}
}

// AddVar registers a new variable with the given initial score and default
// phase.
func (vo *VarOrder) AddVar(initScore float64, initPhase bool) {
	varID := len(vo.phases)

	vo.scores = append(vo.scores, initScore)
	vo.phases = append(vo.phases, Lift(initPhase))

	vo.order.GrowBy(1)
	vo.order.Put(varID, -initScore)
}

// Reinsert adds variable v back to the set of decision candidates. The
// solver calls this when v is unassigned (e.g. on backjump), passing the
// value v held just before being unassigned so phase-saving can record it.
func (vo *VarOrder) Reinsert(v int, val LBool) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.order.Put(v, -vo.scores[v])
}

// DecayScores scales down the relative weight of past activity bumps by
// inflating the bump increment instead of touching every score.
func (vo *VarOrder) DecayScores() {
	vo.scoreInc /= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

// BumpScore increases v's activity score, rescaling every score (to avoid
// floating point overflow) if the increment has grown too large.
func (vo *VarOrder) BumpScore(v int) {
	vo.scores[v] += vo.scoreInc
	if vo.order.Contains(v) {
		vo.order.Put(v, -vo.scores[v])
	}
	if vo.scores[v] > 1e100 {
		vo.rescale()
	}
}

// NextDecision pops and returns the literal for the unassigned variable
// with the highest score, applying phase-saving (or the default phase) to
// choose its polarity. It panics if every variable is assigned; callers
// must check that first.
func (vo *VarOrder) NextDecision(s *Solver) Literal {
	for {
		next, ok := vo.order.Pop()
		if !ok {
			panic("sat: NextDecision called with no unassigned variable")
		}
		if s.VarValue(next.Elem) != Unknown {
			continue // stale entry: variable already assigned
		}
		if vo.phases[next.Elem] == False {
			return NegativeLiteral(next.Elem)
		}
		return PositiveLiteral(next.Elem)
	}
}

func (vo *VarOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v, s := range vo.scores {
		vo.scores[v] = s * 1e-100
		if vo.order.Contains(v) {
			vo.order.Put(v, -vo.scores[v])
		}
	}
}
