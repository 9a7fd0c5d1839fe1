package sat

import "time"

// HeuristicKind selects the branching strategy a Solver uses to pick the
// next decision literal. It is a closed tagged variant rather than a
// string-keyed dispatch: every Solver is built once, at construction time,
// with exactly one of these.
type HeuristicKind int

const (
	// KindVSIDS selects the unassigned variable with the highest VSIDS
	// activity score, using phase-saving (or False when phase saving is
	// off) to choose its polarity. This is the default.
	KindVSIDS HeuristicKind = iota

	// KindFirstUnassigned selects the lowest-indexed unassigned variable
	// and assigns it True.
	KindFirstUnassigned

	// KindRandom selects a uniformly random unassigned variable and a
	// uniformly random polarity.
	KindRandom

	// KindGreedy selects, for each unassigned variable and polarity, the
	// number of currently-unsatisfied clauses that assignment would
	// satisfy, and picks the (variable, polarity) pair maximizing that
	// count.
	KindGreedy
)

func (k HeuristicKind) String() string {
	switch k {
	case KindVSIDS:
		return "vsids"
	case KindFirstUnassigned:
		return "first"
	case KindRandom:
		return "random"
	case KindGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// Options configures a Solver. Use DefaultOptions as a starting point.
type Options struct {
	// Heuristic selects the branching strategy (see HeuristicKind).
	Heuristic HeuristicKind

	// PhaseSaving, when true, makes KindVSIDS remember the last value a
	// variable took before being unassigned and re-use it as the default
	// phase on its next decision. When false, variables default to False.
	PhaseSaving bool

	// ClauseDecay and VariableDecay are the activity decay factors applied
	// after every conflict (equivalent to score *= decay, implemented by
	// dividing the bump increment by decay instead of touching every score).
	ClauseDecay   float64
	VariableDecay float64

	// ReduceDB enables the LBD-based learnt clause deletion policy. This
	// is an optimization: correctness does not depend on it.
	ReduceDB bool

	// RestartBase and RestartMultiplier configure the geometric restart
	// schedule: after every R conflicts, restart, then R *= RestartMultiplier.
	// A RestartBase <= 0 disables restarts entirely.
	RestartBase       int64
	RestartMultiplier float64

	// MaxConflicts bounds the number of conflicts the solver will process
	// before giving up and returning Unknown. A negative value disables
	// the bound.
	MaxConflicts int64

	// Timeout bounds the wall-clock time the solver will spend searching
	// before giving up and returning Unknown. A negative value disables
	// the bound.
	Timeout time.Duration

	// Observer, if non-nil, is notified of search-progress events. See
	// the Observer interface.
	Observer Observer

	// Proof, if non-nil, enables resolution-refutation recording; after an
	// Unsat result, Solver.WriteProof writes the recorded trace in the
	// format described on ProofRecorder.
	Proof ProofRecorder

	// RandSeed seeds KindRandom's literal/polarity choices, for
	// reproducible runs. Zero means "seed from the current time".
	RandSeed int64
}

// DefaultOptions returns the options used by NewDefaultSolver.
var DefaultOptions = Options{
	Heuristic:         KindVSIDS,
	PhaseSaving:       true,
	ClauseDecay:       0.999,
	VariableDecay:     0.95,
	ReduceDB:          true,
	RestartBase:       256,
	RestartMultiplier: 2,
	MaxConflicts:      -1,
	Timeout:           -1,
}

// Status is the tri-valued result of a solve: True (SAT), False (UNSAT), or
// Unknown (aborted, timed out, or reached the conflict bound).
type Status = LBool

const (
	Sat           Status = True
	Unsat         Status = False
	UnknownStatus Status = Unknown
)

// Label renders a Status using the SAT/UNSAT/UNKNOWN vocabulary of the
// output contract (the stdlib-ish String() method instead renders the
// lowercase true/false/unknown form shared with ordinary literal values).
func (s Status) Label() string {
	switch s {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}
