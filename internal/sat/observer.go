package sat

// Observer receives search-progress events from a Solver. The core depends
// only on this interface — it has no knowledge of any concrete telemetry
// library. See internal/metrics and internal/telemetry for implementations.
type Observer interface {
	// OnDecision is called once per branching decision (not per implied
	// assignment).
	OnDecision()

	// OnConflict is called once per conflict found by the propagator.
	OnConflict()

	// OnRestart is called each time the driver restarts to level 0.
	OnRestart()

	// OnLearn is called once per clause added to the learnt database,
	// with its size (literal count) and LBD.
	OnLearn(size, lbd int)

	// OnPropagation is called once per literal dequeued from the
	// propagation queue.
	OnPropagation()
}

// MultiObserver fans out events to every observer it wraps, in order.
type MultiObserver []Observer

func (m MultiObserver) OnDecision() {
	for _, o := range m {
		o.OnDecision()
	}
}

func (m MultiObserver) OnConflict() {
	for _, o := range m {
		o.OnConflict()
	}
}

func (m MultiObserver) OnRestart() {
	for _, o := range m {
		o.OnRestart()
	}
}

func (m MultiObserver) OnLearn(size, lbd int) {
	for _, o := range m {
		o.OnLearn(size, lbd)
	}
}

func (m MultiObserver) OnPropagation() {
	for _, o := range m {
		o.OnPropagation()
	}
}

// noopObserver is used whenever Options.Observer is nil, so the driver never
// has to nil-check before calling an Observer method.
type noopObserver struct{}

func (noopObserver) OnDecision()      {}
func (noopObserver) OnConflict()      {}
func (noopObserver) OnRestart()       {}
func (noopObserver) OnLearn(int, int) {}
func (noopObserver) OnPropagation()   {}
