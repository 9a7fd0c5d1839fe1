// Package batch drives many independent solver instances concurrently. Each
// instance gets its own *sat.Solver (its own trail, watch lists, and VSIDS
// heap); nothing is shared across instances.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/eastlake-labs/cdcl-sat/internal/sat"
)

// Instance is a self-contained problem: the clauses a freshly constructed
// Solver should be loaded with before solving.
type Instance struct {
	Name    string
	Load    func(s *sat.Solver) error
	Options sat.Options
}

// Result is one instance's outcome. Err is set when Load failed or the
// solver panicked (an internal invariant violation); Status is Unknown in
// both cases.
type Result struct {
	Name   string
	Status sat.Status
	Model  []bool
	Err    error
}

// SolveAll runs every instance, at most concurrency at a time, and returns
// one Result per instance in the same order as instances. A panic inside a
// single solver is recovered and reported as that instance's error rather
// than taking down the whole batch.
func SolveAll(ctx context.Context, instances []Instance, concurrency int) []Result {
	results := make([]Result, len(instances))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, inst := range instances {
		i, inst := i, inst
		g.Go(func() error {
			results[i] = solveOne(ctx, inst)
			return nil
		})
	}

	// SolveAll never fails the group itself: every failure is captured in
	// the per-instance Result, so the returned error is always nil.
	_ = g.Wait()
	return results
}

func solveOne(ctx context.Context, inst Instance) (result Result) {
	result.Name = inst.Name
	defer func() {
		if r := recover(); r != nil {
			result.Status = sat.UnknownStatus
			result.Err = fmt.Errorf("instance %s: solver panicked: %v", inst.Name, r)
		}
	}()

	s := sat.NewSolver(inst.Options)
	if err := inst.Load(s); err != nil {
		result.Status = sat.UnknownStatus
		result.Err = fmt.Errorf("instance %s: %w", inst.Name, err)
		return result
	}

	result.Status = s.Solve(ctx)
	if result.Status == sat.Sat {
		result.Model = s.Model()
	}
	return result
}
