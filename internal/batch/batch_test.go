package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eastlake-labs/cdcl-sat/internal/sat"
)

func loadTwoVarSat(s *sat.Solver) error {
	a, b := s.AddVariable(), s.AddVariable()
	s.AddClause([]sat.Literal{sat.PositiveLiteral(a), sat.PositiveLiteral(b)})
	return nil
}

func loadUnsat(s *sat.Solver) error {
	v := s.AddVariable()
	s.AddClause([]sat.Literal{sat.PositiveLiteral(v)})
	s.AddClause([]sat.Literal{sat.NegativeLiteral(v)})
	return nil
}

func TestSolveAll_mixedOutcomes(t *testing.T) {
	instances := []Instance{
		{Name: "sat", Load: loadTwoVarSat, Options: sat.DefaultOptions},
		{Name: "unsat", Load: loadUnsat, Options: sat.DefaultOptions},
		{Name: "bad-load", Load: func(s *sat.Solver) error {
			return fmt.Errorf("boom")
		}, Options: sat.DefaultOptions},
	}

	results := SolveAll(context.Background(), instances, 2)
	require.Len(t, results, 3)

	assert.Equal(t, sat.Sat, results[0].Status)
	assert.NotNil(t, results[0].Model, "results[0].Model = nil, want a model")

	assert.Equal(t, sat.Unsat, results[1].Status)

	assert.Error(t, results[2].Err, "results[2].Err = nil, want a load error")
	assert.Equal(t, sat.UnknownStatus, results[2].Status)
}

func TestSolveAll_recoversPanic(t *testing.T) {
	instances := []Instance{
		{Name: "panics", Load: func(s *sat.Solver) error {
			panic("internal invariant violation")
		}, Options: sat.DefaultOptions},
	}

	results := SolveAll(context.Background(), instances, 1)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err, "results[0].Err = nil, want the recovered panic")
	assert.Equal(t, sat.UnknownStatus, results[0].Status)
}
