package sat

import (
	"context"
	"math/rand"
	"testing"

	"github.com/eastlake-labs/cdcl-sat/internal/testoracle"
)

// randomCNF generates a random 3-CNF instance over numVars variables with
// numClauses clauses, returning it both in the DIMACS-literal form the
// oracle expects and pre-built against a fresh Solver.
func randomCNF(rng *rand.Rand, numVars, numClauses int) (s *Solver, dimacsClauses [][]int) {
	s = NewDefaultSolver()
	for i := 0; i < numVars; i++ {
		s.AddVariable()
	}

	for i := 0; i < numClauses; i++ {
		size := 3
		clause := make([]Literal, size)
		dimacsClause := make([]int, size)
		for j := 0; j < size; j++ {
			v := rng.Intn(numVars)
			neg := rng.Intn(2) == 0
			if neg {
				clause[j] = NegativeLiteral(v)
				dimacsClause[j] = -(v + 1)
			} else {
				clause[j] = PositiveLiteral(v)
				dimacsClause[j] = v + 1
			}
		}
		s.AddClause(clause)
		dimacsClauses = append(dimacsClauses, dimacsClause)
	}
	return s, dimacsClauses
}

// TestRandom3SATMatchesOracle cross-checks this solver's verdict against an
// independent reference implementation on a batch of random 3-CNF
// instances, realizing the "matching a reference oracle" testable property.
func TestRandom3SATMatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	const (
		trials     = 40
		numVars    = 8
		numClauses = 30 // near the 3-SAT satisfiability threshold for 8 variables
	)

	for trial := 0; trial < trials; trial++ {
		s, dimacsClauses := randomCNF(rng, numVars, numClauses)

		want, err := testoracle.Solve(numVars, dimacsClauses)
		if err != nil {
			t.Fatalf("trial %d: testoracle.Solve(): %s", trial, err)
		}

		got := s.Solve(context.Background()) == Sat
		if got != want {
			t.Errorf("trial %d: solver says sat=%v, oracle says sat=%v", trial, got, want)
		}
	}
}
