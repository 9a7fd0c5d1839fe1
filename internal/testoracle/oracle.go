// Package testoracle wraps an independent SAT engine (go-air/gini) to
// cross-check this module's solver against randomly generated instances in
// property-based tests. It is a test-only dependency: nothing outside
// _test.go files imports it.
package testoracle

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Solve reports whether the CNF instance (numVars variables, clauses given
// as signed-integer literals in DIMACS convention, one slice per clause) is
// satisfiable, using gini as the reference implementation.
func Solve(numVars int, clauses [][]int) (sat bool, err error) {
	g := gini.New()
	for _, clause := range clauses {
		for _, lit := range clause {
			if lit == 0 || lit < -numVars || lit > numVars {
				return false, fmt.Errorf("testoracle: literal %d out of range for %d variables", lit, numVars)
			}
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.Dimacs2Lit(0))
	}

	switch g.Solve() {
	case 1:
		return true, nil
	case -1:
		return false, nil
	default:
		return false, fmt.Errorf("testoracle: gini returned an inconclusive result")
	}
}
