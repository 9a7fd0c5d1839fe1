package sat

import (
	"context"
	"testing"
)

func TestNewClause_tautologyIsDropped(t *testing.T) {
	s := NewDefaultSolver()
	v := s.AddVariable()

	ok := s.AddClause([]Literal{PositiveLiteral(v), NegativeLiteral(v)})
	if !ok {
		t.Fatalf("AddClause(tautology) = false, want true")
	}
	if s.NumConstraints() != 0 {
		t.Errorf("NumConstraints() = %d, want 0 (tautology should be dropped)", s.NumConstraints())
	}
}

func TestNewClause_duplicateLiteralsCollapse(t *testing.T) {
	s := NewDefaultSolver()
	a, b := s.AddVariable(), s.AddVariable()

	ok := s.AddClause([]Literal{
		PositiveLiteral(a), PositiveLiteral(b), PositiveLiteral(a),
	})
	if !ok {
		t.Fatalf("AddClause() = false, want true")
	}
	if got := s.NumConstraints(); got != 1 {
		t.Fatalf("NumConstraints() = %d, want 1", got)
	}

	status := s.Solve(context.Background())
	if status != Sat {
		t.Fatalf("Solve() = %v, want Sat", status)
	}
}

func TestNewClause_unitEnqueuesDirectly(t *testing.T) {
	s := NewDefaultSolver()
	v := s.AddVariable()

	if ok := s.AddClause([]Literal{PositiveLiteral(v)}); !ok {
		t.Fatalf("AddClause() = false, want true")
	}
	if s.NumConstraints() != 0 {
		t.Errorf("NumConstraints() = %d, want 0 (unit clauses are enqueued, not stored)", s.NumConstraints())
	}
	if s.VarValue(v) != True {
		t.Errorf("VarValue(v) = %v, want True", s.VarValue(v))
	}
}

func TestNewClause_emptyClauseIsUnsat(t *testing.T) {
	s := NewDefaultSolver()
	if ok := s.AddClause(nil); ok {
		t.Fatalf("AddClause(nil) = true, want false")
	}
}

func TestSimplify_neverTouchesWatchedLiterals(t *testing.T) {
	s := NewDefaultSolver()
	a, b, c := s.AddVariable(), s.AddVariable(), s.AddVariable()

	s.AddClause([]Literal{PositiveLiteral(a), PositiveLiteral(b), PositiveLiteral(c)})

	// Force c False at level 0 so Simplify has something to compact away
	// from the tail, without satisfying the clause via a or b.
	s.AddClause([]Literal{NegativeLiteral(c)})
	s.AddClause([]Literal{NegativeLiteral(b)})

	if !s.Simplify() {
		t.Fatalf("Simplify() = false, want true")
	}
	if s.NumConstraints() == 0 {
		t.Fatalf("NumConstraints() = 0, want the three-literal clause to survive")
	}
	got := s.constraints[0].literals
	if len(got) != 2 || got[0] != PositiveLiteral(a) || got[1] != PositiveLiteral(b) {
		t.Errorf("literals after Simplify = %v, want watched [a b] kept and c dropped", got)
	}
}
