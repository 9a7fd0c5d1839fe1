package sat

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// TestProofPigeonholeRefutation verifies that solving an UNSAT instance that
// requires more than one resolution step (PHP(3,2), as in
// TestPigeonholeThreeIntoTwo) emits a sound resolution refutation: every
// recorded step is a genuine resolution of the two clauses it cites, and the
// final clause is empty.
func TestProofPigeonholeRefutation(t *testing.T) {
	opts := DefaultOptions
	opts.Proof = NewRecordingProof()
	s := NewSolver(opts)

	lit := make([][]int, 3)
	for p := range lit {
		lit[p] = make([]int, 2)
		for h := range lit[p] {
			lit[p][h] = s.AddVariable()
		}
	}
	for p := 0; p < 3; p++ {
		s.AddClause([]Literal{PositiveLiteral(lit[p][0]), PositiveLiteral(lit[p][1])})
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 3; p1++ {
			for p2 := p1 + 1; p2 < 3; p2++ {
				s.AddClause([]Literal{NegativeLiteral(lit[p1][h]), NegativeLiteral(lit[p2][h])})
			}
		}
	}

	if status := s.Solve(context.Background()); status != Unsat {
		t.Fatalf("Solve() = %v, want Unsat", status)
	}

	var buf bytes.Buffer
	if err := s.WriteProof(&buf); err != nil {
		t.Fatalf("WriteProof(): %s", err)
	}

	clauses, steps := parseProof(t, buf.String())
	if len(steps) < 2 {
		t.Fatalf("proof has %d resolution steps, want >= 2 (PHP(3,2) needs multi-step resolution)", len(steps))
	}

	for _, step := range steps {
		a, b, derived := clauses[step[0]-1], clauses[step[1]-1], clauses[step[2]-1]
		if !isResolvent(a, b, derived) {
			t.Errorf("step %v: clause %v is not a valid resolvent of %v and %v", step, derived, a, b)
		}
	}

	last := clauses[len(clauses)-1]
	if len(last) != 0 {
		t.Errorf("final clause = %v, want empty", last)
	}
}

// parseProof parses the plain-text resolution-refutation format documented
// on ProofRecorder: a "v K" header, K clauses (one literal list per line,
// possibly empty for the final clause), then one "i j k" triple per
// resolution step, all 1-indexed.
func parseProof(t *testing.T, data string) (clauses [][]int, steps [][3]int) {
	t.Helper()
	sc := bufio.NewScanner(strings.NewReader(data))
	if !sc.Scan() {
		t.Fatalf("proof has no header")
	}
	var k int
	if _, err := fmt.Sscanf(sc.Text(), "v %d", &k); err != nil {
		t.Fatalf("bad header %q: %s", sc.Text(), err)
	}
	for i := 0; i < k; i++ {
		if !sc.Scan() {
			t.Fatalf("proof truncated: expected %d clauses, got %d", k, i)
		}
		clauses = append(clauses, parseLits(sc.Text()))
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			t.Fatalf("bad step line %q", line)
		}
		var step [3]int
		for i, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				t.Fatalf("bad step line %q: %s", line, err)
			}
			step[i] = n
		}
		steps = append(steps, step)
	}
	return clauses, steps
}

func parseLits(line string) []int {
	fields := strings.Fields(line)
	lits := make([]int, 0, len(fields))
	for _, f := range fields {
		n, _ := strconv.Atoi(f)
		lits = append(lits, n)
	}
	return lits
}

// isResolvent reports whether derived is the resolvent of a and b over some
// single pivot variable: a literal present in a and negated in b (or vice
// versa), dropped from both sides, with everything else from a and b kept.
func isResolvent(a, b, derived []int) bool {
	for _, pivot := range a {
		if !containsLit(b, -pivot) {
			continue
		}
		want := map[int]bool{}
		for _, l := range a {
			if l != pivot {
				want[l] = true
			}
		}
		for _, l := range b {
			if l != -pivot {
				want[l] = true
			}
		}
		got := map[int]bool{}
		for _, l := range derived {
			got[l] = true
		}
		if len(want) == len(got) && literalSetsEqual(want, got) {
			return true
		}
	}
	return false
}

func containsLit(lits []int, l int) bool {
	for _, x := range lits {
		if x == l {
			return true
		}
	}
	return false
}

func literalSetsEqual(a, b map[int]bool) bool {
	for l := range a {
		if !b[l] {
			return false
		}
	}
	return true
}
