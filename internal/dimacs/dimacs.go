// Package dimacs reads the DIMACS CNF text format used to exchange CNF
// instances, and writes the solver's result in the format described by the
// output contract. Proofs are written by sat.Solver.WriteProof, not here.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/eastlake-labs/cdcl-sat/internal/sat"
)

// FileFormatError reports malformed DIMACS CNF input: a missing or
// malformed header, a non-integer token, a missing clause terminator, or a
// variable index exceeding the declared variable count.
type FileFormatError struct {
	Line int // 1-indexed; zero when the underlying reader did not localize it
	Msg  string
}

func (e *FileFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("dimacs: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("dimacs: %s", e.Msg)
}

// SATSolver is the subset of *sat.Solver that Load needs to populate.
type SATSolver interface {
	AddVariable() int
	AddClause(lits []sat.Literal) bool
}

func openFile(filename string, gzipped bool) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !gzipped {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{gz: gz, file: f}, nil
}

// gzipReadCloser closes both the gzip reader and the underlying file.
type gzipReadCloser struct {
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fileErr := g.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// Load reads a DIMACS CNF file, registering its variables and clauses with
// solver. Tautological clauses are silently dropped (solver.AddClause's
// underlying sat.NewClause already discards them); a malformed file yields
// a *FileFormatError.
func Load(filename string, gzipped bool, solver SATSolver) error {
	r, err := openFile(filename, gzipped)
	if err != nil {
		return &FileFormatError{Msg: err.Error()}
	}
	defer r.Close()

	b := &cnfBuilder{solver: solver}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return &FileFormatError{Msg: err.Error()}
	}
	if !b.sawProblem {
		return &FileFormatError{Msg: "missing problem line"}
	}
	return nil
}

// cnfBuilder adapts a SATSolver to the github.com/rhartert/dimacs.Builder
// callback interface.
type cnfBuilder struct {
	solver     SATSolver
	nVars      int
	sawProblem bool
}

func (b *cnfBuilder) Problem(problem string, nVars int, nClauses int) error {
	if b.sawProblem {
		return fmt.Errorf("multiple problem lines")
	}
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q", problem)
	}
	b.sawProblem = true
	b.nVars = nVars
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *cnfBuilder) Comment(string) error { return nil }

func (b *cnfBuilder) Clause(tmp []int) error {
	if !b.sawProblem {
		return fmt.Errorf("clause before problem line")
	}
	clause := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		v := l
		if v < 0 {
			v = -v
		}
		if v == 0 || v > b.nVars {
			return fmt.Errorf("variable %d out of range [1, %d]", v, b.nVars)
		}
		if l < 0 {
			clause[i] = sat.NegativeLiteral(v - 1)
		} else {
			clause[i] = sat.PositiveLiteral(v - 1)
		}
	}
	b.solver.AddClause(clause)
	return nil
}

// WriteResult writes the solver's outcome in the §6.2 output contract:
// "SAT" followed by the signed-literal assignment terminated by 0, "UNSAT",
// or "UNKNOWN".
func WriteResult(w io.Writer, status sat.Status, model []bool) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	switch status {
	case sat.Sat:
		if _, err := fmt.Fprintln(bw, "SAT"); err != nil {
			return err
		}
		for v, val := range model {
			lit := v + 1
			if !val {
				lit = -lit
			}
			if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(bw, "0")
		return err
	case sat.Unsat:
		_, err := fmt.Fprintln(bw, "UNSAT")
		return err
	default:
		_, err := fmt.Fprintln(bw, "UNKNOWN")
		return err
	}
}
