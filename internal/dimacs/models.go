package dimacs

import (
	"fmt"

	"github.com/rhartert/dimacs"
)

// ReadModels parses a models fixture file: one model per line, each a
// whitespace-separated list of signed literals terminated by 0, using the
// same literal convention as a DIMACS clause. It carries no problem line.
func ReadModels(filename string) ([][]bool, error) {
	r, err := openFile(filename, false)
	if err != nil {
		return nil, &FileFormatError{Msg: err.Error()}
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, &FileFormatError{Msg: err.Error()}
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(string, int, int) error {
	return fmt.Errorf("models file must not contain a problem line")
}

func (b *modelBuilder) Comment(string) error { return nil }

func (b *modelBuilder) Clause(tmp []int) error {
	model := make([]bool, len(tmp))
	for i, l := range tmp {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
