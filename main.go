package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eastlake-labs/cdcl-sat/internal/config"
	"github.com/eastlake-labs/cdcl-sat/internal/dimacs"
	"github.com/eastlake-labs/cdcl-sat/internal/sat"
	"github.com/eastlake-labs/cdcl-sat/internal/telemetry"
)

// Exit codes for the output contract: 10=SAT, 20=UNSAT, 0=unknown, >0 (but
// not 10/20) for a parse or setup error.
const (
	exitSat         = 10
	exitUnsat       = 20
	exitUnknown     = 0
	exitParseFailed = 1
)

var flags *config.Flags

var rootCmd = &cobra.Command{
	Use:   "cdcl-sat [instance.cnf]",
	Short: "A CDCL SAT solver",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	flags = config.Register(rootCmd.Flags())
}

func runSolve(cmd *cobra.Command, args []string) error {
	instanceFile := args[0]

	opts, err := config.Resolve(flags, cmd.Flags())
	if err != nil {
		return err
	}

	log := logrus.New()
	observer := telemetry.NewLogObserver(log)
	opts.Observer = observer

	if flags.ProofFile != "" {
		opts.Proof = sat.NewRecordingProof()
	}

	if flags.CPUProfile != "" {
		f, err := os.Create(flags.CPUProfile)
		if err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	s := sat.NewSolver(opts)
	if err := dimacs.Load(instanceFile, false, s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitParseFailed)
	}

	log.WithFields(logrus.Fields{
		"variables": s.NumVariables(),
		"clauses":   s.NumConstraints(),
	}).Info("loaded instance")

	start := time.Now()
	status := s.Solve(context.Background())
	elapsed := time.Since(start)

	if err := dimacs.WriteResult(os.Stdout, status, s.Model()); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	stats := s.Stats()
	log.WithFields(logrus.Fields{
		"status":       status.Label(),
		"elapsed":      elapsed,
		"decisions":    stats.Decisions,
		"conflicts":    stats.Conflicts,
		"propagations": stats.Propagations,
		"restarts":     stats.Restarts,
	}).Info("solve finished")

	if status == sat.Unsat && flags.ProofFile != "" {
		f, err := os.Create(flags.ProofFile)
		if err != nil {
			return fmt.Errorf("proof file: %w", err)
		}
		defer f.Close()
		if err := s.WriteProof(f); err != nil {
			return fmt.Errorf("writing proof: %w", err)
		}
	}

	if flags.MemProfile != "" {
		f, err := os.Create(flags.MemProfile)
		if err != nil {
			return fmt.Errorf("mem profile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("mem profile: %w", err)
		}
	}

	switch status {
	case sat.Sat:
		os.Exit(exitSat)
	case sat.Unsat:
		os.Exit(exitUnsat)
	default:
		os.Exit(exitUnknown)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitParseFailed)
	}
}
