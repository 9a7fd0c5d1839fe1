// Package config resolves Options for a Solver from an optional YAML file
// and command-line flags, with flags taking precedence over the file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eastlake-labs/cdcl-sat/internal/sat"
)

// Flags mirrors sat.Options in a form pflag can bind directly to, plus the
// CLI-only fields (config file path, profiling, proof output) that have no
// place in Options itself.
type Flags struct {
	Heuristic     string
	NoVSIDS       bool
	RestartBase   int64
	MaxConflicts  int64
	Timeout       time.Duration
	ReduceDB      bool
	ConfigFile    string
	ProofFile     string
	CPUProfile    string
	MemProfile    string
}

// Register adds every flag to fs, pre-populated with sat.DefaultOptions'
// values so that an unset flag and an unset config key agree on the default.
func Register(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Heuristic, "heuristic", sat.DefaultOptions.Heuristic.String(), "branching heuristic: vsids, first, random, or greedy")
	fs.BoolVar(&f.NoVSIDS, "no-vsids", false, "equivalent to --heuristic first (kept for compatibility)")
	fs.Int64Var(&f.RestartBase, "restart", sat.DefaultOptions.RestartBase, "restart after this many conflicts, doubling each time; <= 0 disables restarts")
	fs.Int64Var(&f.MaxConflicts, "max-conflicts", sat.DefaultOptions.MaxConflicts, "abort and report unknown after this many conflicts; negative disables the bound")
	fs.DurationVar(&f.Timeout, "timeout", 0, "abort and report unknown after this much wall-clock time; zero disables the bound")
	fs.BoolVar(&f.ReduceDB, "reduce-db", sat.DefaultOptions.ReduceDB, "enable LBD-based learnt clause deletion")
	fs.StringVar(&f.ConfigFile, "config", "", "optional YAML file overriding the defaults above")
	fs.StringVar(&f.ProofFile, "proof", "", "write a resolution-refutation proof to this file on UNSAT")
	fs.StringVar(&f.CPUProfile, "cpu-profile", "", "write a pprof CPU profile to this file")
	fs.StringVar(&f.MemProfile, "mem-profile", "", "write a pprof heap profile to this file")
	return f
}

// heuristicByName maps the CLI/config vocabulary onto sat.HeuristicKind.
var heuristicByName = map[string]sat.HeuristicKind{
	"vsids":  sat.KindVSIDS,
	"first":  sat.KindFirstUnassigned,
	"random": sat.KindRandom,
	"greedy": sat.KindGreedy,
}

// Resolve loads f.ConfigFile (if set) via viper, lets any flag explicitly
// set on fs override the corresponding config key, and returns the
// resulting sat.Options.
func Resolve(f *Flags, fs *pflag.FlagSet) (sat.Options, error) {
	v := viper.New()
	v.SetDefault("heuristic", f.Heuristic)
	v.SetDefault("restart", f.RestartBase)
	v.SetDefault("max_conflicts", f.MaxConflicts)
	v.SetDefault("timeout", f.Timeout.String())
	v.SetDefault("reduce_db", f.ReduceDB)

	if f.ConfigFile != "" {
		v.SetConfigFile(f.ConfigFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return sat.Options{}, fmt.Errorf("config: %w", err)
		}
	}

	opts := sat.DefaultOptions

	heuristicName := v.GetString("heuristic")
	if fs.Changed("heuristic") {
		heuristicName = f.Heuristic
	}
	if fs.Changed("no-vsids") && f.NoVSIDS {
		heuristicName = "first"
	}
	kind, ok := heuristicByName[heuristicName]
	if !ok {
		return sat.Options{}, fmt.Errorf("config: unknown heuristic %q", heuristicName)
	}
	opts.Heuristic = kind

	opts.RestartBase = v.GetInt64("restart")
	if fs.Changed("restart") {
		opts.RestartBase = f.RestartBase
	}

	opts.MaxConflicts = v.GetInt64("max_conflicts")
	if fs.Changed("max-conflicts") {
		opts.MaxConflicts = f.MaxConflicts
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return sat.Options{}, fmt.Errorf("config: timeout: %w", err)
	}
	opts.Timeout = timeout
	if fs.Changed("timeout") {
		opts.Timeout = f.Timeout
	}

	opts.ReduceDB = v.GetBool("reduce_db")
	if fs.Changed("reduce-db") {
		opts.ReduceDB = f.ReduceDB
	}

	return opts, nil
}
