package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/eastlake-labs/cdcl-sat/internal/sat"
)

func TestResolve_defaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := Register(fs)

	opts, err := Resolve(f, fs)
	if err != nil {
		t.Fatalf("Resolve(): %s", err)
	}
	if opts.Heuristic != sat.KindVSIDS {
		t.Errorf("Heuristic = %v, want KindVSIDS", opts.Heuristic)
	}
	if opts.RestartBase != sat.DefaultOptions.RestartBase {
		t.Errorf("RestartBase = %d, want %d", opts.RestartBase, sat.DefaultOptions.RestartBase)
	}
}

func TestResolve_flagOverridesDefault(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := Register(fs)

	if err := fs.Parse([]string{"--heuristic=greedy", "--restart=64"}); err != nil {
		t.Fatalf("Parse(): %s", err)
	}

	opts, err := Resolve(f, fs)
	if err != nil {
		t.Fatalf("Resolve(): %s", err)
	}
	if opts.Heuristic != sat.KindGreedy {
		t.Errorf("Heuristic = %v, want KindGreedy", opts.Heuristic)
	}
	if opts.RestartBase != 64 {
		t.Errorf("RestartBase = %d, want 64", opts.RestartBase)
	}
}

func TestResolve_noVSIDSCompatFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := Register(fs)

	if err := fs.Parse([]string{"--no-vsids"}); err != nil {
		t.Fatalf("Parse(): %s", err)
	}

	opts, err := Resolve(f, fs)
	if err != nil {
		t.Fatalf("Resolve(): %s", err)
	}
	if opts.Heuristic != sat.KindFirstUnassigned {
		t.Errorf("Heuristic = %v, want KindFirstUnassigned", opts.Heuristic)
	}
}

func TestResolve_configFileOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("heuristic: random\nrestart: 128\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(): %s", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := Register(fs)
	if err := fs.Parse([]string{"--config=" + path}); err != nil {
		t.Fatalf("Parse(): %s", err)
	}

	opts, err := Resolve(f, fs)
	if err != nil {
		t.Fatalf("Resolve(): %s", err)
	}
	if opts.Heuristic != sat.KindRandom {
		t.Errorf("Heuristic = %v, want KindRandom", opts.Heuristic)
	}
	if opts.RestartBase != 128 {
		t.Errorf("RestartBase = %d, want 128", opts.RestartBase)
	}
}

func TestResolve_flagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("heuristic: random\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(): %s", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := Register(fs)
	if err := fs.Parse([]string{"--config=" + path, "--heuristic=greedy"}); err != nil {
		t.Fatalf("Parse(): %s", err)
	}

	opts, err := Resolve(f, fs)
	if err != nil {
		t.Fatalf("Resolve(): %s", err)
	}
	if opts.Heuristic != sat.KindGreedy {
		t.Errorf("Heuristic = %v, want KindGreedy (flag should win over config file)", opts.Heuristic)
	}
}

func TestResolve_unknownHeuristic(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := Register(fs)
	if err := fs.Parse([]string{"--heuristic=bogus"}); err != nil {
		t.Fatalf("Parse(): %s", err)
	}
	if _, err := Resolve(f, fs); err == nil {
		t.Error("Resolve(): want error for unknown heuristic, got none")
	}
}
