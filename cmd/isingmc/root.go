package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"isingmc/adapters/rng"
	"isingmc/domain/run"
	"isingmc/internal/config"
	"isingmc/internal/container"
	"isingmc/internal/errors"
	"isingmc/internal/logging"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X main.Version=..."
var Version = "dev"

// settings are the flag values shared by run and scan; unset flags fall
// back to the environment configuration
type settings struct {
	size       int
	initMode   string
	outputMode string
	rngMode    string
	seed       uint64
}

func addSimulationFlags(cmd *cobra.Command, s *settings) {
	cmd.Flags().IntVar(&s.size, "size", run.DefaultLatticeSize, "Number of spins N in the chain (env ISING_LATTICE_SIZE)")
	cmd.Flags().StringVar(&s.initMode, "init", string(run.InitOrderedUp), "Initial state: ordered-up, ordered-down or random (env ISING_INIT_MODE)")
	cmd.Flags().StringVar(&s.outputMode, "output-mode", string(run.OutputMagnetization), "Line contents: magnetization, spins or both (env ISING_OUTPUT_MODE)")
	cmd.Flags().StringVar(&s.rngMode, "rng", string(rng.ModeLifetime), "Random source: lifetime or per-call (env ISING_RNG_MODE)")
	cmd.Flags().Uint64Var(&s.seed, "seed", 0, "Fixed seed for a reproducible run; 0 seeds from OS entropy (env ISING_SEED)")
}

// resolved merges flags over the loaded configuration
type resolved struct {
	base    run.Parameters
	rngMode rng.Mode
	seed    uint64
}

func (s *settings) resolve(cmd *cobra.Command, cfg *config.Config) (*resolved, error) {
	out := &resolved{
		base: run.Parameters{
			Size:   cfg.Simulation.LatticeSize,
			Init:   cfg.Simulation.Init,
			Output: cfg.Simulation.Output,
		},
		rngMode: cfg.RNG.Mode,
		seed:    cfg.RNG.Seed,
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		out.base.Size = s.size
	}
	if flags.Changed("init") {
		mode, err := run.ParseInitMode(s.initMode)
		if err != nil {
			return nil, errors.ParseError("--init", err)
		}
		out.base.Init = mode
	}
	if flags.Changed("output-mode") {
		mode, err := run.ParseOutputMode(s.outputMode)
		if err != nil {
			return nil, errors.ParseError("--output-mode", err)
		}
		out.base.Output = mode
	}
	if flags.Changed("rng") {
		mode, err := rng.ParseMode(s.rngMode)
		if err != nil {
			return nil, errors.ParseError("--rng", err)
		}
		out.rngMode = mode
	}
	if flags.Changed("seed") {
		out.seed = s.seed
	}
	return out, nil
}

// cliApp carries what every command needs once configuration is loaded
type cliApp struct {
	cfg       *config.Config
	logger    *slog.Logger
	container *container.Container
	logLevel  string
	stderr    io.Writer
}

func (a *cliApp) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		level, err = logging.ParseLevel(a.logLevel)
		if err != nil {
			return errors.ParseError("--log-level", err)
		}
	}

	a.cfg = cfg
	a.logger = logging.NewWithWriter(a.stderr, level)

	c, err := container.New(cfg, a.logger, Version)
	if err != nil {
		return errors.Wrap(err, "failed to create application container")
	}
	if err := c.Init(cmd.Context()); err != nil {
		return err
	}
	a.container = c
	return nil
}

func (a *cliApp) shutdown() {
	if a.container == nil {
		return
	}
	if err := a.container.Shutdown(); err != nil {
		a.logger.Warn("shutdown failed", "error", err)
	}
}

func newRootCmd(a *cliApp, stdout, stderr io.Writer) *cobra.Command {
	root := newRunCmd(a)
	root.Use = "isingmc <betaJ> <sweeps> <outputPath>"
	root.Short = "Metropolis Monte Carlo simulation of a 1D Ising spin chain"
	root.Long = `isingmc evolves a periodic one-dimensional Ising chain with the Metropolis
rule and writes the magnetization before every attempted update, one value per
line. Running the root command is the same as "isingmc run".

Use "--" before a negative betaJ, e.g. isingmc -- -0.5 100 out.dat`
	root.Version = Version
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Usage(err.Error())
	})
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "INFO", "Log level: ERROR, WARN, INFO or DEBUG (env LOG_LEVEL)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return a.setup(cmd)
	}

	root.AddCommand(
		newRunCmd(a),
		newScanCmd(a),
		newSummarizeCmd(a),
		newRunsCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// execute runs the CLI and returns the process exit status
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &cliApp{stderr: stderr}
	defer a.shutdown()

	root := newRootCmd(a, stdout, stderr)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.GetCode(err) == errors.CodeUsage && cmd != nil {
			fmt.Fprint(stderr, cmd.UsageString())
		}
	}
	return errors.ExitCode(err)
}

// positional returns an Args validator that rejects anything but exactly
// the named parameters
func positional(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			return errors.Usage(fmt.Sprintf("not enough parameters: got %d, want %d (%s)", len(args), len(names), joinNames(names)))
		}
		if len(args) > len(names) {
			return errors.Usage(fmt.Sprintf("too many parameters: got %d, want %d (%s)", len(args), len(names), joinNames(names)))
		}
		return nil
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += "<" + n + ">"
	}
	return out
}
