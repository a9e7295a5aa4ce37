package main

import (
	"strconv"

	"isingmc/adapters/rng"
	"isingmc/adapters/sink"
	"isingmc/app"
	"isingmc/internal/errors"

	"github.com/spf13/cobra"
)

func newRunCmd(a *cliApp) *cobra.Command {
	s := &settings{}

	cmd := &cobra.Command{
		Use:   "run <betaJ> <sweeps> <outputPath>",
		Short: "Simulate one chain and write its magnetization series",
		Long: `Simulate one chain at the given betaJ for sweeps*N attempted updates.

Each line of outputPath holds the magnetization before one attempted update
(or the spin vector, see --output-mode).

Example: isingmc run 0.5 1000 m.dat --size 100 --seed 42`,
		Args: positional("betaJ", "sweeps", "outputPath"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, a, s, args)
		},
	}
	addSimulationFlags(cmd, s)
	return cmd
}

func runSimulation(cmd *cobra.Command, a *cliApp, s *settings, args []string) error {
	betaJ, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errors.ParseError("betaJ", err)
	}
	sweeps, err := parseSweeps(args[1])
	if err != nil {
		return err
	}
	outputPath := args[2]

	opts, err := s.resolve(cmd, a.cfg)
	if err != nil {
		return err
	}
	params := opts.base
	params.BetaJ = betaJ
	params.Sweeps = sweeps
	if err := params.Validate(); err != nil {
		return errors.WithCode(errors.CodeValidationError, err)
	}

	src, err := rng.New(opts.rngMode, opts.seed)
	if err != nil {
		return errors.WithCode(errors.CodeInvalidInput, err)
	}

	out, err := sink.Create(outputPath, params.Output)
	if err != nil {
		return err
	}

	_, runErr := a.container.Simulation.Run(cmd.Context(), app.SimulationRequest{
		Parameters: params,
		RNG:        src,
		RNGMode:    string(opts.rngMode),
		Seed:       opts.seed,
		OutputPath: outputPath,
	}, out)
	closeErr := out.Close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func parseSweeps(arg string) (int, error) {
	sweeps, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.ParseError("sweeps", err)
	}
	if sweeps < 0 {
		return 0, errors.ParseError("sweeps", errors.InvalidInput("must not be negative, got "+arg))
	}
	return sweeps, nil
}
