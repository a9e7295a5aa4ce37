package app

import (
	"context"
	"log/slog"
	"time"

	"isingmc/domain/lattice"
	"isingmc/domain/run"
	"isingmc/internal/errors"
	"isingmc/ports"
)

// SimulationService drives the Metropolis update loop of one chain
type SimulationService struct {
	logger      *slog.Logger
	codeVersion string
	ledger      ports.RunLedgerWriter
}

// SimulationRequest defines the inputs for one run
type SimulationRequest struct {
	Parameters run.Parameters
	// RNG is owned by this run for its whole duration
	RNG     ports.RandomSource
	RNGMode string
	// Seed is recorded in the manifest; 0 means entropy-seeded
	Seed uint64
	// OutputPath is where the caller's sink writes, for the ledger record
	OutputPath string
}

// NewSimulationService creates a simulation service
func NewSimulationService(logger *slog.Logger, codeVersion string) *SimulationService {
	return &SimulationService{
		logger:      logger,
		codeVersion: codeVersion,
	}
}

// WithLedger makes the service record every finished run
func (s *SimulationService) WithLedger(ledger ports.RunLedgerWriter) *SimulationService {
	s.ledger = ledger
	return s
}

// Run initializes the chain and performs N*sweeps update attempts. Before
// every attempt the current magnetization (and, if the output mode asks
// for it, the spin vector) is written to sink. The sink is not closed.
func (s *SimulationService) Run(ctx context.Context, req SimulationRequest, sink ports.SampleSink) (*run.Result, error) {
	p := req.Parameters
	if err := p.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}
	if req.RNG == nil {
		return nil, errors.InvalidInput("simulation request has no random source")
	}
	if sink == nil {
		return nil, errors.InvalidInput("simulation request has no sample sink")
	}

	chain, err := lattice.NewChain(p.Size, req.RNG)
	if err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}
	if err := initialize(chain, p.Init); err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}

	manifest := run.NewManifest(p, req.RNGMode, req.Seed, s.codeVersion)
	logger := s.logger.With("run_id", manifest.RunID.String())
	logger.Info("starting run",
		"beta_j", p.BetaJ,
		"size", p.Size,
		"sweeps", p.Sweeps,
		"steps", p.TotalSteps(),
		"init", p.Init,
		"output", p.Output,
		"rng", req.RNGMode,
		"fingerprint", manifest.Fingerprint.Short(),
	)

	start := time.Now()
	total := p.TotalSteps()
	accepted := 0
	var spins []lattice.Spin

	for step := 0; step < total; step++ {
		if step%p.Size == 0 {
			if err := ctx.Err(); err != nil {
				logger.Warn("run cancelled", "step", step, "error", err)
				return nil, err
			}
		}

		sample := run.Sample{Step: step, Magnetization: chain.Magnetization()}
		if p.Output.NeedsSpins() {
			spins = chain.AppendSpins(spins[:0])
			sample.Spins = spins
		}
		if err := sink.WriteSample(sample); err != nil {
			logger.Error("cannot write sample", "step", step, "error", err)
			return nil, errors.Wrapf(err, "write sample %d", step)
		}

		index := req.RNG.UniformInt(0, p.Size-1)
		flipped, err := chain.AttemptFlip(index, p.BetaJ)
		if err != nil {
			return nil, errors.Wrapf(err, "update step %d", step)
		}
		if flipped {
			accepted++
		}
	}

	result := &run.Result{
		Manifest:           manifest,
		Steps:              total,
		Accepted:           accepted,
		FinalMagnetization: chain.Magnetization(),
	}

	logger.Info("run completed",
		"steps", result.Steps,
		"accepted", result.Accepted,
		"acceptance_rate", result.AcceptanceRate(),
		"final_magnetization", result.FinalMagnetization,
		"duration", time.Since(start),
	)

	if s.ledger != nil {
		if err := s.ledger.RecordRun(ctx, run.NewRecord(result, req.OutputPath)); err != nil {
			logger.Error("cannot record run", "error", err)
			return nil, errors.Wrapf(err, "record run %s", manifest.RunID)
		}
	}

	return result, nil
}

func initialize(chain *lattice.Chain, mode run.InitMode) error {
	switch mode {
	case run.InitOrderedUp:
		return chain.InitializeOrdered(lattice.Up)
	case run.InitOrderedDown:
		return chain.InitializeOrdered(lattice.Down)
	case run.InitRandom:
		chain.InitializeRandom()
		return nil
	}
	_, err := run.ParseInitMode(string(mode))
	return err
}
