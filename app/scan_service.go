package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"isingmc/domain/run"
	"isingmc/internal/errors"
	"isingmc/ports"

	"golang.org/x/sync/errgroup"
)

// SourceFactory creates the random source of one scan entry. Each run gets
// its own source; sources are never shared between goroutines.
type SourceFactory func(index int) (ports.RandomSource, error)

// SinkFactory opens the sample sink for one scan entry
type SinkFactory func(path string, mode run.OutputMode) (ports.SampleSink, error)

// ScanService runs independent simulations over a list of betaJ values
type ScanService struct {
	simulation *SimulationService
	newSink    SinkFactory
	logger     *slog.Logger
}

// ScanRequest defines a betaJ scan
type ScanRequest struct {
	BetaJs    []float64
	Base      run.Parameters // BetaJ is overridden per entry
	OutputDir string
	Parallel  int
	NewSource SourceFactory
	RNGMode   string
	// Seed, when non-zero, is offset by the entry index so entries get
	// distinct but reproducible streams
	Seed uint64
}

// ScanEntry is the outcome of one betaJ in a scan
type ScanEntry struct {
	BetaJ  float64     `json:"beta_j"`
	Path   string      `json:"path"`
	Result *run.Result `json:"result"`
}

// NewScanService creates a scan service
func NewScanService(simulation *SimulationService, newSink SinkFactory, logger *slog.Logger) *ScanService {
	return &ScanService{
		simulation: simulation,
		newSink:    newSink,
		logger:     logger,
	}
}

// ScanFileName names the sample file of one betaJ
func ScanFileName(betaJ float64) string {
	return "m_betaJ=" + strconv.FormatFloat(betaJ, 'g', -1, 64) + ".dat"
}

// Run executes every entry with at most req.Parallel runs in flight. The
// first failure cancels the remaining entries.
func (s *ScanService) Run(ctx context.Context, req ScanRequest) ([]ScanEntry, error) {
	if len(req.BetaJs) == 0 {
		return nil, errors.InvalidInput("scan needs at least one betaJ value")
	}
	if req.NewSource == nil {
		return nil, errors.InvalidInput("scan request has no source factory")
	}
	if req.Parallel < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("scan parallelism must be positive, got %d", req.Parallel))
	}

	seen := make(map[string]bool, len(req.BetaJs))
	for _, b := range req.BetaJs {
		name := ScanFileName(b)
		if seen[name] {
			return nil, errors.InvalidInput(fmt.Sprintf("betaJ %v listed twice", b))
		}
		seen[name] = true

		p := req.Base
		p.BetaJ = b
		if err := p.Validate(); err != nil {
			return nil, errors.WithCode(errors.CodeValidationError, err)
		}
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, errors.IOError("cannot create output directory "+req.OutputDir, err)
	}

	s.logger.Info("starting scan", "entries", len(req.BetaJs), "parallel", req.Parallel, "dir", req.OutputDir)

	entries := make([]ScanEntry, len(req.BetaJs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Parallel)

	for i, betaJ := range req.BetaJs {
		g.Go(func() error {
			entry, err := s.runEntry(gctx, req, i, betaJ)
			if err != nil {
				return errors.Wrapf(err, "betaJ %v", betaJ)
			}
			entries[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("scan completed", "entries", len(entries))
	return entries, nil
}

func (s *ScanService) runEntry(ctx context.Context, req ScanRequest, index int, betaJ float64) (ScanEntry, error) {
	src, err := req.NewSource(index)
	if err != nil {
		return ScanEntry{}, err
	}

	params := req.Base
	params.BetaJ = betaJ
	path := filepath.Join(req.OutputDir, ScanFileName(betaJ))

	out, err := s.newSink(path, params.Output)
	if err != nil {
		return ScanEntry{}, err
	}

	seed := req.Seed
	if seed != 0 {
		seed += uint64(index)
	}

	result, runErr := s.simulation.Run(ctx, SimulationRequest{
		Parameters: params,
		RNG:        src,
		RNGMode:    req.RNGMode,
		Seed:       seed,
		OutputPath: path,
	}, out)
	closeErr := out.Close()
	if runErr != nil {
		return ScanEntry{}, runErr
	}
	if closeErr != nil {
		return ScanEntry{}, closeErr
	}

	return ScanEntry{BetaJ: betaJ, Path: path, Result: result}, nil
}
