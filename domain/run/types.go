package run

import (
	"fmt"
	"math"
	"strings"

	"isingmc/domain/core"
	"isingmc/domain/lattice"
)

// DefaultLatticeSize matches the reference chain length.
const DefaultLatticeSize = 50

// InitMode selects the chain's starting configuration
type InitMode string

const (
	InitOrderedUp   InitMode = "ordered-up"
	InitOrderedDown InitMode = "ordered-down"
	InitRandom      InitMode = "random"
)

// ParseInitMode parses a CLI/env value into an InitMode
func ParseInitMode(s string) (InitMode, error) {
	switch m := InitMode(strings.ToLower(strings.TrimSpace(s))); m {
	case InitOrderedUp, InitOrderedDown, InitRandom:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownInitMode, s)
}

// OutputMode selects what each output line carries
type OutputMode string

const (
	OutputMagnetization OutputMode = "magnetization"
	OutputSpins         OutputMode = "spins"
	OutputBoth          OutputMode = "both"
)

// ParseOutputMode parses a CLI/env value into an OutputMode
func ParseOutputMode(s string) (OutputMode, error) {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case OutputMagnetization, OutputSpins, OutputBoth:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownOutputMode, s)
}

// NeedsSpins reports whether samples must carry the spin vector
func (m OutputMode) NeedsSpins() bool {
	return m == OutputSpins || m == OutputBoth
}

// NeedsMagnetization reports whether lines start with the magnetization
func (m OutputMode) NeedsMagnetization() bool {
	return m == OutputMagnetization || m == OutputBoth
}

// Parameters fully describes one simulation run
type Parameters struct {
	BetaJ  float64    `json:"beta_j"`
	Sweeps int        `json:"sweeps"`
	Size   int        `json:"size"`
	Init   InitMode   `json:"init"`
	Output OutputMode `json:"output"`
}

// DefaultParameters returns the reference configuration for betaJ and sweeps
func DefaultParameters(betaJ float64, sweeps int) Parameters {
	return Parameters{
		BetaJ:  betaJ,
		Sweeps: sweeps,
		Size:   DefaultLatticeSize,
		Init:   InitOrderedUp,
		Output: OutputMagnetization,
	}
}

// TotalSteps is the number of attempted single-site updates, N * sweeps
func (p Parameters) TotalSteps() int {
	return p.Size * p.Sweeps
}

// Validate checks every field
func (p Parameters) Validate() error {
	if math.IsNaN(p.BetaJ) || math.IsInf(p.BetaJ, 0) {
		return core.NewValidationError("beta_j", "must be a finite number")
	}
	if p.Sweeps < 0 {
		return core.NewValidationError("sweeps", fmt.Sprintf("must be non-negative, got %d", p.Sweeps))
	}
	if p.Size < 1 {
		return core.NewValidationError("size", fmt.Sprintf("must be a positive integer, got %d", p.Size))
	}
	if p.Sweeps > 0 && p.Size > math.MaxInt/p.Sweeps {
		return core.NewValidationError("sweeps", "size * sweeps overflows")
	}
	if _, err := ParseInitMode(string(p.Init)); err != nil {
		return err
	}
	if _, err := ParseOutputMode(string(p.Output)); err != nil {
		return err
	}
	return nil
}

// Sample is the chain's state before one update attempt
type Sample struct {
	Step          int
	Magnetization float64
	// Spins is nil unless the output mode needs the spin vector
	Spins []lattice.Spin
}

// Result summarizes a finished run
type Result struct {
	Manifest           *Manifest `json:"manifest"`
	Steps              int       `json:"steps"`
	Accepted           int       `json:"accepted"`
	FinalMagnetization float64   `json:"final_magnetization"`
}

// AcceptanceRate is the fraction of attempted updates that flipped a spin
func (r Result) AcceptanceRate() float64 {
	if r.Steps == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Steps)
}
