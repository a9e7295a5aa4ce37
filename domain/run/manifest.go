package run

import (
	"isingmc/domain/core"
)

// Manifest records everything needed to identify, and for seeded runs
// replay, a simulation run.
type Manifest struct {
	RunID       core.RunID     `json:"run_id"`
	Parameters  Parameters     `json:"parameters"`
	RNGMode     string         `json:"rng_mode"`
	Seed        uint64         `json:"seed"`
	CodeVersion string         `json:"code_version"`
	Fingerprint core.Hash      `json:"fingerprint"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// NewManifest creates a manifest with a fresh run ID
func NewManifest(params Parameters, rngMode string, seed uint64, codeVersion string) *Manifest {
	return &Manifest{
		RunID:       core.NewRunID(),
		Parameters:  params,
		RNGMode:     rngMode,
		Seed:        seed,
		CodeVersion: codeVersion,
		Fingerprint: ComputeFingerprint(params, rngMode, seed, codeVersion),
		CreatedAt:   core.Now(),
	}
}

// Replayable reports whether the run used a fixed seed
func (m *Manifest) Replayable() bool {
	return m.Seed != 0
}

// ComputeFingerprint hashes the determinism parameters of a run. Two
// seeded runs with equal fingerprints produce identical sample series.
func ComputeFingerprint(params Parameters, rngMode string, seed uint64, codeVersion string) core.Hash {
	return core.ComputeFieldsHash(map[string]interface{}{
		"beta_j":  params.BetaJ,
		"sweeps":  params.Sweeps,
		"size":    params.Size,
		"init":    params.Init,
		"output":  params.Output,
		"rng":     rngMode,
		"seed":    seed,
		"version": codeVersion,
	})
}
