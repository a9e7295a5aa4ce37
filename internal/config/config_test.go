package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"isingmc/adapters/rng"
	"isingmc/domain/run"
	"isingmc/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ISING_LATTICE_SIZE", "ISING_INIT_MODE", "ISING_OUTPUT_MODE",
	"ISING_RNG_MODE", "ISING_SEED", "ISING_SCAN_PARALLEL", "LOG_LEVEL",
	"DATABASE_URL", "ISING_HTTP_ADDR", "ISING_DATA_DIR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, run.DefaultLatticeSize, cfg.Simulation.LatticeSize)
	assert.Equal(t, run.InitOrderedUp, cfg.Simulation.Init)
	assert.Equal(t, run.OutputMagnetization, cfg.Simulation.Output)
	assert.Equal(t, rng.ModeLifetime, cfg.RNG.Mode)
	assert.Equal(t, uint64(0), cfg.RNG.Seed)
	assert.Equal(t, runtime.NumCPU(), cfg.Scan.Parallel)
	assert.Equal(t, slog.LevelInfo, cfg.Logging.Level)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "runs", cfg.Server.DataDir)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ISING_LATTICE_SIZE", "128")
	t.Setenv("ISING_INIT_MODE", "random")
	t.Setenv("ISING_OUTPUT_MODE", "both")
	t.Setenv("ISING_RNG_MODE", "lifetime")
	t.Setenv("ISING_SEED", "42")
	t.Setenv("ISING_SCAN_PARALLEL", "3")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DATABASE_URL", "postgres://localhost/ising?sslmode=disable")
	t.Setenv("ISING_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("ISING_DATA_DIR", "/tmp/ising")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/ising?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "/tmp/ising", cfg.Server.DataDir)

	assert.Equal(t, 128, cfg.Simulation.LatticeSize)
	assert.Equal(t, run.InitRandom, cfg.Simulation.Init)
	assert.Equal(t, run.OutputBoth, cfg.Simulation.Output)
	assert.Equal(t, uint64(42), cfg.RNG.Seed)
	assert.Equal(t, 3, cfg.Scan.Parallel)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric size", "ISING_LATTICE_SIZE", "fifty"},
		{"zero size", "ISING_LATTICE_SIZE", "0"},
		{"unknown init", "ISING_INIT_MODE", "diagonal"},
		{"unknown output", "ISING_OUTPUT_MODE", "hdf5"},
		{"unknown rng", "ISING_RNG_MODE", "global"},
		{"negative seed", "ISING_SEED", "-1"},
		{"zero parallel", "ISING_SCAN_PARALLEL", "0"},
		{"unknown log level", "LOG_LEVEL", "CHATTY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_SeedWithPerCallRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("ISING_RNG_MODE", "per-call")
	t.Setenv("ISING_SEED", "9")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ISING_LATTICE_SIZE=64\nISING_OUTPUT_MODE=spins\n"), 0o644))

	// godotenv does not override variables that are already set, and
	// t.Setenv("", ...) counts as set, so unset them for this test
	os.Unsetenv("ISING_LATTICE_SIZE")
	os.Unsetenv("ISING_OUTPUT_MODE")

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Simulation.LatticeSize)
	assert.Equal(t, run.OutputSpins, cfg.Simulation.Output)
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
