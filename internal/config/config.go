package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"isingmc/adapters/rng"
	"isingmc/domain/run"
	"isingmc/internal/errors"
	"isingmc/internal/logging"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	RNG        RNGConfig
	Scan       ScanConfig
	Database   DatabaseConfig
	Server     ServerConfig
	Logging    LoggingConfig
}

// SimulationConfig holds the defaults for a single run
type SimulationConfig struct {
	LatticeSize int
	Init        run.InitMode
	Output      run.OutputMode
}

// RNGConfig selects the random source
type RNGConfig struct {
	Mode rng.Mode
	// Seed of 0 means seed from OS entropy
	Seed uint64
}

// ScanConfig holds settings for multi-betaJ scans
type ScanConfig struct {
	Parallel int
}

// DatabaseConfig holds the run ledger database settings. An empty URL
// keeps the ledger in memory.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Addr string
	// DataDir receives the sample files of runs started over HTTP
	DataDir string
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level slog.Level
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load .env")
	}
	return nil
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	simConfig, err := loadSimulationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load simulation configuration")
	}
	config.Simulation = *simConfig

	rngConfig, err := loadRNGConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load rng configuration")
	}
	config.RNG = *rngConfig

	config.Scan = ScanConfig{
		Parallel: getEnvIntOrDefault("ISING_SCAN_PARALLEL", runtime.NumCPU()),
	}

	config.Database = DatabaseConfig{
		URL: os.Getenv("DATABASE_URL"),
	}

	config.Server = ServerConfig{
		Addr:    getEnvOrDefault("ISING_HTTP_ADDR", ":8080"),
		DataDir: getEnvOrDefault("ISING_DATA_DIR", "runs"),
	}

	level, err := logging.ParseLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load logging configuration")
	}
	config.Logging = LoggingConfig{Level: level}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadSimulationConfig() (*SimulationConfig, error) {
	size, err := getEnvInt("ISING_LATTICE_SIZE", run.DefaultLatticeSize)
	if err != nil {
		return nil, err
	}

	init, err := run.ParseInitMode(getEnvOrDefault("ISING_INIT_MODE", string(run.InitOrderedUp)))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	output, err := run.ParseOutputMode(getEnvOrDefault("ISING_OUTPUT_MODE", string(run.OutputMagnetization)))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	return &SimulationConfig{
		LatticeSize: size,
		Init:        init,
		Output:      output,
	}, nil
}

func loadRNGConfig() (*RNGConfig, error) {
	mode, err := rng.ParseMode(getEnvOrDefault("ISING_RNG_MODE", string(rng.ModeLifetime)))
	if err != nil {
		return nil, errors.ConfigInvalid(err.Error())
	}

	var seed uint64
	if value := os.Getenv("ISING_SEED"); value != "" {
		seed, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid(fmt.Sprintf("ISING_SEED must be an unsigned integer, got %q", value))
		}
	}

	return &RNGConfig{Mode: mode, Seed: seed}, nil
}

func validateConfig(config *Config) error {
	if config.Simulation.LatticeSize < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("lattice size must be positive, got %d", config.Simulation.LatticeSize))
	}
	if config.Scan.Parallel < 1 {
		return errors.ConfigInvalid(fmt.Sprintf("scan parallelism must be positive, got %d", config.Scan.Parallel))
	}
	if config.RNG.Mode == rng.ModePerCall && config.RNG.Seed != 0 {
		return errors.ConfigInvalid("ISING_SEED cannot be combined with the per-call rng mode")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt is getEnvIntOrDefault that rejects malformed values instead of
// silently falling back
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer, got %q", key, value))
	}
	return intValue, nil
}
