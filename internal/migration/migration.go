package migration

import (
	"context"

	"isingmc/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order. Every step is idempotent.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create ising_runs table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

// runsTable holds one row per completed simulation run
const runsTable = `
		CREATE TABLE IF NOT EXISTS ising_runs (
			run_id VARCHAR(64) PRIMARY KEY,
			beta_j DOUBLE PRECISION NOT NULL,
			sweeps INTEGER NOT NULL,
			size INTEGER NOT NULL,
			init_mode VARCHAR(32) NOT NULL,
			output_mode VARCHAR(32) NOT NULL,
			rng_mode VARCHAR(32) NOT NULL,
			seed BIGINT NOT NULL DEFAULT 0,
			code_version VARCHAR(64) NOT NULL,
			fingerprint CHAR(64) NOT NULL,
			steps BIGINT NOT NULL,
			accepted BIGINT NOT NULL,
			final_magnetization DOUBLE PRECISION NOT NULL,
			output_path TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL,
			completed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`

var runsIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_ising_runs_beta_j ON ising_runs(beta_j)`,
	`CREATE INDEX IF NOT EXISTS idx_ising_runs_completed_at ON ising_runs(completed_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_ising_runs_fingerprint ON ising_runs(fingerprint)`,
}

// Statements returns every DDL statement Run executes, in order
func (r *MigrationRunner) Statements() []string {
	return append([]string{runsTable}, runsIndexes...)
}

func (r *MigrationRunner) createRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, runsTable)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range runsIndexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
