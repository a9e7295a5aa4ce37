package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"isingmc/domain/core"
	"isingmc/domain/run"
	"isingmc/ports"

	"github.com/jmoiron/sqlx"
)

// RunLedger implements ports.RunLedger for PostgreSQL
type RunLedger struct {
	db *sqlx.DB
}

// NewRunLedger creates a new PostgreSQL run ledger. The ising_runs table
// must exist; see internal/migration.
func NewRunLedger(db *sqlx.DB) *RunLedger {
	return &RunLedger{db: db}
}

// runRow mirrors one row of ising_runs
type runRow struct {
	RunID              string    `db:"run_id"`
	BetaJ              float64   `db:"beta_j"`
	Sweeps             int       `db:"sweeps"`
	Size               int       `db:"size"`
	InitMode           string    `db:"init_mode"`
	OutputMode         string    `db:"output_mode"`
	RNGMode            string    `db:"rng_mode"`
	Seed               int64     `db:"seed"`
	CodeVersion        string    `db:"code_version"`
	Fingerprint        string    `db:"fingerprint"`
	Steps              int64     `db:"steps"`
	Accepted           int64     `db:"accepted"`
	FinalMagnetization float64   `db:"final_magnetization"`
	OutputPath         string    `db:"output_path"`
	CreatedAt          time.Time `db:"created_at"`
	CompletedAt        time.Time `db:"completed_at"`
}

const runColumns = `run_id, beta_j, sweeps, size, init_mode, output_mode, rng_mode, seed,
	code_version, fingerprint, steps, accepted, final_magnetization, output_path, created_at, completed_at`

func toRow(record run.Record) runRow {
	m := record.Manifest
	return runRow{
		RunID:      m.RunID.String(),
		BetaJ:      m.Parameters.BetaJ,
		Sweeps:     m.Parameters.Sweeps,
		Size:       m.Parameters.Size,
		InitMode:   string(m.Parameters.Init),
		OutputMode: string(m.Parameters.Output),
		RNGMode:    m.RNGMode,
		// BIGINT is signed; the seed's bits are stored unchanged
		Seed:               int64(m.Seed),
		CodeVersion:        m.CodeVersion,
		Fingerprint:        m.Fingerprint.String(),
		Steps:              int64(record.Steps),
		Accepted:           int64(record.Accepted),
		FinalMagnetization: record.FinalMagnetization,
		OutputPath:         record.OutputPath,
		CreatedAt:          m.CreatedAt.Time(),
		CompletedAt:        record.CompletedAt.Time(),
	}
}

func (r runRow) toRecord() run.Record {
	return run.Record{
		Result: run.Result{
			Manifest: &run.Manifest{
				RunID: core.RunID(r.RunID),
				Parameters: run.Parameters{
					BetaJ:  r.BetaJ,
					Sweeps: r.Sweeps,
					Size:   r.Size,
					Init:   run.InitMode(r.InitMode),
					Output: run.OutputMode(r.OutputMode),
				},
				RNGMode:     r.RNGMode,
				Seed:        uint64(r.Seed),
				CodeVersion: r.CodeVersion,
				Fingerprint: core.Hash(r.Fingerprint),
				CreatedAt:   core.NewTimestamp(r.CreatedAt),
			},
			Steps:              int(r.Steps),
			Accepted:           int(r.Accepted),
			FinalMagnetization: r.FinalMagnetization,
		},
		OutputPath:  r.OutputPath,
		CompletedAt: core.NewTimestamp(r.CompletedAt),
	}
}

// RecordRun inserts a finished run
func (l *RunLedger) RecordRun(ctx context.Context, record run.Record) error {
	if record.Manifest == nil {
		return fmt.Errorf("record has no manifest")
	}
	_, err := l.db.NamedExecContext(ctx, `
		INSERT INTO ising_runs (`+runColumns+`)
		VALUES (:run_id, :beta_j, :sweeps, :size, :init_mode, :output_mode, :rng_mode, :seed,
			:code_version, :fingerprint, :steps, :accepted, :final_magnetization, :output_path, :created_at, :completed_at)
	`, toRow(record))
	return err
}

// GetRun retrieves a run by ID
func (l *RunLedger) GetRun(ctx context.Context, runID core.RunID) (*run.Record, error) {
	var row runRow
	err := l.db.GetContext(ctx, &row, `SELECT `+runColumns+` FROM ising_runs WHERE run_id = $1`, runID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	record := row.toRecord()
	return &record, nil
}

// ListRuns returns recorded runs newest first
func (l *RunLedger) ListRuns(ctx context.Context, filters ports.RunFilters) ([]run.Record, error) {
	query, args := listQuery(filters)

	var rows []runRow
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	records := make([]run.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func listQuery(filters ports.RunFilters) (string, []interface{}) {
	query := `SELECT ` + runColumns + ` FROM ising_runs`
	var args []interface{}

	if filters.BetaJ != nil {
		args = append(args, *filters.BetaJ)
		query += fmt.Sprintf(" WHERE beta_j = $%d", len(args))
	}
	query += " ORDER BY completed_at DESC, run_id DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

var _ ports.RunLedger = (*RunLedger)(nil)
