package ports

import (
	"context"

	"isingmc/domain/core"
	"isingmc/domain/run"
)

// RunLedgerWriter provides append-only write access to finished runs
type RunLedgerWriter interface {
	RecordRun(ctx context.Context, record run.Record) error
}

// RunLedgerReader provides read-only access to recorded runs.
// GetRun returns core.ErrRunNotFound for unknown IDs.
type RunLedgerReader interface {
	GetRun(ctx context.Context, runID core.RunID) (*run.Record, error)
	ListRuns(ctx context.Context, filters RunFilters) ([]run.Record, error)
}

// RunFilters for querying recorded runs, newest first
type RunFilters struct {
	BetaJ  *float64
	Limit  int
	Offset int
}

// RunLedger combines read and write access
type RunLedger interface {
	RunLedgerWriter
	RunLedgerReader
}
