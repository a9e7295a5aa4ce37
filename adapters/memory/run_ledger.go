package memory

import (
	"context"
	"fmt"
	"sync"

	"isingmc/domain/core"
	"isingmc/domain/run"
	"isingmc/ports"
)

// RunLedger implements ports.RunLedger with in-memory storage. It is used
// when no database is configured and by tests.
type RunLedger struct {
	records map[core.RunID]run.Record
	order   []core.RunID
	mu      sync.RWMutex
}

// NewRunLedger creates an empty ledger
func NewRunLedger() *RunLedger {
	return &RunLedger{
		records: make(map[core.RunID]run.Record),
	}
}

func (l *RunLedger) RecordRun(ctx context.Context, record run.Record) error {
	id := record.RunID()
	if id == "" {
		return fmt.Errorf("record has no run ID")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.records[id]; exists {
		return fmt.Errorf("run %s already recorded", id)
	}
	l.records[id] = record
	l.order = append(l.order, id)
	return nil
}

func (l *RunLedger) GetRun(ctx context.Context, runID core.RunID) (*run.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	record, exists := l.records[runID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, runID)
	}
	return &record, nil
}

// ListRuns returns records newest first
func (l *RunLedger) ListRuns(ctx context.Context, filters ports.RunFilters) ([]run.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	results := []run.Record{}
	skipped := 0
	for i := len(l.order) - 1; i >= 0; i-- {
		record := l.records[l.order[i]]
		if filters.BetaJ != nil && record.Manifest.Parameters.BetaJ != *filters.BetaJ {
			continue
		}
		if skipped < filters.Offset {
			skipped++
			continue
		}
		results = append(results, record)
		if filters.Limit > 0 && len(results) >= filters.Limit {
			break
		}
	}
	return results, nil
}

var _ ports.RunLedger = (*RunLedger)(nil)
