package memory

import (
	"context"
	"testing"

	"isingmc/domain/core"
	"isingmc/domain/run"
	"isingmc/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(betaJ float64) run.Record {
	params := run.DefaultParameters(betaJ, 1)
	return run.NewRecord(&run.Result{
		Manifest: run.NewManifest(params, "lifetime", 0, "test"),
		Steps:    params.TotalSteps(),
	}, "m.dat")
}

func TestRunLedger_RecordAndGet(t *testing.T) {
	ledger := NewRunLedger()
	ctx := context.Background()
	rec := record(0.5)

	require.NoError(t, ledger.RecordRun(ctx, rec))

	got, err := ledger.GetRun(ctx, rec.RunID())
	require.NoError(t, err)
	assert.Equal(t, rec.RunID(), got.RunID())
	assert.Equal(t, "m.dat", got.OutputPath)
}

func TestRunLedger_DuplicateRejected(t *testing.T) {
	ledger := NewRunLedger()
	rec := record(0.5)

	require.NoError(t, ledger.RecordRun(context.Background(), rec))
	assert.Error(t, ledger.RecordRun(context.Background(), rec))
}

func TestRunLedger_MissingRun(t *testing.T) {
	_, err := NewRunLedger().GetRun(context.Background(), core.RunID("nope"))
	assert.ErrorIs(t, err, core.ErrRunNotFound)
}

func TestRunLedger_RecordWithoutManifest(t *testing.T) {
	assert.Error(t, NewRunLedger().RecordRun(context.Background(), run.Record{}))
}

func TestRunLedger_ListNewestFirstWithFilters(t *testing.T) {
	ledger := NewRunLedger()
	ctx := context.Background()
	recs := []run.Record{record(0.1), record(0.5), record(0.1), record(1)}
	for _, r := range recs {
		require.NoError(t, ledger.RecordRun(ctx, r))
	}

	all, err := ledger.ListRuns(ctx, ports.RunFilters{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, recs[3].RunID(), all[0].RunID())
	assert.Equal(t, recs[0].RunID(), all[3].RunID())

	b := 0.1
	cold, err := ledger.ListRuns(ctx, ports.RunFilters{BetaJ: &b})
	require.NoError(t, err)
	require.Len(t, cold, 2)
	assert.Equal(t, recs[2].RunID(), cold[0].RunID())

	page, err := ledger.ListRuns(ctx, ports.RunFilters{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, recs[2].RunID(), page[0].RunID())
	assert.Equal(t, recs[1].RunID(), page[1].RunID())
}

func TestRunLedger_EmptyListIsNotNil(t *testing.T) {
	runs, err := NewRunLedger().ListRuns(context.Background(), ports.RunFilters{})
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}
