package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements_AreIdempotent(t *testing.T) {
	stmts := NewRunner().Statements()
	require.Len(t, stmts, 1+len(runsIndexes))

	for _, stmt := range stmts {
		assert.Contains(t, stmt, "IF NOT EXISTS", stmt)
	}
}

func TestStatements_TableFirst(t *testing.T) {
	stmts := NewRunner().Statements()
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS ising_runs")
	for _, stmt := range stmts[1:] {
		assert.True(t, strings.HasPrefix(strings.TrimSpace(stmt), "CREATE INDEX"), stmt)
		assert.Contains(t, stmt, "ON ising_runs(")
	}
}

func TestRunsTable_HasLedgerColumns(t *testing.T) {
	columns := []string{
		"run_id", "beta_j", "sweeps", "size", "init_mode", "output_mode",
		"rng_mode", "seed", "code_version", "fingerprint", "steps", "accepted",
		"final_magnetization", "output_path", "created_at", "completed_at",
	}
	for _, col := range columns {
		assert.Contains(t, runsTable, "\t"+col+" ", col)
	}
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "1.0.0", NewRunner().Version())
}
