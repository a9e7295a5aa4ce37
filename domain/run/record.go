package run

import (
	"isingmc/domain/core"
)

// Record is a finished run as kept in the run ledger: the result plus
// where its samples went.
type Record struct {
	Result
	OutputPath  string         `json:"output_path"`
	CompletedAt core.Timestamp `json:"completed_at"`
}

// NewRecord stamps a result with its output location and completion time
func NewRecord(result *Result, outputPath string) Record {
	return Record{
		Result:      *result,
		OutputPath:  outputPath,
		CompletedAt: core.Now(),
	}
}

// RunID returns the ID of the recorded run, or "" for an empty record
func (r Record) RunID() core.RunID {
	if r.Manifest == nil {
		return ""
	}
	return r.Manifest.RunID
}
