package run

// Summary holds descriptive statistics of a magnetization series
type Summary struct {
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	MeanAbs float64 `json:"mean_abs"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Median  float64 `json:"median"`
	P25     float64 `json:"p25"`
	P75     float64 `json:"p75"`
}

// ReportRow describes one finished run together with the statistics of
// its magnetization series
type ReportRow struct {
	RunID              string  `json:"run_id"`
	BetaJ              float64 `json:"beta_j"`
	Size               int     `json:"size"`
	Sweeps             int     `json:"sweeps"`
	Steps              int     `json:"steps"`
	Accepted           int     `json:"accepted"`
	AcceptanceRate     float64 `json:"acceptance_rate"`
	FinalMagnetization float64 `json:"final_magnetization"`
	Summary            Summary `json:"summary"`
	Path               string  `json:"path"`
}

// NewReportRow combines a run result with the summary of its series
func NewReportRow(result *Result, summary *Summary, path string) ReportRow {
	row := ReportRow{
		Steps:              result.Steps,
		Accepted:           result.Accepted,
		AcceptanceRate:     result.AcceptanceRate(),
		FinalMagnetization: result.FinalMagnetization,
		Path:               path,
	}
	if m := result.Manifest; m != nil {
		row.RunID = m.RunID.String()
		row.BetaJ = m.Parameters.BetaJ
		row.Size = m.Parameters.Size
		row.Sweeps = m.Parameters.Sweeps
	}
	if summary != nil {
		row.Summary = *summary
	}
	return row
}
