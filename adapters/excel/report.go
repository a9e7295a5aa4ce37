package excel

import (
	"fmt"
	"strconv"

	"isingmc/domain/run"
	"isingmc/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ReportSheet is the worksheet holding one row per scanned betaJ
const ReportSheet = "Scan"

// ReportHeaders are the column headers of the report sheet, in order
var ReportHeaders = []string{
	"run_id", "beta_j", "size", "sweeps", "steps", "accepted", "acceptance_rate",
	"final_magnetization", "count", "mean", "std_dev", "mean_abs",
	"min", "p25", "median", "p75", "max", "path",
}

func reportValues(r run.ReportRow) []interface{} {
	s := r.Summary
	return []interface{}{
		r.RunID, r.BetaJ, r.Size, r.Sweeps, r.Steps, r.Accepted, r.AcceptanceRate,
		r.FinalMagnetization, s.Count, s.Mean, s.StdDev, s.MeanAbs,
		s.Min, s.P25, s.Median, s.P75, s.Max, r.Path,
	}
}

// WriteScanReport writes rows to a new workbook at path
func WriteScanReport(path string, rows []run.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return errors.Wrap(err, "failed to name report sheet")
	}

	header := make([]interface{}, len(ReportHeaders))
	for i, h := range ReportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write report header")
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}
	lastCol, err := excelize.ColumnNumberToName(len(ReportHeaders))
	if err != nil {
		return errors.Wrap(err, "failed to name last column")
	}
	if err := f.SetCellStyle(ReportSheet, "A1", lastCol+"1", bold); err != nil {
		return errors.Wrap(err, "failed to style report header")
	}
	if err := f.SetPanes(ReportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return errors.Wrap(err, "failed to freeze report header")
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to address report row")
		}
		values := reportValues(r)
		if err := f.SetSheetRow(ReportSheet, cell, &values); err != nil {
			return errors.Wrapf(err, "failed to write report row %d", i+1)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError("cannot write report "+path, err)
	}
	return nil
}

// ReadScanReport reads a workbook written by WriteScanReport. Columns are
// matched by header, so reordered sheets still load.
func ReadScanReport(path string) ([]run.ReportRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IOError("cannot open report "+path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(ReportSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.ParseError("report sheet "+ReportSheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.ParseError("report "+path, fmt.Errorf("missing header row"))
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[h] = i
	}
	for _, h := range ReportHeaders {
		if _, ok := index[h]; !ok {
			return nil, errors.ParseError("report "+path, fmt.Errorf("missing column %q", h))
		}
	}

	out := make([]run.ReportRow, 0, len(rows)-1)
	for n, raw := range rows[1:] {
		p := rowParser{raw: raw, index: index}
		r := run.ReportRow{
			RunID:              p.str("run_id"),
			BetaJ:              p.float("beta_j"),
			Size:               p.int("size"),
			Sweeps:             p.int("sweeps"),
			Steps:              p.int("steps"),
			Accepted:           p.int("accepted"),
			AcceptanceRate:     p.float("acceptance_rate"),
			FinalMagnetization: p.float("final_magnetization"),
			Summary: run.Summary{
				Count:   p.int("count"),
				Mean:    p.float("mean"),
				StdDev:  p.float("std_dev"),
				MeanAbs: p.float("mean_abs"),
				Min:     p.float("min"),
				P25:     p.float("p25"),
				Median:  p.float("median"),
				P75:     p.float("p75"),
				Max:     p.float("max"),
			},
			Path: p.str("path"),
		}
		if p.err != nil {
			return nil, errors.ParseError(fmt.Sprintf("report row %d", n+2), p.err)
		}
		out = append(out, r)
	}
	return out, nil
}

// rowParser extracts typed cells by header name, keeping the first error
type rowParser struct {
	raw   []string
	index map[string]int
	err   error
}

func (p *rowParser) str(col string) string {
	i := p.index[col]
	if i >= len(p.raw) {
		return ""
	}
	return p.raw[i]
}

func (p *rowParser) float(col string) float64 {
	v, err := strconv.ParseFloat(p.str(col), 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}

func (p *rowParser) int(col string) int {
	v, err := strconv.Atoi(p.str(col))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}
