package excel

import (
	"path/filepath"
	"testing"

	"isingmc/domain/run"
	"isingmc/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []run.ReportRow {
	return []run.ReportRow{
		{
			RunID: "a", BetaJ: 0.1, Size: 50, Sweeps: 10, Steps: 500, Accepted: 400,
			AcceptanceRate: 0.8, FinalMagnetization: -0.04,
			Summary: run.Summary{Count: 500, Mean: 0.01, StdDev: 0.2, MeanAbs: 0.15, Min: -0.6, P25: -0.1, Median: 0, P75: 0.12, Max: 1},
			Path:    "scan/m_betaJ=0.1.dat",
		},
		{
			RunID: "b", BetaJ: 10, Size: 50, Sweeps: 10, Steps: 500,
			Summary: run.Summary{Count: 500, Mean: 1, MeanAbs: 1, Min: 1, P25: 1, Median: 1, P75: 1, Max: 1},
			Path:    "scan/m_betaJ=10.dat",
		},
	}
}

func TestScanReport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	rows := sampleRows()

	require.NoError(t, WriteScanReport(path, rows))

	got, err := ReadScanReport(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestScanReport_HeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteScanReport(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ReportHeaders, rows[0])
}

func TestReadScanReport_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", ReportSheet))
	require.NoError(t, f.SetSheetRow(ReportSheet, "A1", &[]interface{}{"run_id", "beta_j"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ReadScanReport(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParse, errors.GetCode(err))
	assert.Contains(t, err.Error(), "size")
}

func TestReadScanReport_MissingFile(t *testing.T) {
	_, err := ReadScanReport(filepath.Join(t.TempDir(), "none.xlsx"))
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))
}

func TestWriteScanReport_UnwritablePath(t *testing.T) {
	err := WriteScanReport(filepath.Join(t.TempDir(), "missing", "r.xlsx"), sampleRows())
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))
}
