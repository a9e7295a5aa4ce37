package app

import (
	"fmt"
	"math"

	"isingmc/domain/run"
	"isingmc/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// SeriesReader loads a magnetization series from a sample file
type SeriesReader func(path string, mode run.OutputMode) ([]float64, error)

// SummaryService computes descriptive statistics of written sample files
type SummaryService struct {
	read SeriesReader
}

// NewSummaryService creates a summary service
func NewSummaryService(read SeriesReader) *SummaryService {
	return &SummaryService{read: read}
}

// SummarizeFile reads path and summarizes its magnetization series
func (s *SummaryService) SummarizeFile(path string, mode run.OutputMode) (*run.Summary, error) {
	series, err := s.read(path, mode)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(series)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot summarize %s", path)
	}
	return summary, nil
}

// Summarize computes count, moments, extremes and quartiles of a series.
// Quartiles use the nearest-rank definition so short series work too.
func Summarize(series []float64) (*run.Summary, error) {
	if len(series) == 0 {
		return nil, errors.InvalidInput("empty magnetization series")
	}

	mean, std := stat.MeanStdDev(series, nil)
	if len(series) == 1 {
		std = 0
	}

	abs := make([]float64, len(series))
	for i, m := range series {
		abs[i] = math.Abs(m)
	}

	lo, err := stats.Min(series)
	if err != nil {
		return nil, errors.Wrap(err, "min")
	}
	hi, err := stats.Max(series)
	if err != nil {
		return nil, errors.Wrap(err, "max")
	}
	median, err := stats.Median(series)
	if err != nil {
		return nil, errors.Wrap(err, "median")
	}
	p25, err := stats.PercentileNearestRank(series, 25)
	if err != nil {
		return nil, errors.Wrap(err, "25th percentile")
	}
	p75, err := stats.PercentileNearestRank(series, 75)
	if err != nil {
		return nil, errors.Wrap(err, "75th percentile")
	}

	return &run.Summary{
		Count:   len(series),
		Mean:    mean,
		StdDev:  std,
		MeanAbs: stat.Mean(abs, nil),
		Min:     lo,
		Max:     hi,
		Median:  median,
		P25:     p25,
		P75:     p75,
	}, nil
}

// ScanReport summarizes the sample file of every scan entry, in scan order
func (s *SummaryService) ScanReport(entries []ScanEntry) ([]run.ReportRow, error) {
	rows := make([]run.ReportRow, 0, len(entries))
	for _, e := range entries {
		if e.Result == nil || e.Result.Manifest == nil {
			return nil, errors.InvalidInput(fmt.Sprintf("scan entry for betaJ %v has no result", e.BetaJ))
		}
		summary, err := s.SummarizeFile(e.Path, e.Result.Manifest.Parameters.Output)
		if err != nil {
			return nil, err
		}
		rows = append(rows, run.NewReportRow(e.Result, summary, e.Path))
	}
	return rows, nil
}
