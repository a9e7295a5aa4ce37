package api

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"isingmc/app"
	"isingmc/domain/core"
	"isingmc/domain/run"
	"isingmc/internal/errors"
	"isingmc/ports"

	"github.com/gin-gonic/gin"
)

// SourceFactory creates the random source of a run started over HTTP
type SourceFactory func(seed uint64) (ports.RandomSource, error)

// RunHandler serves the run ledger and starts new runs
type RunHandler struct {
	simulation *app.SimulationService
	summary    *app.SummaryService
	ledger     ports.RunLedgerReader
	newSink    app.SinkFactory
	newSource  SourceFactory
	rngMode    string
	defaults   run.Parameters
	dataDir    string
	logger     *slog.Logger
}

// StartRunRequest is the body of POST /api/runs. Omitted fields take the
// server's defaults.
type StartRunRequest struct {
	BetaJ      *float64 `json:"beta_j" binding:"required"`
	Sweeps     int      `json:"sweeps" binding:"min=0"`
	Size       int      `json:"size" binding:"omitempty,min=1"`
	Init       string   `json:"init"`
	OutputMode string   `json:"output_mode"`
	Seed       uint64   `json:"seed"`
}

// parameters merges the request over defaults and validates the result
func (r StartRunRequest) parameters(defaults run.Parameters) (run.Parameters, error) {
	p := defaults
	p.BetaJ = *r.BetaJ
	p.Sweeps = r.Sweeps
	if r.Size != 0 {
		p.Size = r.Size
	}
	if r.Init != "" {
		mode, err := run.ParseInitMode(r.Init)
		if err != nil {
			return p, err
		}
		p.Init = mode
	}
	if r.OutputMode != "" {
		mode, err := run.ParseOutputMode(r.OutputMode)
		if err != nil {
			return p, err
		}
		p.Output = mode
	}
	return p, p.Validate()
}

// ListRuns returns recorded runs, newest first
func (h *RunHandler) ListRuns(c *gin.Context) {
	filters := ports.RunFilters{Limit: 100}

	if v := c.Query("beta_j"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "beta_j must be a number"})
			return
		}
		filters.BetaJ = &b
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		filters.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		filters.Offset = n
	}

	runs, err := h.ledger.ListRuns(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// GetRun returns one recorded run
func (h *RunHandler) GetRun(c *gin.Context) {
	rec, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetRunSummary returns the statistics of a run's magnetization series
func (h *RunHandler) GetRunSummary(c *gin.Context) {
	rec, ok := h.lookup(c)
	if !ok {
		return
	}
	summary, err := h.summary.SummarizeFile(rec.OutputPath, rec.Manifest.Parameters.Output)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRunReport renders a run and its summary as an HTML page
func (h *RunHandler) GetRunReport(c *gin.Context) {
	rec, ok := h.lookup(c)
	if !ok {
		return
	}
	summary, err := h.summary.SummarizeFile(rec.OutputPath, rec.Manifest.Parameters.Output)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderRunReport(rec, summary))
}

// StartRun executes a simulation synchronously and returns its record
func (h *RunHandler) StartRun(c *gin.Context) {
	var req StartRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := req.parameters(h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src, err := h.newSource(req.Seed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := os.MkdirAll(h.dataDir, 0o755); err != nil {
		h.fail(c, errors.IOError("cannot create data directory "+h.dataDir, err))
		return
	}
	path := filepath.Join(h.dataDir, core.NewID().String()+".dat")
	out, err := h.newSink(path, params.Output)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, runErr := h.simulation.Run(c.Request.Context(), app.SimulationRequest{
		Parameters: params,
		RNG:        src,
		RNGMode:    h.rngMode,
		Seed:       req.Seed,
		OutputPath: path,
	}, out)
	closeErr := out.Close()
	if runErr != nil {
		h.discard(path)
		h.fail(c, runErr)
		return
	}
	if closeErr != nil {
		h.fail(c, closeErr)
		return
	}

	rec, err := h.ledger.GetRun(c.Request.Context(), result.Manifest.RunID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// discard removes the sample file of a run that never reached the ledger
func (h *RunHandler) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("failed to remove partial sample file", "path", path, "error", err)
	}
}

func (h *RunHandler) lookup(c *gin.Context) (*run.Record, bool) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	rec, err := h.ledger.GetRun(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return rec, true
}

func (h *RunHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

func statusFor(err error) int {
	if stderrors.Is(err, core.ErrRunNotFound) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeValidationError, errors.CodeInvalidInput, errors.CodeParse:
		return http.StatusBadRequest
	}
	if core.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
