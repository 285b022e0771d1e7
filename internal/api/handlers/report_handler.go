package handlers

import (
	"net/http"
	"os"
	"strconv"

	api "tempwatch-v0/internal/api/application"
)

// ReportHandler serves run records and the rendered chart
type ReportHandler struct {
	service  *api.ReportService
	plotPath string
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *api.ReportService, plotPath string) *ReportHandler {
	return &ReportHandler{
		service:  service,
		plotPath: plotPath,
	}
}

// ListRuns handles GET /api/v1/runs
func (h *ReportHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		logger.Error("Failed to list runs", "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to list runs: "+err.Error())
		return
	}

	logger.Debug("Listed runs", "count", len(runs))
	respondJSON(w, http.StatusOK, runs)
}

// LatestRun handles GET /api/v1/runs/latest
func (h *ReportHandler) LatestRun(w http.ResponseWriter, r *http.Request) {
	logger := getLogger(r)

	run, err := h.service.LatestRun(r.Context())
	if err != nil {
		logger.Error("Failed to load latest run", "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to load latest run: "+err.Error())
		return
	}
	if run == nil {
		respondJSONError(w, http.StatusNotFound, "No runs recorded yet")
		return
	}

	respondJSON(w, http.StatusOK, run)
}

// Chart handles GET /chart.png
func (h *ReportHandler) Chart(w http.ResponseWriter, r *http.Request) {
	if h.plotPath == "" {
		respondJSONError(w, http.StatusNotFound, "Chart output is not configured")
		return
	}
	if _, err := os.Stat(h.plotPath); err != nil {
		respondJSONError(w, http.StatusNotFound, "No chart has been written")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, h.plotPath)
}
