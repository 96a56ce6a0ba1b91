package handlers

import (
	"net/http"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/pkg/utils"
)

// AnalysisHandler serves the analysis endpoints. Every endpoint runs
// over the anomalies or aggregates in the requested window.
type AnalysisHandler struct {
	service analysis.Service
	log     *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service analysis.Service, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{service: service, log: log}
}

// Segments returns ranked campaign segments with insights,
// correlations and a propagation path
// GET /api/v1/analysis/segments
func (h *AnalysisHandler) Segments(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	result, err := h.service.AnalyzeSegmentsWindow(r.Context(), userID(r), window)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// Campaigns returns per-campaign health comparisons
// GET /api/v1/analysis/campaigns
func (h *AnalysisHandler) Campaigns(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	comparisons, err := h.service.CompareCampaignsWindow(r.Context(), userID(r), window)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, comparisons)
}

// TimePatterns classifies when anomalies tend to occur
// GET /api/v1/analysis/time-patterns
func (h *AnalysisHandler) TimePatterns(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	result, err := h.service.AnalyzeTimePatternsWindow(r.Context(), userID(r), window)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// KPIPatterns computes day-of-week baselines from daily aggregates
// GET /api/v1/analysis/kpi-patterns
func (h *AnalysisHandler) KPIPatterns(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	result, err := h.service.AnalyzeKPITimePatternsWindow(r.Context(), userID(r), window)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, result)
}

// Metrics buckets anomalies into semantic metric categories
// GET /api/v1/analysis/metrics
func (h *AnalysisHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	results, err := h.service.AnalyzeByMetricWindow(r.Context(), userID(r), window)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, results)
}
