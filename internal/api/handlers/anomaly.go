package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/adaudit/adaudit/internal/api/dto"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/pkg/utils"
	"github.com/adaudit/adaudit/internal/pkg/validator"
)

// AnomalyHandler serves the anomaly ingest and query endpoints
type AnomalyHandler struct {
	service   anomaly.Service
	validator *validator.Validator
	log       *logger.Logger
}

// NewAnomalyHandler creates a new anomaly handler
func NewAnomalyHandler(service anomaly.Service, v *validator.Validator, log *logger.Logger) *AnomalyHandler {
	return &AnomalyHandler{service: service, validator: v, log: log}
}

// Create ingests a detector-produced anomaly
// POST /api/v1/anomalies
func (h *AnomalyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAnomalyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, errors.BadRequest("invalid JSON payload"))
		return
	}
	if verrs := h.validator.Validate(&req); len(verrs) > 0 {
		respondError(w, h.log, errors.ValidationError("invalid anomaly payload", verrs))
		return
	}

	a := req.ToModel(userID(r))
	if err := h.service.Ingest(r.Context(), a); err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, a)
}

// List returns the user's anomalies with optional filters
// GET /api/v1/anomalies
func (h *AnomalyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAnomalyFilter(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	page := utils.ParsePaginationParams(r)

	anomalies, total, err := h.service.List(r.Context(), userID(r), filter, page.PageSize, page.Offset)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(anomalies, page.Page, page.PageSize, total))
}

// GetByID returns a single anomaly
// GET /api/v1/anomalies/{id}
func (h *AnomalyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.service.GetByID(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, a)
}

// Summary returns anomaly counts by severity
// GET /api/v1/anomalies/summary
func (h *AnomalyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.GetSummary(r.Context(), userID(r))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	utils.WriteSuccess(w, http.StatusOK, dto.AnomalySummaryResponse{
		Total:  total,
		Counts: counts,
	})
}

func parseAnomalyFilter(r *http.Request) (anomaly.Filter, error) {
	q := r.URL.Query()
	filter := anomaly.Filter{
		CampaignID: q.Get("campaign_id"),
		Metric:     q.Get("metric"),
		Type:       q.Get("type"),
		Severity:   q.Get("severity"),
	}
	if raw := q.Get("from"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return anomaly.Filter{}, errors.BadRequest("invalid from parameter")
		}
		filter.From = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return anomaly.Filter{}, errors.BadRequest("invalid to parameter")
		}
		if len(raw) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		filter.To = t
	}
	return filter, nil
}
