package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adaudit/adaudit/internal/api/dto"
	"github.com/adaudit/adaudit/internal/domain/kpi"
	"github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/pkg/utils"
	"github.com/adaudit/adaudit/internal/pkg/validator"
)

// KPIHandler serves the daily KPI ingest and query endpoints
type KPIHandler struct {
	service   kpi.Service
	validator *validator.Validator
	log       *logger.Logger
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(service kpi.Service, v *validator.Validator, log *logger.Logger) *KPIHandler {
	return &KPIHandler{service: service, validator: v, log: log}
}

// Record upserts one day of account-level totals
// POST /api/v1/kpis
func (h *KPIHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordKPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, errors.BadRequest("invalid JSON payload"))
		return
	}
	if verrs := h.validator.Validate(&req); len(verrs) > 0 {
		respondError(w, h.log, errors.ValidationError("invalid KPI payload", verrs))
		return
	}

	agg := req.ToModel(userID(r))
	if err := h.service.Record(r.Context(), agg); err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, agg)
}

// List returns the user's daily aggregates in a date range
// GET /api/v1/kpis
func (h *KPIHandler) List(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	aggregates, err := h.service.ListRange(r.Context(), userID(r), window.From, window.To)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, aggregates)
}
