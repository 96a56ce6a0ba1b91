// Package handlers implements the HTTP handlers of the REST API.
package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/adaudit/adaudit/internal/api/middleware"
	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/pkg/utils"
)

// defaultWindowDays is the trailing window analyzed when the caller
// supplies no explicit range.
const defaultWindowDays = 30

// respondError writes an error response, translating AppErrors into
// their status codes and hiding internals behind a generic 500.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.WithError(err).Error("request failed")
		}
		utils.WriteError(w, appErr)
		return
	}
	log.WithError(err).Error("unhandled error")
	utils.WriteErrorMessage(w, http.StatusInternalServerError,
		errors.ErrCodeInternal, "internal server error")
}

// parseWindow reads the from/to query parameters, defaulting to the
// trailing 30 days. Accepts RFC 3339 timestamps or plain dates.
func parseWindow(r *http.Request) (analysis.Window, error) {
	now := time.Now().UTC()
	w := analysis.Window{From: now.AddDate(0, 0, -defaultWindowDays), To: now}

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return analysis.Window{}, errors.BadRequest("invalid from parameter")
		}
		w.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := parseTimeParam(raw)
		if err != nil {
			return analysis.Window{}, errors.BadRequest("invalid to parameter")
		}
		// A plain date means the whole day inclusive.
		if len(raw) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		w.To = t
	}
	if w.To.Before(w.From) {
		return analysis.Window{}, errors.BadRequest("window end precedes its start")
	}
	return w, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func userID(r *http.Request) int64 {
	return middleware.GetUserID(r.Context())
}
