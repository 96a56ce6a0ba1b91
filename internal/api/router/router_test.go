package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/services"
	"github.com/adaudit/adaudit/internal/testutil"
)

func newTestRouter(anomalyRepo *testutil.MockAnomalyRepository, kpiRepo *testutil.MockKPIRepository) http.Handler {
	if anomalyRepo == nil {
		anomalyRepo = &testutil.MockAnomalyRepository{}
	}
	if kpiRepo == nil {
		kpiRepo = &testutil.MockKPIRepository{}
	}
	log := testutil.NewTestLogger()
	return New(Config{
		AnomalyService:  services.NewAnomalyService(anomalyRepo, log),
		KPIService:      services.NewKPIService(kpiRepo, log),
		AnalysisService: services.NewAnalysisService(anomalyRepo, kpiRepo, log),
		Logger:          log,
		Version:         "test",
		AllowedOrigins:  []string{"*"},
	})
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, path string, body []byte, withUser bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if withUser {
		req.Header.Set("X-User-ID", "1")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestRouterHealth(t *testing.T) {
	h := newTestRouter(nil, nil)
	rec, env := doRequest(t, h, http.MethodGet, "/healthz", nil, false)
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("healthz: expected 200 success, got %d %+v", rec.Code, env)
	}
}

func TestRouterRequiresUserIdentity(t *testing.T) {
	h := newTestRouter(nil, nil)
	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/anomalies", nil, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without user header, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED code, got %+v", env.Error)
	}
}

func TestRouterCreateAnomaly(t *testing.T) {
	var stored *anomaly.Anomaly
	repo := &testutil.MockAnomalyRepository{
		CreateFn: func(ctx context.Context, a *anomaly.Anomaly) error {
			stored = a
			return nil
		},
	}
	h := newTestRouter(repo, nil)

	payload := []byte(`{
		"campaign_id": "c1",
		"campaign_name": "Brand",
		"type": "spike",
		"severity": "critical",
		"metric": "spend",
		"current_value": 900,
		"previous_value": 300,
		"change_percent": 200,
		"detected_at": "2025-06-02T10:00:00Z"
	}`)
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/anomalies", payload, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Errorf("expected success envelope, got %+v", env)
	}
	if stored == nil || stored.UserID != 1 || stored.CampaignID != "c1" {
		t.Errorf("anomaly not stored for the acting user: %+v", stored)
	}
	if stored.ID == "" {
		t.Error("expected generated anomaly ID")
	}
}

func TestRouterCreateAnomalyValidation(t *testing.T) {
	h := newTestRouter(nil, nil)

	payload := []byte(`{"campaign_id": "c1", "type": "surge", "severity": "critical", "metric": "spend", "detected_at": "2025-06-02T10:00:00Z"}`)
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/anomalies", payload, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad type, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %+v", env.Error)
	}
}

func TestRouterAnalysisSegments(t *testing.T) {
	detected := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	repo := &testutil.MockAnomalyRepository{
		ListFn: func(ctx context.Context, userID int64, filter anomaly.Filter) ([]*anomaly.Anomaly, error) {
			return []*anomaly.Anomaly{
				testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityCritical, detected),
				testutil.NewAnomaly("a2", "c1", anomaly.MetricCPA, anomaly.TypeSpike, anomaly.SeverityCritical, detected.Add(time.Hour)),
			}, nil
		},
	}
	h := newTestRouter(repo, nil)

	rec, env := doRequest(t, h, http.MethodGet,
		"/api/v1/analysis/segments?from=2025-06-01&to=2025-06-30", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		SegmentType string `json:"segment_type"`
		Segments    []struct {
			CampaignID    string `json:"campaign_id"`
			SeverityScore int    `json:"severity_score"`
		} `json:"segments"`
		Insights []struct {
			ID string `json:"id"`
		} `json:"insights"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if result.SegmentType != "campaign" || len(result.Segments) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Segments[0].SeverityScore != 6 {
		t.Errorf("expected severity score 6, got %d", result.Segments[0].SeverityScore)
	}
	if len(result.Insights) == 0 || result.Insights[0].ID != "insight-high-risk-c1" {
		t.Errorf("expected high-risk insight, got %+v", result.Insights)
	}
}

func TestRouterAnalysisWindowValidation(t *testing.T) {
	h := newTestRouter(nil, nil)
	rec, _ := doRequest(t, h, http.MethodGet,
		"/api/v1/analysis/campaigns?from=2025-06-30&to=2025-06-01", nil, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for inverted window, got %d", rec.Code)
	}
}
