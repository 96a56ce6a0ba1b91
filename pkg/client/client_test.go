package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientSendsIdentityAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-ID") != "7" {
			t.Errorf("expected user header, got %q", r.Header.Get("X-User-ID"))
		}
		if r.URL.Path != "/api/v1/analysis/campaigns" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
			t.Error("expected window query parameters")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"campaign_id": "c1", "health_score": 45.0, "anomaly_count": 2},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 7)
	comparisons, err := c.CompareCampaigns(context.Background(),
		time.Now().Add(-24*time.Hour), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comparisons) != 1 || comparisons[0].CampaignID != "c1" {
		t.Errorf("unexpected result: %+v", comparisons)
	}
	if comparisons[0].HealthScore != 45 {
		t.Errorf("expected health 45, got %v", comparisons[0].HealthScore)
	}
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   map[string]string{"code": "NOT_FOUND", "message": "anomaly not found"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 1)
	_, err := c.GetAnomaly(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "NOT_FOUND" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should report true")
	}
}
