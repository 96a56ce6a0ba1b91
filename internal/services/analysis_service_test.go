package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/domain/kpi"
	apperrors "github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/testutil"
)

func newAnalysisService(anomalyRepo *testutil.MockAnomalyRepository, kpiRepo *testutil.MockKPIRepository) analysis.Service {
	if anomalyRepo == nil {
		anomalyRepo = &testutil.MockAnomalyRepository{}
	}
	if kpiRepo == nil {
		kpiRepo = &testutil.MockKPIRepository{}
	}
	return NewAnalysisService(anomalyRepo, kpiRepo, testutil.NewTestLogger())
}

func TestAnalysisServiceWindowValidation(t *testing.T) {
	svc := newAnalysisService(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		window analysis.Window
	}{
		{"missing from", analysis.Window{To: baseTime}},
		{"missing to", analysis.Window{From: baseTime}},
		{"inverted", analysis.Window{From: baseTime, To: baseTime.Add(-time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeSegmentsWindow(ctx, 1, tt.window)
			if err == nil {
				t.Fatal("expected window validation error")
			}
			var appErr *apperrors.AppError
			if !stderrors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeBadRequest {
				t.Errorf("expected bad request, got %v", err)
			}
		})
	}
}

func TestAnalysisServiceSegmentsWindow(t *testing.T) {
	window := analysis.Window{From: baseTime.Add(-24 * time.Hour), To: baseTime.Add(24 * time.Hour)}
	repo := &testutil.MockAnomalyRepository{
		ListFn: func(ctx context.Context, userID int64, filter anomaly.Filter) ([]*anomaly.Anomaly, error) {
			if userID != 42 {
				t.Errorf("expected user 42, got %d", userID)
			}
			if !filter.From.Equal(window.From) || !filter.To.Equal(window.To) {
				t.Errorf("window not passed through to filter: %+v", filter)
			}
			return []*anomaly.Anomaly{
				testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityCritical, baseTime),
			}, nil
		},
	}
	svc := newAnalysisService(repo, nil)

	result, err := svc.AnalyzeSegmentsWindow(context.Background(), 42, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Segments) != 1 || result.Segments[0].CampaignID != "c1" {
		t.Errorf("unexpected segments: %+v", result.Segments)
	}
}

func TestAnalysisServiceWindowRepoError(t *testing.T) {
	repo := &testutil.MockAnomalyRepository{
		ListFn: func(ctx context.Context, userID int64, filter anomaly.Filter) ([]*anomaly.Anomaly, error) {
			return nil, stderrors.New("connection refused")
		},
	}
	svc := newAnalysisService(repo, nil)

	window := analysis.Window{From: baseTime, To: baseTime.Add(time.Hour)}
	_, err := svc.CompareCampaignsWindow(context.Background(), 1, window)
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr *apperrors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeDatabase {
		t.Errorf("expected database error, got %v", err)
	}
}

func TestAnalysisServiceKPIWindow(t *testing.T) {
	mon := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	kpiRepo := &testutil.MockKPIRepository{
		ListRangeFn: func(ctx context.Context, userID int64, from, to time.Time) ([]*kpi.DailyAggregate, error) {
			return []*kpi.DailyAggregate{
				{UserID: userID, Date: mon, TotalImpressions: 1000},
			}, nil
		},
	}
	svc := newAnalysisService(nil, kpiRepo)

	window := analysis.Window{From: mon.AddDate(0, 0, -7), To: mon}
	result, err := svc.AnalyzeKPITimePatternsWindow(context.Background(), 1, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WeekdayAvg == nil || result.WeekdayAvg.Impressions != 1000 {
		t.Errorf("unexpected weekday average: %+v", result.WeekdayAvg)
	}
}

func TestAnalysisServicePureOpsDelegation(t *testing.T) {
	svc := newAnalysisService(nil, nil)
	ctx := context.Background()
	anomalies := []*anomaly.Anomaly{
		testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityWarning, baseTime),
	}

	if _, err := svc.AnalyzeSegments(ctx, anomalies); err != nil {
		t.Errorf("AnalyzeSegments: %v", err)
	}
	if _, err := svc.CompareCampaigns(ctx, anomalies); err != nil {
		t.Errorf("CompareCampaigns: %v", err)
	}
	if _, err := svc.AnalyzeTimePatterns(ctx, anomalies); err != nil {
		t.Errorf("AnalyzeTimePatterns: %v", err)
	}
	if _, err := svc.AnalyzeByMetric(ctx, anomalies); err != nil {
		t.Errorf("AnalyzeByMetric: %v", err)
	}
	if _, err := svc.AnalyzeKPITimePatterns(ctx, nil); err != nil {
		t.Errorf("AnalyzeKPITimePatterns: %v", err)
	}
}
