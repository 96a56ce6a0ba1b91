package services

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	apperrors "github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/testutil"
)

var baseTime = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) // a Monday

func TestBuildSegments(t *testing.T) {
	anomalies := []*anomaly.Anomaly{
		testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityInfo, baseTime),
		testutil.NewAnomaly("a2", "c2", anomaly.MetricCPA, anomaly.TypeSpike, anomaly.SeverityCritical, baseTime),
		testutil.NewAnomaly("a3", "c1", anomaly.MetricClicks, anomaly.TypeDrop, anomaly.SeverityWarning, baseTime),
		testutil.NewAnomaly("a4", "c3", anomaly.MetricCTR, anomaly.TypeDrop, anomaly.SeverityCritical, baseTime),
	}

	segments := BuildSegments(anomalies)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	// c1 scores 1+2=3, c2 and c3 score 3 each; ties keep first-seen
	// order so c1 comes before c3 only if scores differ. All three tie
	// at 3, so input order c1, c2, c3 is preserved.
	wantOrder := []string{"c1", "c2", "c3"}
	for i, want := range wantOrder {
		if segments[i].CampaignID != want {
			t.Errorf("segment %d: expected campaign %s, got %s", i, want, segments[i].CampaignID)
		}
		if segments[i].SeverityScore != 3 {
			t.Errorf("segment %d: expected score 3, got %d", i, segments[i].SeverityScore)
		}
	}

	total := 0
	for _, seg := range segments {
		total += len(seg.Anomalies)
	}
	if total != len(anomalies) {
		t.Errorf("expected every anomaly in exactly one segment, got %d of %d", total, len(anomalies))
	}
}

func TestBuildSegmentsRanking(t *testing.T) {
	anomalies := []*anomaly.Anomaly{
		testutil.NewAnomaly("a1", "quiet", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityInfo, baseTime),
		testutil.NewAnomaly("a2", "loud", anomaly.MetricCPA, anomaly.TypeSpike, anomaly.SeverityCritical, baseTime),
		testutil.NewAnomaly("a3", "loud", anomaly.MetricCPC, anomaly.TypeSpike, anomaly.SeverityCritical, baseTime),
	}

	segments := BuildSegments(anomalies)

	if segments[0].CampaignID != "loud" {
		t.Errorf("expected worst campaign first, got %s", segments[0].CampaignID)
	}
	if segments[0].SeverityScore != 6 || segments[1].SeverityScore != 1 {
		t.Errorf("unexpected scores: %d, %d", segments[0].SeverityScore, segments[1].SeverityScore)
	}
}

func TestBuildSegmentsEmpty(t *testing.T) {
	segments := BuildSegments(nil)
	if len(segments) != 0 {
		t.Fatalf("expected no segments, got %d", len(segments))
	}
}

func TestAnalyzeSegmentsValidation(t *testing.T) {
	valid := func() *anomaly.Anomaly {
		return testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityInfo, baseTime)
	}

	tests := []struct {
		name   string
		mutate func(*anomaly.Anomaly)
	}{
		{"missing id", func(a *anomaly.Anomaly) { a.ID = "" }},
		{"missing campaign", func(a *anomaly.Anomaly) { a.CampaignID = "" }},
		{"missing metric", func(a *anomaly.Anomaly) { a.Metric = "" }},
		{"unknown type", func(a *anomaly.Anomaly) { a.Type = "surge" }},
		{"unknown severity", func(a *anomaly.Anomaly) { a.Severity = "catastrophic" }},
		{"zero detected_at", func(a *anomaly.Anomaly) { a.DetectedAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(a)

			_, err := AnalyzeSegments([]*anomaly.Anomaly{a})
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var appErr *apperrors.AppError
			if !stderrors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeValidation {
				t.Errorf("expected validation error code, got %v", err)
			}
		})
	}

	t.Run("nil entry", func(t *testing.T) {
		_, err := AnalyzeSegments([]*anomaly.Anomaly{nil})
		if err == nil {
			t.Fatal("expected validation error for nil anomaly")
		}
	})
}

func TestAnalyzeSegmentsEmpty(t *testing.T) {
	result, err := AnalyzeSegments(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SegmentType != "campaign" {
		t.Errorf("expected segment type campaign, got %s", result.SegmentType)
	}
	if len(result.Segments) != 0 {
		t.Errorf("expected no segments, got %d", len(result.Segments))
	}
	if len(result.Correlations) != 0 {
		t.Errorf("expected no correlations, got %d", len(result.Correlations))
	}
	if result.PropagationPath != nil {
		t.Error("expected no propagation path")
	}
	// An empty window is by definition quiet.
	if len(result.Insights) != 1 || result.Insights[0].ID != "insight-healthy" {
		t.Errorf("expected only the healthy insight, got %+v", result.Insights)
	}
}

func TestAnalyzeSegmentsDeterministic(t *testing.T) {
	anomalies := []*anomaly.Anomaly{
		testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityCritical, baseTime),
		testutil.NewAnomaly("a2", "c1", anomaly.MetricCPA, anomaly.TypeSpike, anomaly.SeverityCritical, baseTime.Add(time.Hour)),
		testutil.NewAnomaly("a3", "c2", anomaly.MetricClicks, anomaly.TypeDrop, anomaly.SeverityWarning, baseTime),
	}

	first, err := AnalyzeSegments(anomalies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := AnalyzeSegments(anomalies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Segments) != len(second.Segments) {
		t.Fatal("segment counts differ between identical runs")
	}
	for i := range first.Segments {
		if first.Segments[i].CampaignID != second.Segments[i].CampaignID {
			t.Errorf("segment order differs at %d: %s vs %s",
				i, first.Segments[i].CampaignID, second.Segments[i].CampaignID)
		}
	}
	for i := range first.Insights {
		if first.Insights[i].ID != second.Insights[i].ID {
			t.Errorf("insight order differs at %d", i)
		}
	}
}
