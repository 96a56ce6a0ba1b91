package analysis

import (
	"context"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/domain/kpi"
)

// Service defines the analysis operations exposed to the API layer.
// The list-based operations are pure with respect to their inputs; the
// window-based variants fetch the inputs from storage first.
type Service interface {
	// AnalyzeSegments groups anomalies into ranked campaign segments
	// and synthesizes insights, correlations and a propagation path
	AnalyzeSegments(ctx context.Context, anomalies []*anomaly.Anomaly) (*SegmentAnalysisResult, error)

	// CompareCampaigns produces per-campaign health comparisons,
	// most problematic first
	CompareCampaigns(ctx context.Context, anomalies []*anomaly.Anomaly) ([]CampaignComparison, error)

	// AnalyzeTimePatterns classifies the weekday/weekend distribution
	// of anomaly detection times
	AnalyzeTimePatterns(ctx context.Context, anomalies []*anomaly.Anomaly) (*TimePatternResult, error)

	// AnalyzeKPITimePatterns computes day-of-week baselines from raw
	// daily aggregates and flags sharply deviating days
	AnalyzeKPITimePatterns(ctx context.Context, aggregates []*kpi.DailyAggregate) (*KPITimePatternResult, error)

	// AnalyzeByMetric buckets anomalies into semantic metric categories
	AnalyzeByMetric(ctx context.Context, anomalies []*anomaly.Anomaly) (map[string]MetricCategoryResult, error)

	// Window variants used by handlers and the scheduler. They load the
	// user's data for the window and run the corresponding operation.
	AnalyzeSegmentsWindow(ctx context.Context, userID int64, w Window) (*SegmentAnalysisResult, error)
	CompareCampaignsWindow(ctx context.Context, userID int64, w Window) ([]CampaignComparison, error)
	AnalyzeTimePatternsWindow(ctx context.Context, userID int64, w Window) (*TimePatternResult, error)
	AnalyzeKPITimePatternsWindow(ctx context.Context, userID int64, w Window) (*KPITimePatternResult, error)
	AnalyzeByMetricWindow(ctx context.Context, userID int64, w Window) (map[string]MetricCategoryResult, error)
}
