package client

import (
	"context"
	"net/http"
	"time"
)

// AnalyzeSegments returns ranked campaign segments with insights,
// correlations and a propagation path for the window
func (c *Client) AnalyzeSegments(ctx context.Context, from, to time.Time) (*SegmentAnalysis, error) {
	var result SegmentAnalysis
	if err := c.do(ctx, http.MethodGet, "/api/v1/analysis/segments", windowQuery(from, to), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CompareCampaigns returns per-campaign health comparisons for the
// window, most problematic first
func (c *Client) CompareCampaigns(ctx context.Context, from, to time.Time) ([]CampaignComparison, error) {
	var comparisons []CampaignComparison
	if err := c.do(ctx, http.MethodGet, "/api/v1/analysis/campaigns", windowQuery(from, to), nil, &comparisons); err != nil {
		return nil, err
	}
	return comparisons, nil
}

// AnalyzeTimePatterns classifies when anomalies tend to occur
func (c *Client) AnalyzeTimePatterns(ctx context.Context, from, to time.Time) (*TimePattern, error) {
	var result TimePattern
	if err := c.do(ctx, http.MethodGet, "/api/v1/analysis/time-patterns", windowQuery(from, to), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeKPIPatterns computes day-of-week baselines from the user's
// daily aggregates
func (c *Client) AnalyzeKPIPatterns(ctx context.Context, from, to time.Time) (*KPITimePattern, error) {
	var result KPITimePattern
	if err := c.do(ctx, http.MethodGet, "/api/v1/analysis/kpi-patterns", windowQuery(from, to), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeByMetric buckets anomalies into semantic metric categories
func (c *Client) AnalyzeByMetric(ctx context.Context, from, to time.Time) (map[string]MetricCategory, error) {
	var results map[string]MetricCategory
	if err := c.do(ctx, http.MethodGet, "/api/v1/analysis/metrics", windowQuery(from, to), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
