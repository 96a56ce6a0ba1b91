package services

import (
	"fmt"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
)

// Metric concentration thresholds: a single metric holding at least
// this share of a sufficiently large anomaly batch earns a
// recommendation.
const (
	metricConcentrationShare    = 0.4
	metricConcentrationMinTotal = 3
)

// highRiskCriticalCount is how many critical anomalies a single
// campaign needs before it is flagged as high risk.
const highRiskCriticalCount = 2

// GenerateInsights renders end-user findings from ranked segments and
// the raw anomaly batch. Insight IDs are deterministic so repeated runs
// over the same inputs produce identical output.
func GenerateInsights(segments []analysis.Segment, anomalies []*anomaly.Anomaly) []analysis.Insight {
	insights := make([]analysis.Insight, 0)

	// High-risk campaigns, in segment rank order.
	for _, seg := range segments {
		criticals := 0
		for _, a := range seg.Anomalies {
			if a.Severity == anomaly.SeverityCritical {
				criticals++
			}
		}
		if criticals < highRiskCriticalCount {
			continue
		}
		name := seg.CampaignName
		if name == "" {
			name = seg.CampaignID
		}
		insights = append(insights, analysis.Insight{
			ID:    "insight-high-risk-" + seg.CampaignID,
			Type:  analysis.InsightWarning,
			Title: fmt.Sprintf("Campaign %q needs immediate attention", name),
			Description: fmt.Sprintf("%d critical anomalies were detected in campaign %q within the analysis window.",
				criticals, name),
			ActionItems: []string{
				"Review recent changes to targeting, bids and creatives",
				"Consider pausing the campaign until the anomalies are understood",
				"Check billing and budget caps for unexpected movement",
			},
		})
	}

	// Concentration of anomalies on a single metric.
	if len(anomalies) >= metricConcentrationMinTotal {
		counts := make(map[string]int)
		metricOrder := make([]string, 0)
		for _, a := range anomalies {
			if _, ok := counts[a.Metric]; !ok {
				metricOrder = append(metricOrder, a.Metric)
			}
			counts[a.Metric]++
		}
		for _, metric := range metricOrder {
			share := float64(counts[metric]) / float64(len(anomalies))
			if share < metricConcentrationShare {
				continue
			}
			insights = append(insights, analysis.Insight{
				ID:    "insight-metric-concentration-" + metric,
				Type:  analysis.InsightRecommendation,
				Title: fmt.Sprintf("Anomalies concentrate on %s", metric),
				Description: fmt.Sprintf("%d of %d anomalies affect the %s metric, suggesting a shared cause rather than campaign-specific issues.",
					counts[metric], len(anomalies), metric),
				ActionItems: []string{
					fmt.Sprintf("Audit the account-wide factors that drive %s", metric),
					"Compare against platform-wide benchmarks before changing individual campaigns",
				},
			})
		}
	}

	// All quiet: nothing above informational severity.
	healthy := true
	for _, a := range anomalies {
		if a.Severity != anomaly.SeverityInfo {
			healthy = false
			break
		}
	}
	if healthy {
		insights = append(insights, analysis.Insight{
			ID:          "insight-healthy",
			Type:        analysis.InsightRecommendation,
			Title:       "Campaigns are performing within normal ranges",
			Description: "No anomalies above informational severity were detected in the analysis window.",
			ActionItems: []string{"Keep the current monitoring cadence"},
		})
	}

	return insights
}
