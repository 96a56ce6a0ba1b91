package services

import (
	"sort"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
)

// Health score penalties. Each anomaly costs a flat amount and the
// average severity weight scales an additional deduction.
const (
	healthPenaltyPerAnomaly = 10.0
	healthPenaltyPerAvgSev  = 15.0
)

// CompareCampaigns summarizes each campaign's anomaly load into a
// health score and per-metric stats, ordered most problematic first.
// Equal scores are ordered by campaign name.
func CompareCampaigns(anomalies []*anomaly.Anomaly) ([]analysis.CampaignComparison, error) {
	if err := validateAnomalies(anomalies); err != nil {
		return nil, err
	}
	return buildComparisons(anomalies), nil
}

func buildComparisons(anomalies []*anomaly.Anomaly) []analysis.CampaignComparison {
	type agg struct {
		comparison  analysis.CampaignComparison
		severitySum int
		changeSums  map[string]float64
	}

	byCampaign := make(map[string]int)
	aggs := make([]*agg, 0)

	for _, a := range anomalies {
		idx, ok := byCampaign[a.CampaignID]
		if !ok {
			idx = len(aggs)
			byCampaign[a.CampaignID] = idx
			aggs = append(aggs, &agg{
				comparison: analysis.CampaignComparison{
					CampaignID:   a.CampaignID,
					CampaignName: a.CampaignName,
					Metrics:      make(map[string]analysis.MetricStats),
				},
				changeSums: make(map[string]float64),
			})
		}
		ag := aggs[idx]
		ag.comparison.AnomalyCount++
		ag.severitySum += severityWeight(a.Severity)

		stats := ag.comparison.Metrics[a.Metric]
		stats.AnomalyCount++
		ag.comparison.Metrics[a.Metric] = stats
		ag.changeSums[a.Metric] += a.ChangePercent
	}

	comparisons := make([]analysis.CampaignComparison, 0, len(aggs))
	for _, ag := range aggs {
		c := ag.comparison
		c.AvgSeverity = float64(ag.severitySum) / float64(c.AnomalyCount)
		c.HealthScore = healthScore(c.AnomalyCount, c.AvgSeverity)
		for metric, stats := range c.Metrics {
			stats.AvgChange = ag.changeSums[metric] / float64(stats.AnomalyCount)
			c.Metrics[metric] = stats
		}
		comparisons = append(comparisons, c)
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		if comparisons[i].HealthScore != comparisons[j].HealthScore {
			return comparisons[i].HealthScore < comparisons[j].HealthScore
		}
		return comparisons[i].CampaignName < comparisons[j].CampaignName
	})

	return comparisons
}

// healthScore maps an anomaly count and average severity weight to a
// [0, 100] score where 100 is a clean campaign.
func healthScore(count int, avgSeverity float64) float64 {
	score := 100 - float64(count)*healthPenaltyPerAnomaly - avgSeverity*healthPenaltyPerAvgSev
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
