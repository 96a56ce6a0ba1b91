package services

import (
	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
)

// CategoryOther collects anomalies whose metric is not in the
// category table. They still count; they just have no semantic bucket.
const CategoryOther = "other"

// MetricCategories maps each semantic category to the metrics it
// covers. A metric belongs to exactly one category.
var MetricCategories = map[string][]string{
	analysis.CategorySpendRelated: {
		anomaly.MetricSpend,
		anomaly.MetricCPA,
		anomaly.MetricCPC,
		anomaly.MetricBudget,
	},
	analysis.CategoryEngagement: {
		anomaly.MetricCTR,
		anomaly.MetricClicks,
		anomaly.MetricImpressions,
	},
	analysis.CategoryConversion: {
		anomaly.MetricConversions,
		anomaly.MetricCVR,
		anomaly.MetricROAS,
		anomaly.MetricRevenue,
	},
}

var categoryByMetric = func() map[string]string {
	m := make(map[string]string)
	for category, metrics := range MetricCategories {
		for _, metric := range metrics {
			m[metric] = category
		}
	}
	return m
}()

// CategoryForMetric returns the semantic category a metric belongs to,
// or CategoryOther if it is not in the table.
func CategoryForMetric(metric string) string {
	if c, ok := categoryByMetric[metric]; ok {
		return c
	}
	return CategoryOther
}

// AnalyzeByMetric buckets anomalies into semantic metric categories
// and summarizes each bucket. Categories with no anomalies are absent
// from the result.
func AnalyzeByMetric(anomalies []*anomaly.Anomaly) (map[string]analysis.MetricCategoryResult, error) {
	if err := validateAnomalies(anomalies); err != nil {
		return nil, err
	}

	type agg struct {
		count       int
		severitySum int
		spikes      int
		drops       int
	}
	aggs := make(map[string]*agg)

	for _, a := range anomalies {
		category := CategoryForMetric(a.Metric)
		ag, ok := aggs[category]
		if !ok {
			ag = &agg{}
			aggs[category] = ag
		}
		ag.count++
		ag.severitySum += severityWeight(a.Severity)
		if a.Type == anomaly.TypeSpike {
			ag.spikes++
		} else {
			ag.drops++
		}
	}

	results := make(map[string]analysis.MetricCategoryResult, len(aggs))
	for category, ag := range aggs {
		dominant := anomaly.TypeSpike
		if ag.drops > ag.spikes {
			dominant = anomaly.TypeDrop
		}
		results[category] = analysis.MetricCategoryResult{
			AnomalyCount:     ag.count,
			AvgSeverityScore: float64(ag.severitySum) / float64(ag.count),
			DominantType:     dominant,
		}
	}

	return results, nil
}
