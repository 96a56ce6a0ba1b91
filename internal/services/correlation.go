package services

import (
	"sort"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
)

// correlationMinSamples is the minimum number of time-aligned samples
// before a metric pair is reported as correlated.
const correlationMinSamples = 2

// changeDirection is the sign of the anomaly's observed change. A zero
// change falls back to the detector's spike/drop classification.
func changeDirection(a *anomaly.Anomaly) int {
	switch {
	case a.ChangePercent > 0:
		return 1
	case a.ChangePercent < 0:
		return -1
	case a.Type == anomaly.TypeDrop:
		return -1
	default:
		return 1
	}
}

// DetectCorrelations finds metric pairs whose anomalies repeatedly
// co-occur within the same campaign on the same UTC calendar day.
// Direction comes from the sign of each anomaly's change. Pairs whose
// changes move the same way every time are positive, pairs that always
// oppose are negative, and pairs with mixed evidence are not reported.
func DetectCorrelations(anomalies []*anomaly.Anomaly) []analysis.Correlation {
	type bucketKey struct {
		campaignID string
		day        string
	}

	// direction per metric within one bucket: +1 up, -1 down,
	// 0 once the bucket saw both for that metric
	buckets := make(map[bucketKey]map[string]int)
	for _, a := range anomalies {
		key := bucketKey{a.CampaignID, a.DetectedAt.UTC().Format("2006-01-02")}
		dirs, ok := buckets[key]
		if !ok {
			dirs = make(map[string]int)
			buckets[key] = dirs
		}
		dir := changeDirection(a)
		if prev, seen := dirs[a.Metric]; seen && prev != dir {
			dirs[a.Metric] = 0
			continue
		}
		dirs[a.Metric] = dir
	}

	type pairKey struct {
		metric1 string
		metric2 string
	}
	type pairAgg struct {
		positive int
		negative int
	}
	pairs := make(map[pairKey]*pairAgg)

	for _, dirs := range buckets {
		metrics := make([]string, 0, len(dirs))
		for metric, dir := range dirs {
			if dir != 0 {
				metrics = append(metrics, metric)
			}
		}
		sort.Strings(metrics)

		for i := 0; i < len(metrics); i++ {
			for j := i + 1; j < len(metrics); j++ {
				key := pairKey{metrics[i], metrics[j]}
				agg, ok := pairs[key]
				if !ok {
					agg = &pairAgg{}
					pairs[key] = agg
				}
				if dirs[metrics[i]] == dirs[metrics[j]] {
					agg.positive++
				} else {
					agg.negative++
				}
			}
		}
	}

	correlations := make([]analysis.Correlation, 0)
	for key, agg := range pairs {
		total := agg.positive + agg.negative
		if total < correlationMinSamples {
			continue
		}
		// Mixed evidence across buckets is inconclusive.
		var kind string
		switch {
		case agg.negative == 0:
			kind = analysis.CorrelationPositive
		case agg.positive == 0:
			kind = analysis.CorrelationNegative
		default:
			continue
		}
		correlations = append(correlations, analysis.Correlation{
			Metric1:         key.metric1,
			Metric2:         key.metric2,
			CorrelationType: kind,
			SampleCount:     total,
		})
	}

	sort.Slice(correlations, func(i, j int) bool {
		if correlations[i].Metric1 != correlations[j].Metric1 {
			return correlations[i].Metric1 < correlations[j].Metric1
		}
		return correlations[i].Metric2 < correlations[j].Metric2
	})

	return correlations
}
