package services

import (
	"fmt"
	"sort"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/domain/kpi"
	"github.com/adaudit/adaudit/internal/pkg/errors"
)

// dominantShareThreshold is the share of anomalies that must fall on
// weekdays (or the weekend) before the pattern is called a spike.
const dominantShareThreshold = 0.80

// kpiDeviationThreshold flags a day whose metric strays more than this
// fraction from that day-of-week's historical mean.
const kpiDeviationThreshold = 0.5

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
var weekendNames = []string{"Saturday", "Sunday"}

// AnalyzeTimePatterns classifies when anomalies tend to be detected.
// A pattern is a weekday or weekend spike when the respective share of
// detections crosses dominantShareThreshold; otherwise the distribution
// is reported as consistent.
func AnalyzeTimePatterns(anomalies []*anomaly.Anomaly) (*analysis.TimePatternResult, error) {
	if err := validateAnomalies(anomalies); err != nil {
		return nil, err
	}

	if len(anomalies) == 0 {
		return &analysis.TimePatternResult{
			Pattern:               analysis.PatternConsistent,
			Confidence:            0,
			Details:               "no anomalies in window",
			RecommendedMonitoring: []string{"daily"},
		}, nil
	}

	var weekdayCount, weekendCount int
	seenWeekdays := make(map[string]bool)
	for _, a := range anomalies {
		day := a.DetectedAt.UTC().Weekday()
		if day == 0 || day == 6 {
			weekendCount++
		} else {
			weekdayCount++
		}
		seenWeekdays[day.String()] = true
	}

	total := weekdayCount + weekendCount
	weekdayShare := float64(weekdayCount) / float64(total)
	weekendShare := float64(weekendCount) / float64(total)

	switch {
	case weekdayShare >= dominantShareThreshold:
		return &analysis.TimePatternResult{
			Pattern:    analysis.PatternWeekdaySpike,
			Confidence: weekdayShare,
			Details: fmt.Sprintf("%d of %d anomalies were detected on weekdays",
				weekdayCount, total),
			RecommendedMonitoring: append([]string(nil), weekdayNames...),
		}, nil
	case weekendShare >= dominantShareThreshold:
		return &analysis.TimePatternResult{
			Pattern:    analysis.PatternWeekendSpike,
			Confidence: weekendShare,
			Details: fmt.Sprintf("%d of %d anomalies were detected on weekends",
				weekendCount, total),
			RecommendedMonitoring: append([]string(nil), weekendNames...),
		}, nil
	}

	// A consistent spread over more distinct days is stronger evidence
	// than the same verdict from a thin sample.
	confidence := 0.4
	if len(seenWeekdays) >= 5 {
		confidence = 0.6
	}
	return &analysis.TimePatternResult{
		Pattern:    analysis.PatternConsistent,
		Confidence: confidence,
		Details: fmt.Sprintf("anomalies spread across %d distinct days of the week (%d weekday, %d weekend)",
			len(seenWeekdays), weekdayCount, weekendCount),
		RecommendedMonitoring: []string{"daily"},
	}, nil
}

// kpiMetric pairs a metric name with its extractor so the anomaly-day
// scan visits metrics in a fixed order.
type kpiMetric struct {
	name  string
	value func(*kpi.DailyAggregate) float64
}

var kpiMetrics = []kpiMetric{
	{anomaly.MetricImpressions, func(d *kpi.DailyAggregate) float64 { return float64(d.TotalImpressions) }},
	{anomaly.MetricClicks, func(d *kpi.DailyAggregate) float64 { return float64(d.TotalClicks) }},
	{anomaly.MetricConversions, func(d *kpi.DailyAggregate) float64 { return float64(d.TotalConversions) }},
	{anomaly.MetricSpend, func(d *kpi.DailyAggregate) float64 { return d.TotalSpend }},
	{anomaly.MetricRevenue, func(d *kpi.DailyAggregate) float64 { return d.TotalRevenue }},
}

func validateAggregates(aggregates []*kpi.DailyAggregate) error {
	for i, d := range aggregates {
		if d == nil {
			return errors.ValidationError(fmt.Sprintf("aggregate at index %d is nil", i), nil)
		}
		if d.Date.IsZero() {
			return errors.ValidationError(fmt.Sprintf("aggregate at index %d has no date", i), nil)
		}
	}
	return nil
}

// AnalyzeKPITimePatterns computes weekday/weekend and per-day-of-week
// baselines from raw daily aggregates and flags days whose metrics
// deviate sharply from their own day-of-week mean. A day's value
// participates in the mean it is compared against.
func AnalyzeKPITimePatterns(aggregates []*kpi.DailyAggregate) (*analysis.KPITimePatternResult, error) {
	if err := validateAggregates(aggregates); err != nil {
		return nil, err
	}

	result := &analysis.KPITimePatternResult{
		DayOfWeekAvg: make(map[string]analysis.MetricAverages),
		AnomalyDays:  []analysis.KPIAnomalyDay{},
	}
	if len(aggregates) == 0 {
		return result, nil
	}

	var weekdayRows, weekendRows []*kpi.DailyAggregate
	byDay := make(map[string][]*kpi.DailyAggregate)
	for _, d := range aggregates {
		day := d.Date.UTC().Weekday()
		if day == 0 || day == 6 {
			weekendRows = append(weekendRows, d)
		} else {
			weekdayRows = append(weekdayRows, d)
		}
		byDay[day.String()] = append(byDay[day.String()], d)
	}

	if len(weekdayRows) > 0 {
		avg := averageMetrics(weekdayRows)
		result.WeekdayAvg = &avg
	}
	if len(weekendRows) > 0 {
		avg := averageMetrics(weekendRows)
		result.WeekendAvg = &avg
	}
	for name, rows := range byDay {
		result.DayOfWeekAvg[name] = averageMetrics(rows)
	}

	// Scan in date order so flagged days come out chronologically.
	ordered := make([]*kpi.DailyAggregate, len(aggregates))
	copy(ordered, aggregates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	for _, d := range ordered {
		baseline := result.DayOfWeekAvg[d.Date.UTC().Weekday().String()]
		for _, m := range kpiMetrics {
			expected := metricAverage(&baseline, m.name)
			if expected <= 0 {
				continue
			}
			value := m.value(d)
			deviation := (value - expected) / expected
			if deviation > kpiDeviationThreshold || deviation < -kpiDeviationThreshold {
				result.AnomalyDays = append(result.AnomalyDays, analysis.KPIAnomalyDay{
					Date:             d.Date.UTC().Format("2006-01-02"),
					Metric:           m.name,
					Value:            value,
					Expected:         expected,
					DeviationPercent: deviation * 100,
				})
			}
		}
	}

	return result, nil
}

func averageMetrics(rows []*kpi.DailyAggregate) analysis.MetricAverages {
	var avg analysis.MetricAverages
	n := float64(len(rows))
	for _, d := range rows {
		avg.Impressions += float64(d.TotalImpressions)
		avg.Clicks += float64(d.TotalClicks)
		avg.Conversions += float64(d.TotalConversions)
		avg.Spend += d.TotalSpend
		avg.Revenue += d.TotalRevenue
	}
	avg.Impressions /= n
	avg.Clicks /= n
	avg.Conversions /= n
	avg.Spend /= n
	avg.Revenue /= n
	return avg
}

func metricAverage(avg *analysis.MetricAverages, metric string) float64 {
	switch metric {
	case anomaly.MetricImpressions:
		return avg.Impressions
	case anomaly.MetricClicks:
		return avg.Clicks
	case anomaly.MetricConversions:
		return avg.Conversions
	case anomaly.MetricSpend:
		return avg.Spend
	case anomaly.MetricRevenue:
		return avg.Revenue
	default:
		return 0
	}
}
