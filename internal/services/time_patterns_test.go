package services

import (
	"testing"
	"time"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/domain/kpi"
	"github.com/adaudit/adaudit/internal/testutil"
)

func anomalyAt(id string, ts time.Time) *anomaly.Anomaly {
	return testutil.NewAnomaly(id, "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityWarning, ts)
}

func TestAnalyzeTimePatternsWeekdaySpike(t *testing.T) {
	// Mon Jun 2 through Fri Jun 6, 2025
	var anomalies []*anomaly.Anomaly
	for i := 0; i < 5; i++ {
		anomalies = append(anomalies, anomalyAt(string(rune('a'+i)), baseTime.AddDate(0, 0, i)))
	}

	result, err := AnalyzeTimePatterns(anomalies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pattern != analysis.PatternWeekdaySpike {
		t.Fatalf("expected weekday spike, got %s", result.Pattern)
	}
	if !almostEqual(result.Confidence, 1.0) {
		t.Errorf("expected confidence 1.0, got %v", result.Confidence)
	}
	if len(result.RecommendedMonitoring) != 5 {
		t.Errorf("expected 5 monitored days, got %v", result.RecommendedMonitoring)
	}
}

func TestAnalyzeTimePatternsWeekendSpike(t *testing.T) {
	sat := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	anomalies := []*anomaly.Anomaly{
		anomalyAt("a1", sat),
		anomalyAt("a2", sat.Add(time.Hour)),
		anomalyAt("a3", sun),
		anomalyAt("a4", sun.Add(time.Hour)),
		anomalyAt("a5", baseTime), // lone weekday detection
	}

	result, err := AnalyzeTimePatterns(anomalies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pattern != analysis.PatternWeekendSpike {
		t.Fatalf("expected weekend spike, got %s", result.Pattern)
	}
	if !almostEqual(result.Confidence, 0.8) {
		t.Errorf("expected confidence 0.8, got %v", result.Confidence)
	}
}

func TestAnalyzeTimePatternsConsistent(t *testing.T) {
	t.Run("thin sample", func(t *testing.T) {
		anomalies := []*anomaly.Anomaly{
			anomalyAt("a1", baseTime),                                          // Monday
			anomalyAt("a2", time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)),      // Saturday
			anomalyAt("a3", time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)),      // Sunday
			anomalyAt("a4", time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)),      // Tuesday
			anomalyAt("a5", time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)),     // Saturday
		}

		result, err := AnalyzeTimePatterns(anomalies)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Pattern != analysis.PatternConsistent {
			t.Fatalf("expected consistent, got %s", result.Pattern)
		}
		if !almostEqual(result.Confidence, 0.4) {
			t.Errorf("expected confidence 0.4 for 4 distinct days, got %v", result.Confidence)
		}
	})

	t.Run("broad sample", func(t *testing.T) {
		var anomalies []*anomaly.Anomaly
		// Mon through Fri plus both weekend days
		for i := 0; i < 7; i++ {
			anomalies = append(anomalies, anomalyAt(string(rune('a'+i)), baseTime.AddDate(0, 0, i)))
		}

		result, err := AnalyzeTimePatterns(anomalies)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Pattern != analysis.PatternConsistent {
			t.Fatalf("expected consistent, got %s", result.Pattern)
		}
		if !almostEqual(result.Confidence, 0.6) {
			t.Errorf("expected confidence 0.6 for broad sample, got %v", result.Confidence)
		}
	})
}

func TestAnalyzeTimePatternsEmpty(t *testing.T) {
	result, err := AnalyzeTimePatterns(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pattern != analysis.PatternConsistent || result.Confidence != 0 {
		t.Errorf("expected consistent with zero confidence, got %+v", result)
	}
	if len(result.RecommendedMonitoring) == 0 {
		t.Error("expected a monitoring suggestion even without anomalies")
	}
}

func dayRow(date time.Time, impressions int64) *kpi.DailyAggregate {
	return &kpi.DailyAggregate{
		UserID:           1,
		Date:             date,
		TotalImpressions: impressions,
		TotalClicks:      100,
		TotalConversions: 10,
		TotalSpend:       50,
		TotalRevenue:     200,
	}
}

func TestAnalyzeKPITimePatternsBaselines(t *testing.T) {
	mon1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tue := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	sat := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	result, err := AnalyzeKPITimePatterns([]*kpi.DailyAggregate{
		dayRow(mon1, 1000),
		dayRow(tue, 2000),
		dayRow(sat, 300),
		dayRow(sun, 500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.WeekdayAvg == nil || !almostEqual(result.WeekdayAvg.Impressions, 1500) {
		t.Errorf("expected weekday impressions avg 1500, got %+v", result.WeekdayAvg)
	}
	if result.WeekendAvg == nil || !almostEqual(result.WeekendAvg.Impressions, 400) {
		t.Errorf("expected weekend impressions avg 400, got %+v", result.WeekendAvg)
	}
	if len(result.DayOfWeekAvg) != 4 {
		t.Errorf("expected 4 day-of-week buckets, got %d", len(result.DayOfWeekAvg))
	}
	if avg, ok := result.DayOfWeekAvg["Monday"]; !ok || !almostEqual(avg.Impressions, 1000) {
		t.Errorf("expected Monday impressions 1000, got %+v", avg)
	}
}

func TestAnalyzeKPITimePatternsAnomalyDays(t *testing.T) {
	mon1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mon2 := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	// Monday mean is 250, so 100 deviates -60% and 400 deviates +60%.
	result, err := AnalyzeKPITimePatterns([]*kpi.DailyAggregate{
		dayRow(mon2, 400),
		dayRow(mon1, 100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var flagged []analysis.KPIAnomalyDay
	for _, d := range result.AnomalyDays {
		if d.Metric == anomaly.MetricImpressions {
			flagged = append(flagged, d)
		}
	}
	if len(flagged) != 2 {
		t.Fatalf("expected 2 flagged impression days, got %+v", result.AnomalyDays)
	}

	// Chronological order regardless of input order.
	if flagged[0].Date != "2025-06-02" || flagged[1].Date != "2025-06-09" {
		t.Errorf("expected chronological order, got %s then %s", flagged[0].Date, flagged[1].Date)
	}
	if !almostEqual(flagged[0].Expected, 250) {
		t.Errorf("expected baseline 250, got %v", flagged[0].Expected)
	}
	if !almostEqual(flagged[0].DeviationPercent, -60) {
		t.Errorf("expected deviation -60, got %v", flagged[0].DeviationPercent)
	}
	if !almostEqual(flagged[1].DeviationPercent, 60) {
		t.Errorf("expected deviation 60, got %v", flagged[1].DeviationPercent)
	}

	// The constant metrics never deviate from their own mean.
	for _, d := range result.AnomalyDays {
		if d.Metric != anomaly.MetricImpressions {
			t.Errorf("unexpected flagged metric %s", d.Metric)
		}
	}
}

func TestAnalyzeKPITimePatternsEmpty(t *testing.T) {
	result, err := AnalyzeKPITimePatterns(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WeekdayAvg != nil || result.WeekendAvg != nil {
		t.Error("expected nil bucket averages for empty input")
	}
	if len(result.AnomalyDays) != 0 {
		t.Errorf("expected no anomaly days, got %d", len(result.AnomalyDays))
	}
}

func TestAnalyzeKPITimePatternsValidation(t *testing.T) {
	_, err := AnalyzeKPITimePatterns([]*kpi.DailyAggregate{nil})
	if err == nil {
		t.Fatal("expected error for nil aggregate")
	}
	_, err = AnalyzeKPITimePatterns([]*kpi.DailyAggregate{{UserID: 1}})
	if err == nil {
		t.Fatal("expected error for zero date")
	}
}
