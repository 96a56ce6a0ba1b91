package analysis

import (
	"time"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
)

// Segment groups the anomalies of one campaign with a severity-weighted
// score. Segments are ranked worst-first.
type Segment struct {
	CampaignID    string             `json:"campaign_id"`
	CampaignName  string             `json:"campaign_name"`
	Anomalies     []*anomaly.Anomaly `json:"anomalies"`
	SeverityScore int                `json:"severity_score"`
}

// MetricStats summarizes one metric's anomalies within a campaign.
type MetricStats struct {
	AnomalyCount int     `json:"anomaly_count"`
	AvgChange    float64 `json:"avg_change"`
}

// CampaignComparison is a per-campaign health summary. HealthScore is
// clamped to [0, 100]; lower is worse.
type CampaignComparison struct {
	CampaignID   string                 `json:"campaign_id"`
	CampaignName string                 `json:"campaign_name"`
	AnomalyCount int                    `json:"anomaly_count"`
	AvgSeverity  float64                `json:"avg_severity"`
	HealthScore  float64                `json:"health_score"`
	Metrics      map[string]MetricStats `json:"metrics"`
}

// Time pattern classifications
const (
	PatternWeekdaySpike = "weekday_spike"
	PatternWeekendSpike = "weekend_spike"
	PatternConsistent   = "consistent"
)

// TimePatternResult classifies when anomalies tend to occur.
type TimePatternResult struct {
	Pattern               string   `json:"pattern"`
	Confidence            float64  `json:"confidence"`
	Details               string   `json:"details"`
	RecommendedMonitoring []string `json:"recommended_monitoring"`
}

// MetricAverages holds per-metric means over a bucket of daily rows.
type MetricAverages struct {
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
}

// KPIAnomalyDay flags a day whose metric deviates sharply from that
// day-of-week's own historical mean.
type KPIAnomalyDay struct {
	Date             string  `json:"date"`
	Metric           string  `json:"metric"`
	Value            float64 `json:"value"`
	Expected         float64 `json:"expected"`
	DeviationPercent float64 `json:"deviation_percent"`
}

// KPITimePatternResult holds weekday/weekend and day-of-week baselines
// computed from raw daily aggregates. Buckets with no samples are nil
// or absent from the map.
type KPITimePatternResult struct {
	WeekdayAvg   *MetricAverages           `json:"weekday_avg,omitempty"`
	WeekendAvg   *MetricAverages           `json:"weekend_avg,omitempty"`
	DayOfWeekAvg map[string]MetricAverages `json:"day_of_week_avg"`
	AnomalyDays  []KPIAnomalyDay           `json:"anomaly_days"`
}

// Metric categories
const (
	CategorySpendRelated = "spend_related"
	CategoryEngagement   = "engagement"
	CategoryConversion   = "conversion"
)

// MetricCategoryResult summarizes anomalies within one semantic
// metric category.
type MetricCategoryResult struct {
	AnomalyCount     int     `json:"anomaly_count"`
	AvgSeverityScore float64 `json:"avg_severity_score"`
	DominantType     string  `json:"dominant_type"`
}

// Correlation relationship directions
const (
	CorrelationPositive = "positive"
	CorrelationNegative = "negative"
)

// Correlation records that two metrics' anomaly magnitudes moved
// together (or oppositely) across time-aligned samples.
type Correlation struct {
	Metric1         string `json:"metric1"`
	Metric2         string `json:"metric2"`
	CorrelationType string `json:"correlation_type"`
	SampleCount     int    `json:"sample_count"`
}

// PropagationPath describes a plausible root-cause chain among
// anomalies of a single campaign that occurred close together in time.
type PropagationPath struct {
	RootAnomaly         *anomaly.Anomaly   `json:"root_anomaly"`
	PropagationChain    []string           `json:"propagation_chain"`
	PropagatedAnomalies []*anomaly.Anomaly `json:"propagated_anomalies"`
}

// Insight types
const (
	InsightWarning        = "warning"
	InsightRecommendation = "recommendation"
	InsightInfo           = "info"
)

// Insight is a rendered, end-user-facing finding. Insights are
// generated per analysis run and never persisted.
type Insight struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items,omitempty"`
}

// SegmentAnalysisResult is the top-level aggregate returned by
// AnalyzeSegments.
type SegmentAnalysisResult struct {
	SegmentType     string           `json:"segment_type"`
	Segments        []Segment        `json:"segments"`
	Insights        []Insight        `json:"insights"`
	Correlations    []Correlation    `json:"correlations"`
	PropagationPath *PropagationPath `json:"propagation_path,omitempty"`
}

// Window bounds one analysis run.
type Window struct {
	From time.Time
	To   time.Time
}
