package client

import "time"

// Anomaly is a detected ad performance anomaly
type Anomaly struct {
	ID              string         `json:"id"`
	UserID          int64          `json:"user_id"`
	CampaignID      string         `json:"campaign_id"`
	CampaignName    string         `json:"campaign_name"`
	Type            string         `json:"type"`
	Severity        string         `json:"severity"`
	Metric          string         `json:"metric"`
	CurrentValue    float64        `json:"current_value"`
	PreviousValue   float64        `json:"previous_value"`
	ChangePercent   float64        `json:"change_percent"`
	Message         string         `json:"message"`
	DetectedAt      time.Time      `json:"detected_at"`
	Detail          *AnomalyDetail `json:"detail,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// AnomalyDetail carries the detector's supporting statistics
type AnomalyDetail struct {
	Method        string    `json:"method"`
	BaselineMean  float64   `json:"baseline_mean"`
	BaselineStdev float64   `json:"baseline_stdev"`
	Trend         []float64 `json:"trend,omitempty"`
}

// AnomalyPage is a paginated list of anomalies
type AnomalyPage struct {
	Data       []Anomaly `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalItems int64     `json:"total_items"`
	TotalPages int       `json:"total_pages"`
}

// AnomalySummary reports anomaly counts by severity
type AnomalySummary struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// DailyKPI is one day of account-level performance totals
type DailyKPI struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Date             time.Time `json:"date"`
	TotalImpressions int64     `json:"total_impressions"`
	TotalClicks      int64     `json:"total_clicks"`
	TotalConversions int64     `json:"total_conversions"`
	TotalSpend       float64   `json:"total_spend"`
	TotalRevenue     float64   `json:"total_revenue"`
}

// RecordKPIRequest is the KPI ingest payload
type RecordKPIRequest struct {
	Date             string  `json:"date"`
	TotalImpressions int64   `json:"total_impressions"`
	TotalClicks      int64   `json:"total_clicks"`
	TotalConversions int64   `json:"total_conversions"`
	TotalSpend       float64 `json:"total_spend"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// Segment groups the anomalies of one campaign
type Segment struct {
	CampaignID    string    `json:"campaign_id"`
	CampaignName  string    `json:"campaign_name"`
	Anomalies     []Anomaly `json:"anomalies"`
	SeverityScore int       `json:"severity_score"`
}

// Insight is a rendered, end-user-facing finding
type Insight struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items,omitempty"`
}

// Correlation records that two metrics' anomalies move together
type Correlation struct {
	Metric1         string `json:"metric1"`
	Metric2         string `json:"metric2"`
	CorrelationType string `json:"correlation_type"`
	SampleCount     int    `json:"sample_count"`
}

// PropagationPath describes a plausible root-cause chain
type PropagationPath struct {
	RootAnomaly         *Anomaly  `json:"root_anomaly"`
	PropagationChain    []string  `json:"propagation_chain"`
	PropagatedAnomalies []Anomaly `json:"propagated_anomalies"`
}

// SegmentAnalysis is the full segment analysis result
type SegmentAnalysis struct {
	SegmentType     string           `json:"segment_type"`
	Segments        []Segment        `json:"segments"`
	Insights        []Insight        `json:"insights"`
	Correlations    []Correlation    `json:"correlations"`
	PropagationPath *PropagationPath `json:"propagation_path,omitempty"`
}

// MetricStats summarizes one metric's anomalies within a campaign
type MetricStats struct {
	AnomalyCount int     `json:"anomaly_count"`
	AvgChange    float64 `json:"avg_change"`
}

// CampaignComparison is a per-campaign health summary
type CampaignComparison struct {
	CampaignID   string                 `json:"campaign_id"`
	CampaignName string                 `json:"campaign_name"`
	AnomalyCount int                    `json:"anomaly_count"`
	AvgSeverity  float64                `json:"avg_severity"`
	HealthScore  float64                `json:"health_score"`
	Metrics      map[string]MetricStats `json:"metrics"`
}

// TimePattern classifies when anomalies tend to occur
type TimePattern struct {
	Pattern               string   `json:"pattern"`
	Confidence            float64  `json:"confidence"`
	Details               string   `json:"details"`
	RecommendedMonitoring []string `json:"recommended_monitoring"`
}

// MetricAverages holds per-metric means over a bucket of days
type MetricAverages struct {
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Conversions float64 `json:"conversions"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
}

// KPIAnomalyDay flags a sharply deviating day
type KPIAnomalyDay struct {
	Date             string  `json:"date"`
	Metric           string  `json:"metric"`
	Value            float64 `json:"value"`
	Expected         float64 `json:"expected"`
	DeviationPercent float64 `json:"deviation_percent"`
}

// KPITimePattern holds day-of-week baselines and flagged days
type KPITimePattern struct {
	WeekdayAvg   *MetricAverages           `json:"weekday_avg,omitempty"`
	WeekendAvg   *MetricAverages           `json:"weekend_avg,omitempty"`
	DayOfWeekAvg map[string]MetricAverages `json:"day_of_week_avg"`
	AnomalyDays  []KPIAnomalyDay           `json:"anomaly_days"`
}

// MetricCategory summarizes anomalies within one metric category
type MetricCategory struct {
	AnomalyCount     int     `json:"anomaly_count"`
	AvgSeverityScore float64 `json:"avg_severity_score"`
	DominantType     string  `json:"dominant_type"`
}
