package anomaly

import "time"

// Anomaly represents a detected ad performance anomaly. Anomalies are
// produced by the upstream detector and are read-only facts for the
// analysis engine.
type Anomaly struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"user_id"`
	CampaignID      string    `json:"campaign_id"`
	CampaignName    string    `json:"campaign_name"`
	Type            string    `json:"type"`
	Severity        string    `json:"severity"`
	Metric          string    `json:"metric"`
	CurrentValue    float64   `json:"current_value"`
	PreviousValue   float64   `json:"previous_value"`
	ChangePercent   float64   `json:"change_percent"`
	Message         string    `json:"message"`
	DetectedAt      time.Time `json:"detected_at"`
	Detail          *Detail   `json:"detail,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Detail carries the detector's supporting statistics.
type Detail struct {
	Method        string    `json:"method"`
	BaselineMean  float64   `json:"baseline_mean"`
	BaselineStdev float64   `json:"baseline_stdev"`
	Trend         []float64 `json:"trend,omitempty"`
}

// Anomaly types
const (
	TypeSpike = "spike"
	TypeDrop  = "drop"
)

// Severity levels
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Well-known metric names
const (
	MetricSpend       = "spend"
	MetricCPA         = "cpa"
	MetricCPC         = "cpc"
	MetricBudget      = "budget"
	MetricCTR         = "ctr"
	MetricClicks      = "clicks"
	MetricImpressions = "impressions"
	MetricConversions = "conversions"
	MetricCVR         = "cvr"
	MetricROAS        = "roas"
	MetricRevenue     = "revenue"
)

// ValidType reports whether t is a known anomaly type.
func ValidType(t string) bool {
	return t == TypeSpike || t == TypeDrop
}

// ValidSeverity reports whether s is a known severity level.
func ValidSeverity(s string) bool {
	return s == SeverityCritical || s == SeverityWarning || s == SeverityInfo
}

// Filter contains anomaly filtering options
type Filter struct {
	CampaignID string
	Metric     string
	Type       string
	Severity   string
	From       time.Time
	To         time.Time
}
