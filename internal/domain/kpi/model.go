package kpi

import "time"

// DailyAggregate holds one calendar day of account-level performance
// totals. Rows are deduplicated by date on ingest.
type DailyAggregate struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Date             time.Time `json:"date"`
	TotalImpressions int64     `json:"total_impressions"`
	TotalClicks      int64     `json:"total_clicks"`
	TotalConversions int64     `json:"total_conversions"`
	TotalSpend       float64   `json:"total_spend"`
	TotalRevenue     float64   `json:"total_revenue"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}
