package dto

import (
	"time"

	"github.com/adaudit/adaudit/internal/domain/kpi"
)

// RecordKPIRequest is one day of account-level performance totals
type RecordKPIRequest struct {
	Date             string  `json:"date" validate:"required,datetime=2006-01-02"`
	TotalImpressions int64   `json:"total_impressions" validate:"min=0"`
	TotalClicks      int64   `json:"total_clicks" validate:"min=0"`
	TotalConversions int64   `json:"total_conversions" validate:"min=0"`
	TotalSpend       float64 `json:"total_spend" validate:"min=0"`
	TotalRevenue     float64 `json:"total_revenue" validate:"min=0"`
}

// ToModel converts the request to a domain aggregate. The date has
// already passed format validation.
func (r *RecordKPIRequest) ToModel(userID int64) *kpi.DailyAggregate {
	date, _ := time.Parse("2006-01-02", r.Date)
	return &kpi.DailyAggregate{
		UserID:           userID,
		Date:             date,
		TotalImpressions: r.TotalImpressions,
		TotalClicks:      r.TotalClicks,
		TotalConversions: r.TotalConversions,
		TotalSpend:       r.TotalSpend,
		TotalRevenue:     r.TotalRevenue,
	}
}
