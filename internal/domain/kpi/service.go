package kpi

import (
	"context"
	"time"
)

// Service defines the interface for daily KPI business logic
type Service interface {
	// Record upserts one day of account-level totals
	Record(ctx context.Context, agg *DailyAggregate) error

	// ListRange retrieves aggregates within [from, to], ordered by date
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*DailyAggregate, error)
}
