package kpi

import (
	"context"
	"time"
)

// Repository defines the interface for daily KPI data access
type Repository interface {
	// Upsert stores a daily aggregate row, replacing any existing row
	// for the same user and date
	Upsert(ctx context.Context, agg *DailyAggregate) error

	// ListRange retrieves aggregates within [from, to], ordered by date
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*DailyAggregate, error)
}
