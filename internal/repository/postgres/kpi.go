package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adaudit/adaudit/internal/domain/kpi"
	"github.com/adaudit/adaudit/internal/pkg/metrics"
)

const kpiDateFormat = "2006-01-02"

// kpiRepository implements kpi.Repository
type kpiRepository struct {
	db     *sql.DB
	driver string
}

// NewKPIRepository creates a new daily KPI repository
func NewKPIRepository(db *sql.DB, driver string) kpi.Repository {
	return &kpiRepository{db: db, driver: driver}
}

// Upsert stores a daily aggregate row, replacing any existing row for
// the same user and date
func (r *kpiRepository) Upsert(ctx context.Context, agg *kpi.DailyAggregate) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "daily_kpis", time.Since(start)) }()

	now := time.Now().UTC().Format(time.RFC3339)
	query := rebind(r.driver, `INSERT INTO daily_kpis
		(user_id, date, total_impressions, total_clicks, total_conversions,
		 total_spend, total_revenue, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			total_impressions = excluded.total_impressions,
			total_clicks = excluded.total_clicks,
			total_conversions = excluded.total_conversions,
			total_spend = excluded.total_spend,
			total_revenue = excluded.total_revenue,
			updated_at = excluded.updated_at`)

	_, err := r.db.ExecContext(ctx, query,
		agg.UserID, agg.Date.UTC().Format(kpiDateFormat),
		agg.TotalImpressions, agg.TotalClicks, agg.TotalConversions,
		agg.TotalSpend, agg.TotalRevenue, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert daily kpi: %w", err)
	}
	return nil
}

// ListRange retrieves aggregates within [from, to], ordered by date
func (r *kpiRepository) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*kpi.DailyAggregate, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_range", "daily_kpis", time.Since(start)) }()

	query := rebind(r.driver, `SELECT id, user_id, date, total_impressions, total_clicks,
		total_conversions, total_spend, total_revenue, created_at, updated_at
		FROM daily_kpis
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`)

	rows, err := r.db.QueryContext(ctx, query, userID,
		from.UTC().Format(kpiDateFormat), to.UTC().Format(kpiDateFormat))
	if err != nil {
		return nil, fmt.Errorf("list daily kpis: %w", err)
	}
	defer rows.Close()

	aggregates := make([]*kpi.DailyAggregate, 0)
	for rows.Next() {
		var d kpi.DailyAggregate
		var date, createdAt, updatedAt string
		err := rows.Scan(&d.ID, &d.UserID, &date,
			&d.TotalImpressions, &d.TotalClicks, &d.TotalConversions,
			&d.TotalSpend, &d.TotalRevenue, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan daily kpi: %w", err)
		}
		if d.Date, err = time.Parse(kpiDateFormat, date); err != nil {
			return nil, fmt.Errorf("parse date: %w", err)
		}
		if d.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if updatedAt != "" {
			if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
				return nil, fmt.Errorf("parse updated_at: %w", err)
			}
		}
		aggregates = append(aggregates, &d)
	}
	return aggregates, rows.Err()
}
