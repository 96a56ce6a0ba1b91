package services

import (
	"context"
	"time"

	"github.com/adaudit/adaudit/internal/domain/kpi"
	"github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/pkg/logger"
)

// KPIService implements kpi.Service
type KPIService struct {
	repo kpi.Repository
	log  *logger.Logger
}

// NewKPIService creates a new KPI service
func NewKPIService(repo kpi.Repository, log *logger.Logger) kpi.Service {
	return &KPIService{
		repo: repo,
		log:  log,
	}
}

// Record upserts one day of account-level totals. Dates are truncated
// to midnight UTC so a user has at most one row per calendar day.
func (s *KPIService) Record(ctx context.Context, agg *kpi.DailyAggregate) error {
	if agg == nil {
		return errors.BadRequest("daily aggregate payload is required")
	}
	if agg.Date.IsZero() {
		return errors.BadRequest("daily aggregate requires a date")
	}
	if agg.TotalImpressions < 0 || agg.TotalClicks < 0 || agg.TotalConversions < 0 ||
		agg.TotalSpend < 0 || agg.TotalRevenue < 0 {
		return errors.BadRequest("daily aggregate totals cannot be negative")
	}

	agg.Date = agg.Date.UTC().Truncate(24 * time.Hour)
	if err := s.repo.Upsert(ctx, agg); err != nil {
		s.log.WithError(err).Error("failed to store daily aggregate")
		return errors.DatabaseError("failed to store daily aggregate", err)
	}

	s.log.With("date", agg.Date.Format("2006-01-02")).Debug("daily aggregate recorded")
	return nil
}

// ListRange retrieves aggregates within [from, to], ordered by date
func (s *KPIService) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*kpi.DailyAggregate, error) {
	if from.IsZero() || to.IsZero() {
		return nil, errors.BadRequest("range requires both from and to")
	}
	if to.Before(from) {
		return nil, errors.BadRequest("range end precedes its start")
	}
	aggregates, err := s.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		s.log.WithError(err).Error("failed to list daily aggregates")
		return nil, errors.DatabaseError("failed to list daily aggregates", err)
	}
	return aggregates, nil
}
