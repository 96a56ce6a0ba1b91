package testutil

import (
	"context"
	"time"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/domain/kpi"
)

// MockAnomalyRepository is a hand-written mock for anomaly.Repository.
// Unset function fields return zero values.
type MockAnomalyRepository struct {
	CreateFn             func(ctx context.Context, a *anomaly.Anomaly) error
	GetByIDFn            func(ctx context.Context, userID int64, id string) (*anomaly.Anomaly, error)
	ListFn               func(ctx context.Context, userID int64, filter anomaly.Filter) ([]*anomaly.Anomaly, error)
	ListWithPaginationFn func(ctx context.Context, userID int64, filter anomaly.Filter, limit, offset int) ([]*anomaly.Anomaly, int64, error)
	CountBySeverityFn    func(ctx context.Context, userID int64) (map[string]int, error)
}

func (m *MockAnomalyRepository) Create(ctx context.Context, a *anomaly.Anomaly) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *MockAnomalyRepository) GetByID(ctx context.Context, userID int64, id string) (*anomaly.Anomaly, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockAnomalyRepository) List(ctx context.Context, userID int64, filter anomaly.Filter) ([]*anomaly.Anomaly, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockAnomalyRepository) ListWithPagination(ctx context.Context, userID int64, filter anomaly.Filter, limit, offset int) ([]*anomaly.Anomaly, int64, error) {
	if m.ListWithPaginationFn != nil {
		return m.ListWithPaginationFn(ctx, userID, filter, limit, offset)
	}
	return nil, 0, nil
}

func (m *MockAnomalyRepository) CountBySeverity(ctx context.Context, userID int64) (map[string]int, error) {
	if m.CountBySeverityFn != nil {
		return m.CountBySeverityFn(ctx, userID)
	}
	return map[string]int{}, nil
}

// MockKPIRepository is a hand-written mock for kpi.Repository.
type MockKPIRepository struct {
	UpsertFn    func(ctx context.Context, agg *kpi.DailyAggregate) error
	ListRangeFn func(ctx context.Context, userID int64, from, to time.Time) ([]*kpi.DailyAggregate, error)
}

func (m *MockKPIRepository) Upsert(ctx context.Context, agg *kpi.DailyAggregate) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, agg)
	}
	return nil
}

func (m *MockKPIRepository) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]*kpi.DailyAggregate, error) {
	if m.ListRangeFn != nil {
		return m.ListRangeFn(ctx, userID, from, to)
	}
	return nil, nil
}
