package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	apperrors "github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/testutil"
)

func TestAnomalyServiceIngest(t *testing.T) {
	var stored *anomaly.Anomaly
	repo := &testutil.MockAnomalyRepository{
		CreateFn: func(ctx context.Context, a *anomaly.Anomaly) error {
			stored = a
			return nil
		},
	}
	svc := NewAnomalyService(repo, testutil.NewTestLogger())

	a := testutil.NewAnomaly("", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityCritical, baseTime)
	a.CreatedAt = time.Time{}
	if err := svc.Ingest(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("anomaly was not stored")
	}
	if stored.ID == "" {
		t.Error("expected a generated ID")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
}

func TestAnomalyServiceIngestValidation(t *testing.T) {
	svc := NewAnomalyService(&testutil.MockAnomalyRepository{}, testutil.NewTestLogger())
	ctx := context.Background()

	if err := svc.Ingest(ctx, nil); err == nil {
		t.Error("expected error for nil payload")
	}

	a := testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, "wobble", anomaly.SeverityCritical, baseTime)
	err := svc.Ingest(ctx, a)
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	var appErr *apperrors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAnomalyServiceGetByID(t *testing.T) {
	want := testutil.NewAnomaly("a1", "c1", anomaly.MetricSpend, anomaly.TypeSpike, anomaly.SeverityInfo, baseTime)
	repo := &testutil.MockAnomalyRepository{
		GetByIDFn: func(ctx context.Context, userID int64, id string) (*anomaly.Anomaly, error) {
			if id == "a1" && userID == 1 {
				return want, nil
			}
			return nil, nil
		},
	}
	svc := NewAnomalyService(repo, testutil.NewTestLogger())
	ctx := context.Background()

	got, err := svc.GetByID(ctx, 1, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a1" {
		t.Errorf("expected a1, got %s", got.ID)
	}

	_, err = svc.GetByID(ctx, 1, "missing")
	var appErr *apperrors.AppError
	if !stderrors.As(err, &appErr) || appErr.Code != apperrors.ErrCodeNotFound {
		t.Errorf("expected not found, got %v", err)
	}

	if _, err := svc.GetByID(ctx, 1, ""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestAnomalyServiceListFilterValidation(t *testing.T) {
	svc := NewAnomalyService(&testutil.MockAnomalyRepository{}, testutil.NewTestLogger())
	ctx := context.Background()

	if _, _, err := svc.List(ctx, 1, anomaly.Filter{Type: "wobble"}, 20, 0); err == nil {
		t.Error("expected error for unknown type filter")
	}
	if _, _, err := svc.List(ctx, 1, anomaly.Filter{Severity: "mild"}, 20, 0); err == nil {
		t.Error("expected error for unknown severity filter")
	}
	if _, _, err := svc.List(ctx, 1, anomaly.Filter{}, 20, 0); err != nil {
		t.Errorf("unexpected error for empty filter: %v", err)
	}
}

func TestAnomalyServiceGetSummary(t *testing.T) {
	repo := &testutil.MockAnomalyRepository{
		CountBySeverityFn: func(ctx context.Context, userID int64) (map[string]int, error) {
			return map[string]int{anomaly.SeverityCritical: 2, anomaly.SeverityInfo: 5}, nil
		},
	}
	svc := NewAnomalyService(repo, testutil.NewTestLogger())

	counts, err := svc.GetSummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[anomaly.SeverityCritical] != 2 || counts[anomaly.SeverityInfo] != 5 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}
