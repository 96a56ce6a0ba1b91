package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/pkg/logger"
)

// AnomalyService implements anomaly.Service
type AnomalyService struct {
	repo anomaly.Repository
	log  *logger.Logger
}

// NewAnomalyService creates a new anomaly service
func NewAnomalyService(repo anomaly.Repository, log *logger.Logger) anomaly.Service {
	return &AnomalyService{
		repo: repo,
		log:  log,
	}
}

// Ingest stores a fully-formed anomaly produced by the upstream
// detector. An ID and creation time are assigned when missing.
func (s *AnomalyService) Ingest(ctx context.Context, a *anomaly.Anomaly) error {
	if a == nil {
		return errors.BadRequest("anomaly payload is required")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if err := validateAnomalies([]*anomaly.Anomaly{a}); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.WithError(err).Error("failed to store anomaly")
		return errors.DatabaseError("failed to store anomaly", err)
	}

	s.log.WithFields(map[string]interface{}{
		"anomaly_id":  a.ID,
		"campaign_id": a.CampaignID,
		"metric":      a.Metric,
		"severity":    a.Severity,
	}).Info("anomaly ingested")
	return nil
}

// GetByID retrieves an anomaly by ID
func (s *AnomalyService) GetByID(ctx context.Context, userID int64, id string) (*anomaly.Anomaly, error) {
	if id == "" {
		return nil, errors.BadRequest("anomaly id is required")
	}
	a, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errors.NotFound("anomaly")
	}
	return a, nil
}

// List retrieves anomalies with filters and pagination
func (s *AnomalyService) List(ctx context.Context, userID int64, filter anomaly.Filter, limit, offset int) ([]*anomaly.Anomaly, int64, error) {
	if filter.Type != "" && !anomaly.ValidType(filter.Type) {
		return nil, 0, errors.BadRequest("unknown anomaly type filter")
	}
	if filter.Severity != "" && !anomaly.ValidSeverity(filter.Severity) {
		return nil, 0, errors.BadRequest("unknown severity filter")
	}

	anomalies, total, err := s.repo.ListWithPagination(ctx, userID, filter, limit, offset)
	if err != nil {
		s.log.WithError(err).Error("failed to list anomalies")
		return nil, 0, errors.DatabaseError("failed to list anomalies", err)
	}
	return anomalies, total, nil
}

// GetSummary gets anomaly counts by severity
func (s *AnomalyService) GetSummary(ctx context.Context, userID int64) (map[string]int, error) {
	counts, err := s.repo.CountBySeverity(ctx, userID)
	if err != nil {
		s.log.WithError(err).Error("failed to summarize anomalies")
		return nil, errors.DatabaseError("failed to summarize anomalies", err)
	}
	return counts, nil
}
