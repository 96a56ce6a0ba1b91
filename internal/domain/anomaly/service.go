package anomaly

import "context"

// Service defines the interface for anomaly business logic
type Service interface {
	// Ingest stores a fully-formed anomaly produced by the upstream detector
	Ingest(ctx context.Context, anomaly *Anomaly) error

	// GetByID retrieves an anomaly by ID
	GetByID(ctx context.Context, userID int64, id string) (*Anomaly, error)

	// List retrieves anomalies with filters and pagination
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Anomaly, int64, error)

	// GetSummary gets anomaly counts by severity
	GetSummary(ctx context.Context, userID int64) (map[string]int, error)
}
