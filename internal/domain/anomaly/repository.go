package anomaly

import "context"

// Repository defines the interface for anomaly data access
type Repository interface {
	// Create stores a detector-produced anomaly record
	Create(ctx context.Context, anomaly *Anomaly) error

	// GetByID retrieves an anomaly by ID
	GetByID(ctx context.Context, userID int64, id string) (*Anomaly, error)

	// List retrieves anomalies with filters, ordered by detection time
	List(ctx context.Context, userID int64, filter Filter) ([]*Anomaly, error)

	// ListWithPagination retrieves anomalies with filters and pagination
	ListWithPagination(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Anomaly, int64, error)

	// CountBySeverity counts anomalies by severity
	CountBySeverity(ctx context.Context, userID int64) (map[string]int, error)
}
