package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/pkg/metrics"
)

// anomalyRepository implements anomaly.Repository
type anomalyRepository struct {
	db     *sql.DB
	driver string
}

// NewAnomalyRepository creates a new anomaly repository
func NewAnomalyRepository(db *sql.DB, driver string) anomaly.Repository {
	return &anomalyRepository{db: db, driver: driver}
}

const anomalyColumns = `id, user_id, campaign_id, campaign_name, type, severity, metric,
	current_value, previous_value, change_percent, message, detected_at,
	detail, recommendations, created_at`

// Create stores a detector-produced anomaly record
func (r *anomalyRepository) Create(ctx context.Context, a *anomaly.Anomaly) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("create", "ad_anomalies", time.Since(start)) }()

	detail, err := marshalNullable(a.Detail)
	if err != nil {
		return fmt.Errorf("marshal detail: %w", err)
	}
	recommendations, err := marshalNullable(a.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	query := rebind(r.driver, `INSERT INTO ad_anomalies (`+anomalyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.CampaignID, a.CampaignName, a.Type, a.Severity, a.Metric,
		a.CurrentValue, a.PreviousValue, a.ChangePercent, a.Message,
		a.DetectedAt.UTC().Format(time.RFC3339),
		detail, recommendations,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert anomaly: %w", err)
	}
	return nil
}

// GetByID retrieves an anomaly by ID
func (r *anomalyRepository) GetByID(ctx context.Context, userID int64, id string) (*anomaly.Anomaly, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("get", "ad_anomalies", time.Since(start)) }()

	query := rebind(r.driver, `SELECT `+anomalyColumns+` FROM ad_anomalies
		WHERE user_id = ? AND id = ?`)
	row := r.db.QueryRowContext(ctx, query, userID, id)

	a, err := scanAnomaly(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get anomaly: %w", err)
	}
	return a, nil
}

// List retrieves anomalies with filters, ordered by detection time
func (r *anomalyRepository) List(ctx context.Context, userID int64, filter anomaly.Filter) ([]*anomaly.Anomaly, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list", "ad_anomalies", time.Since(start)) }()

	where, args := buildAnomalyWhere(userID, filter)
	query := rebind(r.driver, `SELECT `+anomalyColumns+` FROM ad_anomalies
		`+where+` ORDER BY detected_at ASC, id ASC`)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list anomalies: %w", err)
	}
	defer rows.Close()

	return collectAnomalies(rows)
}

// ListWithPagination retrieves anomalies with filters and pagination
func (r *anomalyRepository) ListWithPagination(ctx context.Context, userID int64, filter anomaly.Filter, limit, offset int) ([]*anomaly.Anomaly, int64, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_paginated", "ad_anomalies", time.Since(start)) }()

	where, args := buildAnomalyWhere(userID, filter)

	var total int64
	countQuery := rebind(r.driver, `SELECT COUNT(*) FROM ad_anomalies `+where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count anomalies: %w", err)
	}

	query := rebind(r.driver, `SELECT `+anomalyColumns+` FROM ad_anomalies
		`+where+` ORDER BY detected_at DESC, id ASC LIMIT ? OFFSET ?`)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list anomalies: %w", err)
	}
	defer rows.Close()

	anomalies, err := collectAnomalies(rows)
	if err != nil {
		return nil, 0, err
	}
	return anomalies, total, nil
}

// CountBySeverity counts anomalies by severity
func (r *anomalyRepository) CountBySeverity(ctx context.Context, userID int64) (map[string]int, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count_by_severity", "ad_anomalies", time.Since(start)) }()

	query := rebind(r.driver, `SELECT severity, COUNT(*) FROM ad_anomalies
		WHERE user_id = ? GROUP BY severity`)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("count by severity: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, fmt.Errorf("scan severity count: %w", err)
		}
		counts[severity] = count
	}
	return counts, rows.Err()
}

func buildAnomalyWhere(userID int64, filter anomaly.Filter) (string, []interface{}) {
	where := `WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.CampaignID != "" {
		where += ` AND campaign_id = ?`
		args = append(args, filter.CampaignID)
	}
	if filter.Metric != "" {
		where += ` AND metric = ?`
		args = append(args, filter.Metric)
	}
	if filter.Type != "" {
		where += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if filter.Severity != "" {
		where += ` AND severity = ?`
		args = append(args, filter.Severity)
	}
	if !filter.From.IsZero() {
		where += ` AND detected_at >= ?`
		args = append(args, filter.From.UTC().Format(time.RFC3339))
	}
	if !filter.To.IsZero() {
		where += ` AND detected_at <= ?`
		args = append(args, filter.To.UTC().Format(time.RFC3339))
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnomaly(row rowScanner) (*anomaly.Anomaly, error) {
	var a anomaly.Anomaly
	var detectedAt, createdAt string
	var detail, recommendations sql.NullString

	err := row.Scan(
		&a.ID, &a.UserID, &a.CampaignID, &a.CampaignName, &a.Type, &a.Severity, &a.Metric,
		&a.CurrentValue, &a.PreviousValue, &a.ChangePercent, &a.Message, &detectedAt,
		&detail, &recommendations, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if a.DetectedAt, err = time.Parse(time.RFC3339, detectedAt); err != nil {
		return nil, fmt.Errorf("parse detected_at: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if detail.Valid && detail.String != "" {
		if err := json.Unmarshal([]byte(detail.String), &a.Detail); err != nil {
			return nil, fmt.Errorf("unmarshal detail: %w", err)
		}
	}
	if recommendations.Valid && recommendations.String != "" {
		if err := json.Unmarshal([]byte(recommendations.String), &a.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal recommendations: %w", err)
		}
	}
	return &a, nil
}

func collectAnomalies(rows *sql.Rows) ([]*anomaly.Anomaly, error) {
	anomalies := make([]*anomaly.Anomaly, 0)
	for rows.Next() {
		a, err := scanAnomaly(rows)
		if err != nil {
			return nil, fmt.Errorf("scan anomaly: %w", err)
		}
		anomalies = append(anomalies, a)
	}
	return anomalies, rows.Err()
}

func marshalNullable(v interface{}) (sql.NullString, error) {
	switch t := v.(type) {
	case *anomaly.Detail:
		if t == nil {
			return sql.NullString{}, nil
		}
	case []string:
		if len(t) == 0 {
			return sql.NullString{}, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
