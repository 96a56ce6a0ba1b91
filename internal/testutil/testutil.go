// Package testutil provides shared helpers for tests: repository
// mocks, an in-memory database and fixture builders.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/pkg/logger"
)

// NewTestDB opens an in-memory SQLite database with the schema
// applied. The connection is closed when the test finishes.
func NewTestDB(t *testing.T, migrate func(*sql.DB, string) error) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// The in-memory database disappears if the pool opens a second
	// connection.
	db.SetMaxOpenConns(1)

	if err := migrate(db, "sqlite"); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// NewTestLogger returns a logger suitable for tests.
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// NewAnomaly builds a valid anomaly fixture with value and change
// fields matching the given type. Callers override fields after the
// fact.
func NewAnomaly(id, campaignID, metric, typ, severity string, detectedAt time.Time) *anomaly.Anomaly {
	current, change := 150.0, 50.0
	if typ == anomaly.TypeDrop {
		current, change = 50.0, -50.0
	}
	return &anomaly.Anomaly{
		ID:            id,
		UserID:        1,
		CampaignID:    campaignID,
		CampaignName:  "Campaign " + campaignID,
		Type:          typ,
		Severity:      severity,
		Metric:        metric,
		CurrentValue:  current,
		PreviousValue: 100,
		ChangePercent: change,
		Message:       metric + " " + typ + " detected",
		DetectedAt:    detectedAt,
		CreatedAt:     detectedAt,
	}
}
