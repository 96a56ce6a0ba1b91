// Package worker runs the scheduled background analysis.
package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/pkg/metrics"
)

// AnalysisScheduler periodically re-runs the analysis over a trailing
// window and exports the results as gauges. The API stays the source
// of truth for on-demand results; the scheduler only feeds monitoring.
type AnalysisScheduler struct {
	service    analysis.Service
	log        *logger.Logger
	cron       *cron.Cron
	schedule   string
	windowDays int
	userIDs    []int64
}

// NewAnalysisScheduler creates a new analysis scheduler
func NewAnalysisScheduler(service analysis.Service, log *logger.Logger, schedule string, windowDays int, userIDs []int64) *AnalysisScheduler {
	return &AnalysisScheduler{
		service:    service,
		log:        log,
		cron:       cron.New(),
		schedule:   schedule,
		windowDays: windowDays,
		userIDs:    userIDs,
	}
}

// Start registers the cron entry and begins running
func (s *AnalysisScheduler) Start() error {
	if len(s.userIDs) == 0 {
		s.log.Info("analysis scheduler disabled: no users configured")
		return nil
	}
	_, err := s.cron.AddFunc(s.schedule, s.runAll)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.With("schedule", s.schedule).Info("analysis scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *AnalysisScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("analysis scheduler stopped")
}

func (s *AnalysisScheduler) runAll() {
	for _, userID := range s.userIDs {
		s.runOnce(userID)
	}
}

func (s *AnalysisScheduler) runOnce(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now().UTC()
	window := analysis.Window{From: now.AddDate(0, 0, -s.windowDays), To: now}

	result, err := s.service.AnalyzeSegmentsWindow(ctx, userID, window)
	if err != nil {
		s.log.WithError(err).With("user_id", userID).Error("scheduled segment analysis failed")
		return
	}

	severityCounts := make(map[string]int)
	for _, seg := range result.Segments {
		for _, a := range seg.Anomalies {
			severityCounts[a.Severity]++
		}
	}
	for severity, count := range severityCounts {
		metrics.SetActiveAnomalies(severity, float64(count))
	}

	comparisons, err := s.service.CompareCampaignsWindow(ctx, userID, window)
	if err != nil {
		s.log.WithError(err).With("user_id", userID).Error("scheduled campaign comparison failed")
		return
	}
	if len(comparisons) > 0 {
		// Most problematic campaign comes first.
		metrics.SetWorstHealthScore(comparisons[0].HealthScore)
	} else {
		metrics.SetWorstHealthScore(100)
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":   userID,
		"segments":  len(result.Segments),
		"insights":  len(result.Insights),
		"campaigns": len(comparisons),
	}).Info("scheduled analysis complete")
}
