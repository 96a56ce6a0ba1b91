package services

import (
	"context"
	"time"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/domain/kpi"
	"github.com/adaudit/adaudit/internal/pkg/errors"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/pkg/metrics"
)

// AnalysisService implements analysis.Service on top of the pure
// engine functions. The list-based operations never touch storage;
// the window variants load the user's data first.
type AnalysisService struct {
	anomalyRepo anomaly.Repository
	kpiRepo     kpi.Repository
	log         *logger.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(anomalyRepo anomaly.Repository, kpiRepo kpi.Repository, log *logger.Logger) analysis.Service {
	return &AnalysisService{
		anomalyRepo: anomalyRepo,
		kpiRepo:     kpiRepo,
		log:         log,
	}
}

// AnalyzeSegments groups anomalies into ranked campaign segments
func (s *AnalysisService) AnalyzeSegments(ctx context.Context, anomalies []*anomaly.Anomaly) (*analysis.SegmentAnalysisResult, error) {
	start := time.Now()
	result, err := AnalyzeSegments(anomalies)
	s.observe("segments", start, anomalies, err)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(map[string]interface{}{
		"anomalies": len(anomalies),
		"segments":  len(result.Segments),
		"insights":  len(result.Insights),
	}).Debug("segment analysis complete")
	return result, nil
}

// CompareCampaigns produces per-campaign health comparisons
func (s *AnalysisService) CompareCampaigns(ctx context.Context, anomalies []*anomaly.Anomaly) ([]analysis.CampaignComparison, error) {
	start := time.Now()
	comparisons, err := CompareCampaigns(anomalies)
	s.observe("campaigns", start, anomalies, err)
	if err != nil {
		return nil, err
	}
	return comparisons, nil
}

// AnalyzeTimePatterns classifies the weekday/weekend distribution of
// anomaly detection times
func (s *AnalysisService) AnalyzeTimePatterns(ctx context.Context, anomalies []*anomaly.Anomaly) (*analysis.TimePatternResult, error) {
	start := time.Now()
	result, err := AnalyzeTimePatterns(anomalies)
	s.observe("time_patterns", start, anomalies, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AnalyzeKPITimePatterns computes day-of-week baselines from raw
// daily aggregates
func (s *AnalysisService) AnalyzeKPITimePatterns(ctx context.Context, aggregates []*kpi.DailyAggregate) (*analysis.KPITimePatternResult, error) {
	start := time.Now()
	result, err := AnalyzeKPITimePatterns(aggregates)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordAnalysisRun("kpi_patterns", status, time.Since(start))
	if err != nil {
		return nil, err
	}
	s.log.WithFields(map[string]interface{}{
		"days":         len(aggregates),
		"anomaly_days": len(result.AnomalyDays),
	}).Debug("kpi time pattern analysis complete")
	return result, nil
}

// AnalyzeByMetric buckets anomalies into semantic metric categories
func (s *AnalysisService) AnalyzeByMetric(ctx context.Context, anomalies []*anomaly.Anomaly) (map[string]analysis.MetricCategoryResult, error) {
	start := time.Now()
	results, err := AnalyzeByMetric(anomalies)
	s.observe("metrics", start, anomalies, err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AnalyzeSegmentsWindow loads the user's anomalies for the window and
// runs segment analysis on them
func (s *AnalysisService) AnalyzeSegmentsWindow(ctx context.Context, userID int64, w analysis.Window) (*analysis.SegmentAnalysisResult, error) {
	anomalies, err := s.loadAnomalies(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeSegments(ctx, anomalies)
}

// CompareCampaignsWindow loads the user's anomalies for the window and
// compares their campaigns
func (s *AnalysisService) CompareCampaignsWindow(ctx context.Context, userID int64, w analysis.Window) ([]analysis.CampaignComparison, error) {
	anomalies, err := s.loadAnomalies(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	return s.CompareCampaigns(ctx, anomalies)
}

// AnalyzeTimePatternsWindow loads the user's anomalies for the window
// and classifies their timing
func (s *AnalysisService) AnalyzeTimePatternsWindow(ctx context.Context, userID int64, w analysis.Window) (*analysis.TimePatternResult, error) {
	anomalies, err := s.loadAnomalies(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeTimePatterns(ctx, anomalies)
}

// AnalyzeKPITimePatternsWindow loads the user's daily aggregates for
// the window and computes day-of-week baselines
func (s *AnalysisService) AnalyzeKPITimePatternsWindow(ctx context.Context, userID int64, w analysis.Window) (*analysis.KPITimePatternResult, error) {
	if err := validateWindow(w); err != nil {
		return nil, err
	}
	aggregates, err := s.kpiRepo.ListRange(ctx, userID, w.From, w.To)
	if err != nil {
		s.log.WithError(err).Error("failed to load daily aggregates")
		return nil, errors.DatabaseError("failed to load daily aggregates", err)
	}
	return s.AnalyzeKPITimePatterns(ctx, aggregates)
}

// AnalyzeByMetricWindow loads the user's anomalies for the window and
// buckets them by metric category
func (s *AnalysisService) AnalyzeByMetricWindow(ctx context.Context, userID int64, w analysis.Window) (map[string]analysis.MetricCategoryResult, error) {
	anomalies, err := s.loadAnomalies(ctx, userID, w)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeByMetric(ctx, anomalies)
}

func (s *AnalysisService) loadAnomalies(ctx context.Context, userID int64, w analysis.Window) ([]*anomaly.Anomaly, error) {
	if err := validateWindow(w); err != nil {
		return nil, err
	}
	anomalies, err := s.anomalyRepo.List(ctx, userID, anomaly.Filter{From: w.From, To: w.To})
	if err != nil {
		s.log.WithError(err).Error("failed to load anomalies")
		return nil, errors.DatabaseError("failed to load anomalies", err)
	}
	return anomalies, nil
}

func validateWindow(w analysis.Window) error {
	if w.From.IsZero() || w.To.IsZero() {
		return errors.BadRequest("analysis window requires both from and to")
	}
	if w.To.Before(w.From) {
		return errors.BadRequest("analysis window end precedes its start")
	}
	return nil
}

func (s *AnalysisService) observe(operation string, start time.Time, anomalies []*anomaly.Anomaly, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordAnalysisRun(operation, status, time.Since(start))
	if err != nil {
		return
	}
	counts := make(map[string]int)
	for _, a := range anomalies {
		counts[a.Severity]++
	}
	for severity, count := range counts {
		metrics.RecordAnomaliesAnalyzed(severity, count)
	}
}
