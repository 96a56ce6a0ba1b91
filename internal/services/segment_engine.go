package services

import (
	"fmt"
	"sort"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
	"github.com/adaudit/adaudit/internal/pkg/errors"
)

// SeverityWeights is the ordinal severity-to-weight mapping used by
// every scorer in the engine: segment ranking, campaign health and
// category summaries all aggregate the same numbers.
var SeverityWeights = map[string]int{
	anomaly.SeverityCritical: 3,
	anomaly.SeverityWarning:  2,
	anomaly.SeverityInfo:     1,
}

// severityWeight returns the numeric weight for a validated severity.
func severityWeight(severity string) int {
	return SeverityWeights[severity]
}

// validateAnomalies fails fast on structurally invalid input. The
// engine never coerces or silently drops malformed records.
func validateAnomalies(anomalies []*anomaly.Anomaly) error {
	for i, a := range anomalies {
		if a == nil {
			return errors.ValidationError(fmt.Sprintf("anomaly at index %d is nil", i), nil)
		}
		if a.ID == "" {
			return errors.ValidationError(fmt.Sprintf("anomaly at index %d has no id", i), nil)
		}
		if a.CampaignID == "" {
			return errors.ValidationError(fmt.Sprintf("anomaly %s has no campaign_id", a.ID), nil)
		}
		if a.Metric == "" {
			return errors.ValidationError(fmt.Sprintf("anomaly %s has no metric", a.ID), nil)
		}
		if !anomaly.ValidType(a.Type) {
			return errors.ValidationError(fmt.Sprintf("anomaly %s has unknown type %q", a.ID, a.Type), nil)
		}
		if !anomaly.ValidSeverity(a.Severity) {
			return errors.ValidationError(fmt.Sprintf("anomaly %s has unknown severity %q", a.ID, a.Severity), nil)
		}
		if a.DetectedAt.IsZero() {
			return errors.ValidationError(fmt.Sprintf("anomaly %s has no detected_at timestamp", a.ID), nil)
		}
	}
	return nil
}

// BuildSegments groups anomalies into one segment per campaign and
// ranks segments by severity-weighted score, descending. Ties keep the
// campaigns' first-seen input order. Every anomaly lands in exactly
// one segment; empty input yields an empty slice.
func BuildSegments(anomalies []*anomaly.Anomaly) []analysis.Segment {
	byCampaign := make(map[string]int)
	segments := make([]analysis.Segment, 0)

	for _, a := range anomalies {
		idx, ok := byCampaign[a.CampaignID]
		if !ok {
			idx = len(segments)
			byCampaign[a.CampaignID] = idx
			segments = append(segments, analysis.Segment{
				CampaignID:   a.CampaignID,
				CampaignName: a.CampaignName,
			})
		}
		segments[idx].Anomalies = append(segments[idx].Anomalies, a)
		segments[idx].SeverityScore += severityWeight(a.Severity)
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].SeverityScore > segments[j].SeverityScore
	})

	return segments
}

// AnalyzeSegments is the orchestrating entry point: it builds ranked
// campaign segments, detects cross-metric correlations and the first
// propagation cluster, and synthesizes insights from the combined
// results.
func AnalyzeSegments(anomalies []*anomaly.Anomaly) (*analysis.SegmentAnalysisResult, error) {
	if err := validateAnomalies(anomalies); err != nil {
		return nil, err
	}

	segments := BuildSegments(anomalies)
	correlations := DetectCorrelations(anomalies)
	propagation := DetectPropagationPath(anomalies)
	insights := GenerateInsights(segments, anomalies)

	return &analysis.SegmentAnalysisResult{
		SegmentType:     "campaign",
		Segments:        segments,
		Insights:        insights,
		Correlations:    correlations,
		PropagationPath: propagation,
	}, nil
}
