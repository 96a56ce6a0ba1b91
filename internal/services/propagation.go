package services

import (
	"sort"
	"time"

	"github.com/adaudit/adaudit/internal/domain/analysis"
	"github.com/adaudit/adaudit/internal/domain/anomaly"
)

// propagationWindow bounds how far after the root anomaly a follower
// can occur and still be considered part of the same cascade.
const propagationWindow = 6 * time.Hour

// DetectPropagationPath looks for a cluster of anomalies within one
// campaign that occurred close together in time and orders them into a
// plausible root-cause chain. The earliest anomaly is the root; a
// detection-time tie goes to the higher severity. Only the first
// qualifying campaign, in input order, is reported; campaigns with a
// lone anomaly never qualify.
func DetectPropagationPath(anomalies []*anomaly.Anomaly) *analysis.PropagationPath {
	byCampaign := make(map[string][]*anomaly.Anomaly)
	order := make([]string, 0)
	for _, a := range anomalies {
		if _, ok := byCampaign[a.CampaignID]; !ok {
			order = append(order, a.CampaignID)
		}
		byCampaign[a.CampaignID] = append(byCampaign[a.CampaignID], a)
	}

	for _, campaignID := range order {
		group := byCampaign[campaignID]
		if len(group) < 2 {
			continue
		}

		sorted := make([]*anomaly.Anomaly, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			if !sorted[i].DetectedAt.Equal(sorted[j].DetectedAt) {
				return sorted[i].DetectedAt.Before(sorted[j].DetectedAt)
			}
			return severityWeight(sorted[i].Severity) > severityWeight(sorted[j].Severity)
		})

		root := sorted[0]
		var propagated []*anomaly.Anomaly
		for _, a := range sorted[1:] {
			if a.DetectedAt.Sub(root.DetectedAt) <= propagationWindow {
				propagated = append(propagated, a)
			}
		}
		if len(propagated) == 0 {
			continue
		}

		chain := make([]string, 0, len(propagated)+1)
		chain = append(chain, root.Metric)
		for _, a := range propagated {
			chain = append(chain, a.Metric)
		}

		return &analysis.PropagationPath{
			RootAnomaly:         root,
			PropagationChain:    chain,
			PropagatedAnomalies: propagated,
		}
	}

	return nil
}
