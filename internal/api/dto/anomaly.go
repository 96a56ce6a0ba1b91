// Package dto defines the request and response payloads of the REST
// API.
package dto

import (
	"time"

	"github.com/adaudit/adaudit/internal/domain/anomaly"
)

// CreateAnomalyRequest is the ingest payload sent by the detector
type CreateAnomalyRequest struct {
	ID              string         `json:"id" validate:"omitempty,max=64"`
	CampaignID      string         `json:"campaign_id" validate:"required,max=64"`
	CampaignName    string         `json:"campaign_name" validate:"max=256"`
	Type            string         `json:"type" validate:"required,oneof=spike drop"`
	Severity        string         `json:"severity" validate:"required,oneof=critical warning info"`
	Metric          string         `json:"metric" validate:"required,max=64"`
	CurrentValue    float64        `json:"current_value"`
	PreviousValue   float64        `json:"previous_value"`
	ChangePercent   float64        `json:"change_percent"`
	Message         string         `json:"message" validate:"max=1024"`
	DetectedAt      time.Time      `json:"detected_at" validate:"required"`
	Detail          *AnomalyDetail `json:"detail,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty" validate:"max=16,dive,max=512"`
}

// AnomalyDetail carries the detector's supporting statistics
type AnomalyDetail struct {
	Method        string    `json:"method" validate:"max=64"`
	BaselineMean  float64   `json:"baseline_mean"`
	BaselineStdev float64   `json:"baseline_stdev"`
	Trend         []float64 `json:"trend,omitempty" validate:"max=90"`
}

// ToModel converts the request to a domain anomaly
func (r *CreateAnomalyRequest) ToModel(userID int64) *anomaly.Anomaly {
	a := &anomaly.Anomaly{
		ID:              r.ID,
		UserID:          userID,
		CampaignID:      r.CampaignID,
		CampaignName:    r.CampaignName,
		Type:            r.Type,
		Severity:        r.Severity,
		Metric:          r.Metric,
		CurrentValue:    r.CurrentValue,
		PreviousValue:   r.PreviousValue,
		ChangePercent:   r.ChangePercent,
		Message:         r.Message,
		DetectedAt:      r.DetectedAt,
		Recommendations: r.Recommendations,
	}
	if r.Detail != nil {
		a.Detail = &anomaly.Detail{
			Method:        r.Detail.Method,
			BaselineMean:  r.Detail.BaselineMean,
			BaselineStdev: r.Detail.BaselineStdev,
			Trend:         r.Detail.Trend,
		}
	}
	return a
}

// AnomalySummaryResponse reports anomaly counts by severity
type AnomalySummaryResponse struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}
