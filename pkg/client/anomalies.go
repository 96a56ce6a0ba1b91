package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// AnomalyListOptions filters and paginates anomaly listings
type AnomalyListOptions struct {
	CampaignID string
	Metric     string
	Type       string
	Severity   string
	From       time.Time
	To         time.Time
	Page       int
	PageSize   int
}

// CreateAnomaly ingests a detector-produced anomaly
func (c *Client) CreateAnomaly(ctx context.Context, a *Anomaly) (*Anomaly, error) {
	var created Anomaly
	if err := c.do(ctx, http.MethodPost, "/api/v1/anomalies", nil, a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListAnomalies returns a page of the user's anomalies
func (c *Client) ListAnomalies(ctx context.Context, opts AnomalyListOptions) (*AnomalyPage, error) {
	q := windowQuery(opts.From, opts.To)
	if opts.CampaignID != "" {
		q.Set("campaign_id", opts.CampaignID)
	}
	if opts.Metric != "" {
		q.Set("metric", opts.Metric)
	}
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.Severity != "" {
		q.Set("severity", opts.Severity)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}

	var page AnomalyPage
	if err := c.do(ctx, http.MethodGet, "/api/v1/anomalies", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAnomaly returns a single anomaly by ID
func (c *Client) GetAnomaly(ctx context.Context, id string) (*Anomaly, error) {
	var a Anomaly
	if err := c.do(ctx, http.MethodGet, "/api/v1/anomalies/"+url.PathEscape(id), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAnomalySummary returns anomaly counts by severity
func (c *Client) GetAnomalySummary(ctx context.Context) (*AnomalySummary, error) {
	var summary AnomalySummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/anomalies/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
