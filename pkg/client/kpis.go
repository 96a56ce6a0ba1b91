package client

import (
	"context"
	"net/http"
	"time"
)

// RecordKPI upserts one day of account-level totals
func (c *Client) RecordKPI(ctx context.Context, req *RecordKPIRequest) (*DailyKPI, error) {
	var kpi DailyKPI
	if err := c.do(ctx, http.MethodPost, "/api/v1/kpis", nil, req, &kpi); err != nil {
		return nil, err
	}
	return &kpi, nil
}

// ListKPIs returns the user's daily aggregates in a date range
func (c *Client) ListKPIs(ctx context.Context, from, to time.Time) ([]DailyKPI, error) {
	var kpis []DailyKPI
	if err := c.do(ctx, http.MethodGet, "/api/v1/kpis", windowQuery(from, to), nil, &kpis); err != nil {
		return nil, err
	}
	return kpis, nil
}
