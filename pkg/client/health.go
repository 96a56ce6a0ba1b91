package client

import (
	"context"
	"net/http"
)

// Health reports the server's liveness status and version
func (c *Client) Health(ctx context.Context) (map[string]string, error) {
	var status map[string]string
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, &status); err != nil {
		return nil, err
	}
	return status, nil
}
