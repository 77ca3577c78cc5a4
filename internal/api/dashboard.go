package api

import (
	"context"
	"net/http"
)

// Dashboard returns the admin overview numbers the backend aggregates.
func (c *Client) Dashboard(ctx context.Context) (*DashboardStats, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/admin/dashboard", nil)
	if err != nil {
		return nil, err
	}
	var out DashboardStats
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
