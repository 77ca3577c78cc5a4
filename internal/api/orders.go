package api

import (
	"context"
	"net/http"
	"net/url"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every status the backend knows, in fulfillment
// order. Used for the list page filter and status badges.
var OrderStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// NextStatuses returns the statuses an admin may move an order to.
// The fulfillment chain only moves forward; cancellation is allowed
// from any non-terminal state, and terminal states allow nothing.
func NextStatuses(from string) []string {
	switch from {
	case StatusPending:
		return []string{StatusProcessing, StatusCancelled}
	case StatusProcessing:
		return []string{StatusShipped, StatusCancelled}
	case StatusShipped:
		return []string{StatusDelivered, StatusCancelled}
	default:
		return nil
	}
}

func CanTransition(from, to string) bool {
	for _, s := range NextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/orders/admin/all", nil)
	if err != nil {
		return nil, err
	}
	var out []Order
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/orders/admin/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var out Order
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus issues the status PATCH. Transition legality is
// the caller's job; the backend re-checks anyway.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	req, err := c.newReq(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", body)
	if err != nil {
		return nil, err
	}
	var out Order
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
