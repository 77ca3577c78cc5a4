package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	var out []Category
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	for i := range out {
		NormalizeCategory(&out[i])
	}
	return out, nil
}

// GetCategory lists and selects, same as GetProduct.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	list, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
}

func (c *Client) CreateCategory(ctx context.Context, cat *Category) (*Category, error) {
	payload := *cat
	payload.ID = ""
	req, err := c.newReq(ctx, http.MethodPost, "/categories", payload)
	if err != nil {
		return nil, err
	}
	var out Category
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeCategory(&out)
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, cat *Category) (*Category, error) {
	payload := *cat
	payload.ID = ""
	req, err := c.newReq(ctx, http.MethodPatch, "/categories/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	var out Category
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeCategory(&out)
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	req, err := c.newReq(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
