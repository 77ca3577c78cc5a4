package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}
	var out []Product
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	for i := range out {
		NormalizeProduct(&out[i])
	}
	return out, nil
}

// GetProduct finds one product by id. The backend exposes no single
// product endpoint for admins, so this lists and selects; product
// counts are small enough that it does not matter.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	list, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

func (c *Client) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	payload := *p
	payload.ID = ""
	req, err := c.newReq(ctx, http.MethodPost, "/products", payload)
	if err != nil {
		return nil, err
	}
	var out Product
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeProduct(&out)
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p *Product) (*Product, error) {
	payload := *p
	payload.ID = ""
	req, err := c.newReq(ctx, http.MethodPatch, "/products/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	var out Product
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	NormalizeProduct(&out)
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	req, err := c.newReq(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// UploadProductImages pushes image files to the backend and returns
// the stored URLs. The response shape has drifted across backend
// versions (bare array, {"urls": ...} or {"paths": ...}), so all three
// are accepted.
func (c *Client) UploadProductImages(ctx context.Context, uploads []Upload) ([]string, error) {
	var raw json.RawMessage
	if err := c.uploadMultipart(ctx, "/products/images", uploads, &raw); err != nil {
		return nil, err
	}

	var bare []string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}
	var obj struct {
		URLs  []string `json:"urls"`
		Paths []string `json:"paths"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("api: decode upload response: %w", err)
	}
	if obj.URLs != nil {
		return obj.URLs, nil
	}
	return obj.Paths, nil
}
