package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The caller still has
// to check the returned user's role; the backend hands out tokens to
// customers too.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req, err := c.newReq(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var out LoginResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the client's token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	req, err := c.newReq(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}
	var out User
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
