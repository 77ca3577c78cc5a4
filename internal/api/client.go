package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// The storefront API responds either with a raw payload or with an
// envelope {"data": <payload>, "timestamp": ...}; do unwraps the
// envelope transparently. A 401 from any endpoint surfaces as
// ErrUnauthorized so the HTTP layer can drop the session. No retries:
// a failed call is the caller's problem (and toast).

const maxBodyBytes = 8 << 20

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	doer    Doer
	baseURL string
	token   string
}

func New(doer Doer, baseURL string) *Client {
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// WithToken returns a copy of the client that sends
// "Authorization: Bearer <token>" on every request.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) BaseURL() string { return c.baseURL }

// NewHTTPClient builds the http.Client the console talks to the
// storefront with. Single overall timeout, pooled connections.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,

		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		ForceAttemptHTTP2: true,
	}
	return &http.Client{Transport: tr, Timeout: timeout}
}

func (c *Client) newReq(ctx context.Context, method, path string, body any) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("api: base URL is empty")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.applyHeaders(req)
	return req, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// do sends the request and decodes the (possibly enveloped) response
// into out. Pass out == nil to discard the body.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", req.Method, req.URL.Path, err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, b)
	}
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := decodeBody(b, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// decodeBody unwraps the {data, timestamp} envelope when present and
// decodes the payload into out.
func decodeBody(b []byte, out any) error {
	var env struct {
		Data      json.RawMessage `json:"data"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(b, out)
}

// Upload is one part of a multipart request body.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	R           io.Reader
}

func (c *Client) uploadMultipart(ctx context.Context, path string, uploads []Upload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, up := range uploads {
		part, err := createPart(mw, up)
		if err != nil {
			return fmt.Errorf("api: multipart %s: %w", path, err)
		}
		if _, err := io.Copy(part, up.R); err != nil {
			return fmt.Errorf("api: multipart %s: %w", path, err)
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.applyHeaders(req)
	return c.do(req, out)
}

// createPart keeps the browser-supplied content type on the part when
// there is one; CreateFormFile would flatten it to octet-stream.
func createPart(mw *multipart.Writer, up Upload) (io.Writer, error) {
	if up.ContentType == "" {
		return mw.CreateFormFile(up.Field, up.Filename)
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, up.Field, up.Filename))
	h.Set("Content-Type", up.ContentType)
	return mw.CreatePart(h)
}
