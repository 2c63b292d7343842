// Package api is the REST adapter for the learning-platform backend. It owns
// transport concerns only: bearer-token injection, envelope normalization,
// and mapping response statuses onto the client error taxonomy. All state
// lives in the entity cache, never here.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Client calls the backend REST API.
type Client struct {
	http        *resty.Client
	onAuthError func()
}

// Option configures a Client.
type Option func(*Client)

// WithAuthErrorHook installs the callback invoked on 401/403 responses. The
// hook typically triggers the external login redirect.
func WithAuthErrorHook(fn func()) Option {
	return func(c *Client) { c.onAuthError = fn }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New creates a Client for the given base URL and bearer token.
func New(baseURL, token string, opts ...Option) *Client {
	hc := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		SetTimeout(defaultTimeout)

	c := &Client{http: hc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// execute runs one request and maps the outcome onto the error taxonomy.
// PRE: path is relative to the base URL
// POST: Returns the raw body on 2xx; AuthError on 401/403 (after the hook),
//       ConflictError on 409, NetworkError otherwise
func (c *Client) execute(ctx context.Context, method, path string, body any, query map[string]string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if c.onAuthError != nil {
			c.onAuthError()
		}
		return nil, &AuthError{Status: status}
	case status == http.StatusConflict:
		return nil, &ConflictError{Message: serverMessage(resp.Body())}
	case status < 200 || status > 299:
		return nil, &NetworkError{Op: method + " " + path, Status: status}
	}

	return resp.Body(), nil
}

// serverMessage extracts a human-readable message from an error payload.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
