// Package rest implements the docsystem gateway interfaces against the
// HeritageGuard REST API under /api. Transport and server failures are
// normalized into the domain error taxonomy here so callers never see
// raw status codes.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenProvider supplies the bearer token for outgoing requests.
// Implemented by auth.Session.
type TokenProvider interface {
	Token() (string, error)
}

// Client is the shared HTTP plumbing for all gateways.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	logger  *slog.Logger
}

// ClientConfig configures the shared REST client.
type ClientConfig struct {
	BaseURL string // e.g. "https://heritage.example.org/api"
	Tokens  TokenProvider
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewClient creates the shared client used by the gateway constructors.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  cfg.Tokens,
		logger:  cfg.Logger,
	}
}

// problemDetail is the RFC 7807 error body the API returns.
type problemDetail struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return wrapTransport("build request", err)
	}
	return c.do(req, out)
}

// sendJSON issues a request with a JSON body and optionally decodes the
// response into out (out may be nil for 204-style responses).
func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return wrapTransport("encode request", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return wrapTransport("build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// do executes the request, applies the bearer token and normalizes the
// outcome into domain errors.
func (c *Client) do(req *http.Request, out any) error {
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransport(fmt.Sprintf("%s %s", req.Method, req.URL.Path), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return wrapTransport("decode response", err)
	}
	return nil
}

func (c *Client) logCall(op string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(op, args...)
	}
}
