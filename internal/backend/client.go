// Package backend is the typed client of the HR missions REST API. Every
// network call of the dashboard goes through Client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// MaxErrorBody caps how much of an error response is read.
const MaxErrorBody = 64 << 10

// Client talks to the backend with the caller's bearer token.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger used for request lines.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a client for baseURL (scheme and host, optional path prefix).
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  log.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// call describes one request for the shared helper.
type call struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
	accept      string
}

// jsonCall builds a call with in encoded as the JSON body.
func jsonCall(method, path, token string, in any) (call, error) {
	c := call{method: method, path: path, token: token, accept: "application/json"}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return c, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		c.body = bytes.NewReader(b)
		c.contentType = "application/json"
	}
	return c, nil
}

// send is the single request helper: it attaches the token, performs the
// request and turns transport failures and non-2xx answers into *Error.
// On success the caller owns resp.Body.
func (c *Client) send(ctx context.Context, in call) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, in.method, c.baseURL+in.path, in.body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", in.method, in.path, err)
	}
	if in.accept != "" {
		req.Header.Set("Accept", in.accept)
	}
	if in.contentType != "" {
		req.Header.Set("Content-Type", in.contentType)
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("backend method=%s path=%s err=%q dur=%s", in.method, in.path, err, time.Since(start))
		return nil, transportError(in.method, in.path, err)
	}
	c.logger.Printf("backend method=%s path=%s status=%d dur=%s", in.method, in.path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
		return nil, statusError(in.method, in.path, resp.StatusCode, resp.Header.Get("Content-Type"), body)
	}
	return resp, nil
}

// do runs a call and decodes a JSON answer into out (when out is non-nil).
func (c *Client) do(ctx context.Context, in call, out any) error {
	resp, err := c.send(ctx, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", in.method, in.path, err)
	}
	return nil
}

// doJSON encodes in, runs the call and decodes into out.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	cl, err := jsonCall(method, path, token, in)
	if err != nil {
		return err
	}
	return c.do(ctx, cl, out)
}
