// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hrclient is the console's single REST client for the remote HR
// services. Every page goes through one generic resource client instead of
// hand-duplicating fetch and error handling per entity.
package hrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenFunc supplies the bearer token for a request. Returning "" means the
// session is unauthenticated and the call is short-circuited before any
// request is sent.
type TokenFunc func(ctx context.Context) string

// Client issues authenticated JSON requests against one service base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   TokenFunc
	Timeout time.Duration
	// HTTPClient overrides the default client; used by tests.
	HTTPClient *http.Client
}

// New creates a Client for the given service.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	tok := opts.Token
	if tok == nil {
		tok = func(context.Context) string { return "" }
	}
	return &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: hc,
		token:      tok,
	}
}

// BaseURL returns the service base URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues one authenticated request. A non-nil in is JSON-encoded; a
// non-nil out receives the decoded JSON response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	token := c.token(ctx)
	if token == "" {
		return ErrNoToken
	}
	return c.doWithAuth(ctx, method, path, "Bearer "+token, in, out)
}

// doAnonymous issues a request without credentials (login only).
func (c *Client) doAnonymous(ctx context.Context, method, path string, in, out any) error {
	return c.doWithAuth(ctx, method, path, "", in, out)
}

func (c *Client) doWithAuth(ctx context.Context, method, path, authorization string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response received at all.
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// Ping reports whether the service answers at all. Any HTTP response counts
// as reachable; only a transport failure counts as down.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	return resp.Body.Close()
}
