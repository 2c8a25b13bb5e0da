// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hrclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors for the two failure classes that never carry a response.
var (
	// ErrNoToken means the session holds no bearer token; the call was
	// short-circuited without touching the network.
	ErrNoToken = errors.New("no authentication token in session")

	// ErrNoResponse means the request was sent but no response arrived
	// (connection refused, timeout, DNS failure).
	ErrNoResponse = errors.New("no response from server")
)

// APIError is a 4xx/5xx response from a service, with the body's message
// field (or raw text body) preserved for display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// decodeAPIError turns a non-2xx response into an *APIError. Services answer
// either with a JSON object carrying a message field or with a plain-text
// body; both are surfaced verbatim.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	msg := strings.TrimSpace(string(body))

	if json.Valid(body) {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			msg = payload.Message
		}
	}

	return &APIError{Status: resp.StatusCode, Message: msg}
}
