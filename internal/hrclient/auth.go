// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hrclient

import (
	"context"
	"net/http"
)

// AuthClient talks to the core service's auth endpoints.
type AuthClient struct {
	client *Client
}

// NewAuthClient creates the auth client on the core service.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{client: c}
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. It is the only call that
// goes out without an Authorization header.
func (a *AuthClient) Login(ctx context.Context, userName, password string) (string, error) {
	var out loginResponse
	err := a.client.doAnonymous(ctx, http.MethodPost, "/auth/login", loginRequest{
		UserName: userName,
		Password: password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// Logout invalidates the current token on the server. The local session is
// cleared regardless of the outcome, so errors here are advisory.
func (a *AuthClient) Logout(ctx context.Context) error {
	return a.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
