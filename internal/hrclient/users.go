// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hrclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hrops/hrops-go/internal/model"
)

// UserClient talks to the core service's user endpoints. Users follow a
// different route shape than the plain collections (a single /all listing
// filtered by an isActive flag), so they do not fit Resource.
type UserClient struct {
	client *Client
}

// NewUserClient creates the user client on the core service.
func NewUserClient(c *Client) *UserClient {
	return &UserClient{client: c}
}

// ListByActive returns the employees filtered by the active flag. A 404
// means no employees match, not an error.
func (u *UserClient) ListByActive(ctx context.Context, active bool) ([]model.Employee, error) {
	var out []model.Employee
	path := "/user/all?isActive=" + strconv.FormatBool(active)
	if err := u.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// Register creates a new employee account.
func (u *UserClient) Register(ctx context.Context, in model.EmployeeInput) error {
	return u.client.do(ctx, http.MethodPost, "/user/register", in, nil)
}

// Update replaces the employee record with the given id.
func (u *UserClient) Update(ctx context.Context, id int64, in model.EmployeeInput) error {
	return u.client.do(ctx, http.MethodPut, "/user/update/"+strconv.FormatInt(id, 10), in, nil)
}

// Activate restores a deactivated employee.
func (u *UserClient) Activate(ctx context.Context, id int64) error {
	return u.client.do(ctx, http.MethodPut, "/user/activate/"+strconv.FormatInt(id, 10), nil, nil)
}

// Deactivate soft-deletes an employee.
func (u *UserClient) Deactivate(ctx context.Context, id int64) error {
	return u.client.do(ctx, http.MethodPatch, "/user/deactivate/"+strconv.FormatInt(id, 10), nil, nil)
}
