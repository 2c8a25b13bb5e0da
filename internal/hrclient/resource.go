// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hrclient

import (
	"context"
	"fmt"
	"net/http"
)

// Resource is a generic client for one remote entity collection. All the
// maintenance pages (roles, departments, projects) share the same route
// shape, so they share this one implementation.
type Resource[T any] struct {
	client *Client
	// prefix is the collection's path segment, e.g. "/role".
	prefix string
}

// NewResource creates a resource client rooted at prefix on c.
func NewResource[T any](c *Client, prefix string) *Resource[T] {
	return &Resource[T]{client: c, prefix: prefix}
}

// ListActive returns the active records. A 404 means the collection is
// empty, not an error.
func (r *Resource[T]) ListActive(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.prefix+"/active")
}

// ListInactive returns the inactive records, with the same 404 handling as
// ListActive.
func (r *Resource[T]) ListInactive(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.prefix+"/inactive")
}

// ListByStatus returns the records in the given status bucket.
func (r *Resource[T]) ListByStatus(ctx context.Context, status string) ([]T, error) {
	return r.list(ctx, r.prefix+"/getByStatus/"+status)
}

func (r *Resource[T]) list(ctx context.Context, path string) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// Get returns one record by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.prefix, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new record.
func (r *Resource[T]) Create(ctx context.Context, in any) error {
	return r.client.do(ctx, http.MethodPost, r.prefix+"/create", in, nil)
}

// Update replaces the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id int64, in any) error {
	return r.client.do(ctx, http.MethodPut, fmt.Sprintf("%s/update/%d", r.prefix, id), in, nil)
}

// Activate restores an inactive record.
func (r *Resource[T]) Activate(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodPut, fmt.Sprintf("%s/activate/%d", r.prefix, id), nil, nil)
}

// Deactivate soft-deletes a record.
func (r *Resource[T]) Deactivate(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodPatch, fmt.Sprintf("%s/deactivate/%d", r.prefix, id), nil, nil)
}
