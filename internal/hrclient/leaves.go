// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hrclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hrops/hrops-go/internal/model"
)

// LeaveClient talks to the leave service. Leave requests are listed per
// status bucket and transition through a manager review endpoint rather than
// the activate/deactivate pair the plain collections use.
type LeaveClient struct {
	client *Client
}

// NewLeaveClient creates the leave client on the leave service.
func NewLeaveClient(c *Client) *LeaveClient {
	return &LeaveClient{client: c}
}

// Pending returns leave requests awaiting review.
func (l *LeaveClient) Pending(ctx context.Context) ([]model.LeaveRequest, error) {
	return l.list(ctx, "/leaverequests/pending")
}

// Approved returns approved leave requests.
func (l *LeaveClient) Approved(ctx context.Context) ([]model.LeaveRequest, error) {
	return l.list(ctx, "/leaverequests/approved")
}

// Rejected returns rejected leave requests.
func (l *LeaveClient) Rejected(ctx context.Context) ([]model.LeaveRequest, error) {
	return l.list(ctx, "/leaverequests/rejected")
}

// ByStatus dispatches to the listing for the given status bucket.
func (l *LeaveClient) ByStatus(ctx context.Context, status string) ([]model.LeaveRequest, error) {
	switch status {
	case model.LeaveStatusPending:
		return l.Pending(ctx)
	case model.LeaveStatusApproved:
		return l.Approved(ctx)
	case model.LeaveStatusRejected:
		return l.Rejected(ctx)
	}
	return nil, fmt.Errorf("unknown leave status %q", status)
}

func (l *LeaveClient) list(ctx context.Context, path string) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	if err := l.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// Get fetches a single leave request by ID.
func (l *LeaveClient) Get(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	var out model.LeaveRequest
	if err := l.client.do(ctx, http.MethodGet, fmt.Sprintf("/leaverequests/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the mutable fields of a leave request.
func (l *LeaveClient) Update(ctx context.Context, id int64, in model.LeaveRequestInput) error {
	return l.client.do(ctx, http.MethodPut, fmt.Sprintf("/leaverequests/update/%d", id), in, nil)
}

// Submit files a new leave request.
func (l *LeaveClient) Submit(ctx context.Context, in model.LeaveRequestInput) error {
	return l.client.do(ctx, http.MethodPost, "/leaverequests/submit", in, nil)
}

// UpdateStatus records a manager's decision on a pending request.
func (l *LeaveClient) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !model.IsValidLeaveStatus(status) {
		return fmt.Errorf("unknown leave status %q", status)
	}
	path := fmt.Sprintf("/manager/leaveRequest/%d/updateStatus?status=%s", id, url.QueryEscape(status))
	return l.client.do(ctx, http.MethodPut, path, nil, nil)
}
