// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Role mirrors the role service's record.
type Role struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy"`
	UpdatedBy   string `json:"updatedBy"`
	CreatedDate string `json:"createdDate"`
	Active      bool   `json:"active"`
}

// RoleInput is the mutable subset sent on create and update calls.
type RoleInput struct {
	Role        string `json:"role"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy,omitempty"`
	UpdatedBy   string `json:"updatedBy,omitempty"`
}

// Department mirrors the department service's record. The service keys the
// record by departmentId rather than id.
type Department struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	ContactPerson  string `json:"contactPerson"`
	CreatedBy      string `json:"createdBy"`
	CreatedDate    string `json:"createdDate"`
	Active         bool   `json:"active"`
}

// DepartmentInput is the mutable subset sent on create and update calls.
type DepartmentInput struct {
	DepartmentName string `json:"departmentName"`
	ContactPerson  string `json:"contactPerson"`
	CreatedBy      string `json:"createdBy,omitempty"`
	UpdatedBy      string `json:"updatedBy,omitempty"`
}
