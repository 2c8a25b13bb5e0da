// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain records exchanged with the remote HR
// services. Field tags follow the JSON shapes the services emit; the console
// never owns these records, it only holds page-scoped copies.
package model

import "strings"

// Employee mirrors the user service's employee record.
type Employee struct {
	ID            int64    `json:"id"`
	Firstname     string   `json:"firstname"`
	Lastname      string   `json:"lastname"`
	UserName      string   `json:"userName"`
	Email         string   `json:"email"`
	Branch        string   `json:"branch"`
	DateOfJoining string   `json:"dateOfJoining"`
	ContactNumber string   `json:"contactNumber"`
	Roles         []string `json:"roles"`
	CreatedBy     string   `json:"createdBy"`
	Active        bool     `json:"active"`
}

// FullName returns the display name, falling back to the username when the
// name fields are empty.
func (e Employee) FullName() string {
	name := strings.TrimSpace(e.Firstname + " " + e.Lastname)
	if name == "" {
		return e.UserName
	}
	return name
}

// RoleList renders the role slice as a comma-separated string for tables.
func (e Employee) RoleList() string {
	return strings.Join(e.Roles, ", ")
}

// EmployeeInput is the mutable subset sent on register and update calls.
type EmployeeInput struct {
	Firstname     string   `json:"firstname"`
	Lastname      string   `json:"lastname"`
	UserName      string   `json:"userName"`
	Password      string   `json:"password,omitempty"`
	Email         string   `json:"email"`
	Branch        string   `json:"branch"`
	DateOfJoining string   `json:"dateOfJoining"`
	ContactNumber string   `json:"contactNumber"`
	Roles         []string `json:"roles"`
	CreatedBy     string   `json:"createdBy"`
}
