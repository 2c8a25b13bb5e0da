// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// TimesheetEntry is one logged block of work on the timesheet page.
type TimesheetEntry struct {
	WorkDate    string  `json:"workDate"`
	ProjectName string  `json:"projectName"`
	Hours       float64 `json:"hours"`
	Notes       string  `json:"notes"`
}
