// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Leave request status enum as the leave service spells it.
const (
	LeaveStatusPending  = "PENDING"
	LeaveStatusApproved = "APPROVED"
	LeaveStatusRejected = "REJECTED"
)

// LeaveStatuses lists the selectable leave states in display order.
var LeaveStatuses = []string{
	LeaveStatusPending,
	LeaveStatusApproved,
	LeaveStatusRejected,
}

// IsValidLeaveStatus reports whether s is a known leave status.
func IsValidLeaveStatus(s string) bool {
	for _, v := range LeaveStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// LeaveRequest mirrors the leave service's record.
type LeaveRequest struct {
	LeaveRequestID     int64  `json:"leaveRequestId"`
	UserID             int64  `json:"userId"`
	ReportingManagerID int64  `json:"reportingManagerId"`
	LeaveStartDate     string `json:"leaveStartDate"`
	LeaveEndDate       string `json:"leaveEndDate"`
	LeaveType          string `json:"leaveType"`
	LeaveStatus        string `json:"leaveStatus"`
	Description        string `json:"description"`
}

// LeaveRequestInput is the body sent on submit and update calls.
type LeaveRequestInput struct {
	UserID             int64  `json:"userId"`
	ReportingManagerID int64  `json:"reportingManagerId"`
	LeaveStartDate     string `json:"leaveStartDate"`
	LeaveEndDate       string `json:"leaveEndDate"`
	LeaveType          string `json:"leaveType"`
	Description        string `json:"description"`
}
