// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hrops/hrops-go/internal/model"
)

// leaveListURL builds the leave list URL for a status tab.
func leaveListURL(status string) string {
	if status == "" || status == model.LeaveStatusPending {
		return RouteLeaves
	}
	return RouteLeaves + "?status=" + status
}

// Leaves lists leave requests filtered by status, defaulting to PENDING.
func (h *Handler) Leaves(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !model.IsValidLeaveStatus(status) {
		status = model.LeaveStatusPending
	}
	result, ok := fetchList(h, w, r, func() ([]model.LeaveRequest, error) {
		return h.clients.Leaves.ByStatus(r.Context(), status)
	})
	if !ok {
		return
	}

	data := map[string]any{
		"Leaves":       result.Rows,
		"Error":        result.ErrorMsg,
		"Status":       status,
		"Statuses":     model.LeaveStatuses,
		"EmptyMessage": "There are currently no " + strings.ToLower(status) + " leave requests",
	}
	if err := h.renderer.Render(w, r, "pages/leaves", h.pageData(r, "Leave Requests", data)); err != nil {
		h.logAndInternalError(w, err, "rendering leaves page")
	}
}

// LeaveApplyForm displays the leave submission form.
func (h *Handler) LeaveApplyForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Form": model.LeaveRequestInput{}}
	if err := h.renderer.Render(w, r, "pages/leave_apply", h.pageData(r, "Apply for Leave", data)); err != nil {
		h.logAndInternalError(w, err, "rendering leave form")
	}
}

// LeaveApply submits a new leave request.
func (h *Handler) LeaveApply(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, RouteLeaveApply) {
		return
	}
	userID, err1 := strconv.ParseInt(r.FormValue("userId"), 10, 64)
	managerID, err2 := strconv.ParseInt(r.FormValue("reportingManagerId"), 10, 64)
	if err1 != nil || err2 != nil {
		h.flashError(w, r, RouteLeaveApply, "Employee and manager IDs must be numbers")
		return
	}
	in := model.LeaveRequestInput{
		UserID:             userID,
		ReportingManagerID: managerID,
		LeaveStartDate:     strings.TrimSpace(r.FormValue("leaveStartDate")),
		LeaveEndDate:       strings.TrimSpace(r.FormValue("leaveEndDate")),
		LeaveType:          strings.TrimSpace(r.FormValue("leaveType")),
		Description:        strings.TrimSpace(r.FormValue("description")),
	}
	if in.LeaveStartDate == "" || in.LeaveEndDate == "" {
		h.flashError(w, r, RouteLeaveApply, "Start and end dates are required")
		return
	}
	if err := h.clients.Leaves.Submit(r.Context(), in); err != nil {
		h.failRemote(w, r, RouteLeaveApply, err)
		return
	}
	h.flashSuccess(w, r, RouteLeaves, "Leave request submitted")
}

// EmployeeLeaves shows the per-employee leave view: the request buckets
// plus the core service's retired leave records, which the request workflow
// never lists.
func (h *Handler) EmployeeLeaves(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "INACTIVE" && !model.IsValidLeaveStatus(status) {
		status = model.LeaveStatusPending
	}
	result, ok := fetchList(h, w, r, func() ([]model.LeaveRequest, error) {
		if status == "INACTIVE" {
			return h.clients.LeaveRecords.ListInactive(r.Context())
		}
		return h.clients.Leaves.ByStatus(r.Context(), status)
	})
	if !ok {
		return
	}

	data := map[string]any{
		"Leaves":       result.Rows,
		"Error":        result.ErrorMsg,
		"Status":       status,
		"Statuses":     append(append([]string{}, model.LeaveStatuses...), "INACTIVE"),
		"EmptyMessage": "There are currently no " + strings.ToLower(status) + " leaves",
	}
	if err := h.renderer.Render(w, r, "pages/employee_leaves", h.pageData(r, "Employee Leaves", data)); err != nil {
		h.logAndInternalError(w, err, "rendering employee leaves page")
	}
}

// LeaveRecordActivate restores a retired leave record.
func (h *Handler) LeaveRecordActivate(w http.ResponseWriter, r *http.Request) {
	h.setLeaveRecordActive(w, r, true)
}

// LeaveRecordDeactivate retires a leave record.
func (h *Handler) LeaveRecordDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setLeaveRecordActive(w, r, false)
}

func (h *Handler) setLeaveRecordActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteLeavesEmployee, "Invalid leave ID")
		return
	}
	back := RouteLeavesEmployee
	if s := r.FormValue("status"); s != "" {
		back += "?status=" + s
	}
	call, verb := h.clients.LeaveRecords.Deactivate, "deactivated"
	if active {
		call, verb = h.clients.LeaveRecords.Activate, "activated"
	}
	if err := call(r.Context(), id); err != nil {
		h.failRemote(w, r, back, err)
		return
	}
	h.flashSuccess(w, r, back, "Leave "+verb+" successfully")
}

// Leave displays one leave request; ?edit=1 swaps the static fields for
// inputs.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteLeaves, "Invalid leave request ID")
		return
	}
	leave, err := h.clients.Leaves.Get(r.Context(), id)
	if err != nil {
		h.failRemote(w, r, RouteLeaves, err)
		return
	}
	data := map[string]any{
		"Leave":   leave,
		"Editing": r.URL.Query().Get("edit") == "1",
	}
	if err := h.renderer.Render(w, r, "pages/leave_detail", h.pageData(r, "Leave Details", data)); err != nil {
		h.logAndInternalError(w, err, "rendering leave detail")
	}
}

// LeaveUpdate saves the mutable fields of a leave request.
func (h *Handler) LeaveUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteLeaves, "Invalid leave request ID")
		return
	}
	detailURL := idPath(RouteLeaves, id)
	if !h.parseFormOrRedirect(w, r, detailURL+"?edit=1") {
		return
	}
	userID, err1 := strconv.ParseInt(r.FormValue("userId"), 10, 64)
	managerID, err2 := strconv.ParseInt(r.FormValue("reportingManagerId"), 10, 64)
	if err1 != nil || err2 != nil {
		h.flashError(w, r, detailURL+"?edit=1", "Employee and manager IDs must be numbers")
		return
	}
	in := model.LeaveRequestInput{
		UserID:             userID,
		ReportingManagerID: managerID,
		LeaveStartDate:     strings.TrimSpace(r.FormValue("leaveStartDate")),
		LeaveEndDate:       strings.TrimSpace(r.FormValue("leaveEndDate")),
		LeaveType:          strings.TrimSpace(r.FormValue("leaveType")),
		Description:        strings.TrimSpace(r.FormValue("description")),
	}
	if in.LeaveStartDate == "" || in.LeaveEndDate == "" {
		h.flashError(w, r, detailURL+"?edit=1", "Start and end dates are required")
		return
	}
	if err := h.clients.Leaves.Update(r.Context(), id, in); err != nil {
		h.failRemote(w, r, detailURL+"?edit=1", err)
		return
	}
	h.flashSuccess(w, r, detailURL, "Leave updated successfully")
}

// LeaveApprove approves a pending leave request.
func (h *Handler) LeaveApprove(w http.ResponseWriter, r *http.Request) {
	h.updateLeaveStatus(w, r, model.LeaveStatusApproved, "approved")
}

// LeaveReject rejects a pending leave request.
func (h *Handler) LeaveReject(w http.ResponseWriter, r *http.Request) {
	h.updateLeaveStatus(w, r, model.LeaveStatusRejected, "rejected")
}

func (h *Handler) updateLeaveStatus(w http.ResponseWriter, r *http.Request, status, verb string) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteLeaves, "Invalid leave request ID")
		return
	}
	back := leaveListURL(r.FormValue("status"))
	if err := h.clients.Leaves.UpdateStatus(r.Context(), id, status); err != nil {
		h.failRemote(w, r, back, err)
		return
	}
	h.flashSuccess(w, r, back, "Leave request "+verb)
}
