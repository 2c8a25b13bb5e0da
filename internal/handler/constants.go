// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route path constants.
const (
	RouteLogin  = "/login"
	RouteLogout = "/logout"
	RouteHome   = "/"

	RouteEmployees    = "/employees"
	RouteEmployeeNew  = "/employees/new"
	RouteEmployeeByID = "/employees/{id}"

	RouteRoles    = "/roles"
	RouteRoleNew  = "/roles/new"
	RouteRoleByID = "/roles/{id}"

	RouteDepartments    = "/departments"
	RouteDepartmentNew  = "/departments/new"
	RouteDepartmentByID = "/departments/{id}"

	RouteProjects    = "/projects"
	RouteProjectNew  = "/projects/new"
	RouteProjectByID = "/projects/{id}"

	RouteLeaves          = "/leaves"
	RouteLeaveApply      = "/leaves/apply"
	RouteLeavesEmployee  = "/leaves/employee"
	RouteLeaveByID       = "/leaves/{id}"
	RouteLeaveRecordByID = "/leaves/records/{id}"

	RouteDocuments    = "/documents"
	RouteDocumentByID = "/documents/{id}"

	RouteTimesheets       = "/timesheets"
	RouteTimesheetsExport = "/timesheets/export"

	RouteAttendance = "/attendance"
	RoutePayroll    = "/payroll"
	RouteSettings   = "/settings"

	// Per-session UI state endpoints (sidebar, disclosure sections,
	// notification panel, toast dismissal).
	RouteSidebarToggle       = "/ui/sidebar/toggle"
	RouteSectionToggle       = "/ui/section/{id}/toggle"
	RouteNotificationsRead   = "/notifications/read"
	RouteNotificationsClear  = "/notifications/clear"
	RouteNotificationsStream = "/notifications/stream"
	RouteToastDismiss        = "/toasts/{id}/dismiss"
)

// Common redirect targets.
const (
	redirectHome        = "/"
	redirectLogin       = "/login"
	redirectEmployees   = "/employees"
	redirectRoles       = "/roles"
	redirectDepartments = "/departments"
	redirectProjects    = "/projects"
	redirectLeaves      = "/leaves"
	redirectDocuments   = "/documents"
	redirectTimesheets  = "/timesheets"
)
