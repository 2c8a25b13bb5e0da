// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/hrops/hrops-go/internal/middleware"
)

// Routes registers the console routes: the login pair behind the
// rate-limited group, everything else behind the auth gate.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfAuthenticated(h.session))
		r.Get(RouteLogin, h.LoginForm)
		r.With(h.loginProtection.Middleware()).Post(RouteLogin, h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(h.session))

		r.Get(RouteHome, h.Home)
		r.Get(RouteLogout, h.Logout)
		r.Post(RouteLogout, h.Logout)

		r.Get(RouteEmployees, h.Employees)
		r.Get(RouteEmployeeNew, h.EmployeeNew)
		r.Post(RouteEmployeeNew, h.EmployeeCreate)
		r.Get(RouteEmployeeByID, h.Employee)
		r.Post(RouteEmployeeByID, h.EmployeeUpdate)
		r.Post(RouteEmployeeByID+"/activate", h.EmployeeActivate)
		r.Post(RouteEmployeeByID+"/deactivate", h.EmployeeDeactivate)

		r.Get(RouteRoles, h.Roles)
		r.Get(RouteRoleNew, h.RoleNew)
		r.Post(RouteRoleNew, h.RoleCreate)
		r.Get(RouteRoleByID, h.Role)
		r.Post(RouteRoleByID, h.RoleUpdate)
		r.Post(RouteRoleByID+"/activate", h.RoleActivate)
		r.Post(RouteRoleByID+"/deactivate", h.RoleDeactivate)

		r.Get(RouteDepartments, h.Departments)
		r.Get(RouteDepartmentNew, h.DepartmentNew)
		r.Post(RouteDepartmentNew, h.DepartmentCreate)
		r.Get(RouteDepartmentByID, h.Department)
		r.Post(RouteDepartmentByID, h.DepartmentUpdate)
		r.Post(RouteDepartmentByID+"/activate", h.DepartmentActivate)
		r.Post(RouteDepartmentByID+"/deactivate", h.DepartmentDeactivate)

		r.Get(RouteProjects, h.Projects)
		r.Get(RouteProjectNew, h.ProjectNew)
		r.Post(RouteProjectNew, h.ProjectCreate)
		r.Get(RouteProjectByID, h.Project)
		r.Post(RouteProjectByID, h.ProjectUpdate)
		r.Post(RouteProjectByID+"/activate", h.ProjectActivate)
		r.Post(RouteProjectByID+"/deactivate", h.ProjectDeactivate)

		r.Get(RouteLeaves, h.Leaves)
		r.Get(RouteLeaveApply, h.LeaveApplyForm)
		r.Post(RouteLeaveApply, h.LeaveApply)
		r.Get(RouteLeavesEmployee, h.EmployeeLeaves)
		r.Post(RouteLeaveRecordByID+"/activate", h.LeaveRecordActivate)
		r.Post(RouteLeaveRecordByID+"/deactivate", h.LeaveRecordDeactivate)
		r.Get(RouteLeaveByID, h.Leave)
		r.Post(RouteLeaveByID, h.LeaveUpdate)
		r.Post(RouteLeaveByID+"/approve", h.LeaveApprove)
		r.Post(RouteLeaveByID+"/reject", h.LeaveReject)

		r.Get(RouteDocuments, h.Documents)
		r.Post(RouteDocuments+"/upload", h.DocumentUpload)
		r.Post(RouteDocumentByID+"/delete", h.DocumentDelete)

		r.Get(RouteTimesheets, h.Timesheets)
		r.Post(RouteTimesheets, h.TimesheetAdd)
		r.Get(RouteTimesheetsExport, h.TimesheetExport)

		r.Get(RouteAttendance, h.Attendance)
		r.Get(RoutePayroll, h.Payroll)
		r.Get(RouteSettings, h.Settings)

		r.Post(RouteSidebarToggle, h.ToggleSidebar)
		r.Post(RouteSectionToggle, h.ToggleSection)
		r.Post(RouteNotificationsRead, h.MarkNotificationsRead)
		r.Post(RouteNotificationsClear, h.ClearNotifications)
		r.Get(RouteNotificationsStream, h.NotificationsStream)
		r.Post(RouteToastDismiss, h.DismissToast)
	})
}
