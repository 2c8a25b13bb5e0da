// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/model"
)

// Employees lists active or inactive employees.
func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	show := r.URL.Query().Get("show")
	result, ok := fetchList(h, w, r, func() ([]model.Employee, error) {
		return h.clients.Users.ListByActive(r.Context(), show != "inactive")
	})
	if !ok {
		return
	}

	data := map[string]any{
		"Employees":    result.Rows,
		"Error":        result.ErrorMsg,
		"ShowInactive": show == "inactive",
		"EmptyMessage": "There are currently no active employees",
	}
	if show == "inactive" {
		data["EmptyMessage"] = "There are currently no inactive employees"
	}
	if err := h.renderer.Render(w, r, "pages/employees", h.pageData(r, "Employees", data)); err != nil {
		h.logAndInternalError(w, err, "rendering employees page")
	}
}

// EmployeeNew displays the registration form. The role options come from
// the active role list; a failed role fetch leaves the picker empty rather
// than blocking registration.
func (h *Handler) EmployeeNew(w http.ResponseWriter, r *http.Request) {
	roles, err := h.clients.Roles.ListActive(r.Context())
	if err != nil {
		if errors.Is(err, hrclient.ErrNoToken) {
			http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
			return
		}
		h.logger.Warn("loading roles for registration form", "error", err)
	}
	data := map[string]any{
		"Form":  model.EmployeeInput{},
		"Roles": roles,
	}
	if err := h.renderer.Render(w, r, "pages/employee_form", h.pageData(r, "Register Employee", data)); err != nil {
		h.logAndInternalError(w, err, "rendering employee form")
	}
}

// EmployeeCreate registers a new employee.
func (h *Handler) EmployeeCreate(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, RouteEmployeeNew) {
		return
	}
	in := employeeInputFromForm(r)
	in.CreatedBy = h.session.Username(r.Context())
	if in.UserName == "" || in.Email == "" {
		h.flashError(w, r, RouteEmployeeNew, "Username and email are required")
		return
	}
	if in.Password == "" {
		h.flashError(w, r, RouteEmployeeNew, "Password is required")
		return
	}
	if err := h.clients.Users.Register(r.Context(), in); err != nil {
		h.failRemote(w, r, RouteEmployeeNew, err)
		return
	}
	h.flashSuccess(w, r, RouteEmployees, "Employee registered successfully")
}

// Employee displays one employee; ?edit=1 enables editing. The user service
// has no single-record endpoint, so the record is picked out of the list
// the operator navigated from.
func (h *Handler) Employee(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteEmployees, "Invalid employee ID")
		return
	}
	show := r.URL.Query().Get("show")
	result, ok := fetchList(h, w, r, func() ([]model.Employee, error) {
		return h.clients.Users.ListByActive(r.Context(), show != "inactive")
	})
	if !ok {
		return
	}
	var employee *model.Employee
	for i := range result.Rows {
		if result.Rows[i].ID == id {
			employee = &result.Rows[i]
			break
		}
	}
	if employee == nil {
		h.flashError(w, r, listURL(RouteEmployees, show), "Employee not found")
		return
	}
	data := map[string]any{
		"Employee": employee,
		"Editing":  r.URL.Query().Get("edit") == "1",
		"Show":     show,
	}
	if err := h.renderer.Render(w, r, "pages/employee_detail", h.pageData(r, employee.FullName(), data)); err != nil {
		h.logAndInternalError(w, err, "rendering employee detail")
	}
}

// EmployeeUpdate saves the mutable fields of an employee.
func (h *Handler) EmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteEmployees, "Invalid employee ID")
		return
	}
	detailURL := idPath(RouteEmployees, id)
	if !h.parseFormOrRedirect(w, r, detailURL+"?edit=1") {
		return
	}
	in := employeeInputFromForm(r)
	if in.UserName == "" || in.Email == "" {
		h.flashError(w, r, detailURL+"?edit=1", "Username and email are required")
		return
	}
	if err := h.clients.Users.Update(r.Context(), id, in); err != nil {
		h.failRemote(w, r, detailURL+"?edit=1", err)
		return
	}
	h.flashSuccess(w, r, detailURL, "Employee updated successfully")
}

// EmployeeActivate restores a deactivated employee.
func (h *Handler) EmployeeActivate(w http.ResponseWriter, r *http.Request) {
	h.setEmployeeActive(w, r, true)
}

// EmployeeDeactivate deactivates an employee.
func (h *Handler) EmployeeDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setEmployeeActive(w, r, false)
}

func (h *Handler) setEmployeeActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteEmployees, "Invalid employee ID")
		return
	}
	back := listURL(RouteEmployees, r.FormValue("show"))
	call, verb := h.clients.Users.Deactivate, "deactivated"
	if active {
		call, verb = h.clients.Users.Activate, "activated"
	}
	if err := call(r.Context(), id); err != nil {
		h.failRemote(w, r, back, err)
		return
	}
	h.flashSuccess(w, r, back, "Employee "+verb+" successfully")
}

// employeeInputFromForm collects the employee fields shared by register and
// update. The parsed form must already be available.
func employeeInputFromForm(r *http.Request) model.EmployeeInput {
	roles := r.Form["roles"]
	for i, role := range roles {
		roles[i] = strings.TrimSpace(role)
	}
	return model.EmployeeInput{
		Firstname:     strings.TrimSpace(r.FormValue("firstname")),
		Lastname:      strings.TrimSpace(r.FormValue("lastname")),
		UserName:      strings.TrimSpace(r.FormValue("userName")),
		Password:      r.FormValue("password"),
		Email:         strings.TrimSpace(r.FormValue("email")),
		Branch:        strings.TrimSpace(r.FormValue("branch")),
		DateOfJoining: strings.TrimSpace(r.FormValue("dateOfJoining")),
		ContactNumber: strings.TrimSpace(r.FormValue("contactNumber")),
		Roles:         roles,
	}
}
