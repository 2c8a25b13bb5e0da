// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/hrops/hrops-go/internal/model"
)

// Departments lists active or inactive departments.
func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	show := r.URL.Query().Get("show")
	result, ok := fetchList(h, w, r, func() ([]model.Department, error) {
		if show == "inactive" {
			return h.clients.Departments.ListInactive(r.Context())
		}
		return h.clients.Departments.ListActive(r.Context())
	})
	if !ok {
		return
	}

	data := map[string]any{
		"Departments":  result.Rows,
		"Error":        result.ErrorMsg,
		"ShowInactive": show == "inactive",
		"EmptyMessage": "There are currently no active departments",
	}
	if show == "inactive" {
		data["EmptyMessage"] = "There are currently no inactive departments"
	}
	if err := h.renderer.Render(w, r, "pages/departments", h.pageData(r, "Departments", data)); err != nil {
		h.logAndInternalError(w, err, "rendering departments page")
	}
}

// DepartmentNew displays the department creation form.
func (h *Handler) DepartmentNew(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Form": model.DepartmentInput{}}
	if err := h.renderer.Render(w, r, "pages/department_form", h.pageData(r, "New Department", data)); err != nil {
		h.logAndInternalError(w, err, "rendering department form")
	}
}

// DepartmentCreate creates a department.
func (h *Handler) DepartmentCreate(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, RouteDepartmentNew) {
		return
	}
	in := model.DepartmentInput{
		DepartmentName: strings.TrimSpace(r.FormValue("departmentName")),
		ContactPerson:  strings.TrimSpace(r.FormValue("contactPerson")),
		CreatedBy:      h.session.Username(r.Context()),
	}
	if in.DepartmentName == "" {
		h.flashError(w, r, RouteDepartmentNew, "Department name is required")
		return
	}
	if err := h.clients.Departments.Create(r.Context(), in); err != nil {
		h.failRemote(w, r, RouteDepartmentNew, err)
		return
	}
	h.flashSuccess(w, r, RouteDepartments, "Department created successfully")
}

// Department displays one department; ?edit=1 enables editing.
func (h *Handler) Department(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteDepartments, "Invalid department ID")
		return
	}
	dept, err := h.clients.Departments.Get(r.Context(), id)
	if err != nil {
		h.failRemote(w, r, RouteDepartments, err)
		return
	}
	data := map[string]any{
		"Department": dept,
		"Editing":    r.URL.Query().Get("edit") == "1",
	}
	if err := h.renderer.Render(w, r, "pages/department_detail", h.pageData(r, dept.DepartmentName, data)); err != nil {
		h.logAndInternalError(w, err, "rendering department detail")
	}
}

// DepartmentUpdate saves the mutable fields of a department.
func (h *Handler) DepartmentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteDepartments, "Invalid department ID")
		return
	}
	detailURL := idPath(RouteDepartments, id)
	if !h.parseFormOrRedirect(w, r, detailURL+"?edit=1") {
		return
	}
	in := model.DepartmentInput{
		DepartmentName: strings.TrimSpace(r.FormValue("departmentName")),
		ContactPerson:  strings.TrimSpace(r.FormValue("contactPerson")),
		UpdatedBy:      h.session.Username(r.Context()),
	}
	if in.DepartmentName == "" {
		h.flashError(w, r, detailURL+"?edit=1", "Department name is required")
		return
	}
	if err := h.clients.Departments.Update(r.Context(), id, in); err != nil {
		h.failRemote(w, r, detailURL+"?edit=1", err)
		return
	}
	h.flashSuccess(w, r, detailURL, "Department updated successfully")
}

// DepartmentActivate moves a department back to the active collection.
func (h *Handler) DepartmentActivate(w http.ResponseWriter, r *http.Request) {
	h.setDepartmentActive(w, r, true)
}

// DepartmentDeactivate retires a department.
func (h *Handler) DepartmentDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setDepartmentActive(w, r, false)
}

func (h *Handler) setDepartmentActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteDepartments, "Invalid department ID")
		return
	}
	back := listURL(RouteDepartments, r.FormValue("show"))
	call, verb := h.clients.Departments.Deactivate, "deactivated"
	if active {
		call, verb = h.clients.Departments.Activate, "activated"
	}
	if err := call(r.Context(), id); err != nil {
		h.failRemote(w, r, back, err)
		return
	}
	h.flashSuccess(w, r, back, "Department "+verb+" successfully")
}
