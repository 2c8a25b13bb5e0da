// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/hrops/hrops-go/internal/model"
)

// projectListURL builds the project list URL for a status tab.
func projectListURL(status string) string {
	if status == "" || status == model.ProjectStatusActive {
		return RouteProjects
	}
	return RouteProjects + "?status=" + status
}

// Projects lists projects filtered by status, defaulting to ACTIVE.
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !model.IsValidProjectStatus(status) {
		status = model.ProjectStatusActive
	}
	result, ok := fetchList(h, w, r, func() ([]model.Project, error) {
		return h.clients.Projects.ListByStatus(r.Context(), status)
	})
	if !ok {
		return
	}

	data := map[string]any{
		"Projects":     result.Rows,
		"Error":        result.ErrorMsg,
		"Status":       status,
		"Statuses":     model.ProjectStatuses,
		"EmptyMessage": "There are currently no " + strings.ToLower(status) + " projects",
	}
	if err := h.renderer.Render(w, r, "pages/projects", h.pageData(r, "Projects", data)); err != nil {
		h.logAndInternalError(w, err, "rendering projects page")
	}
}

// ProjectNew displays the project creation form.
func (h *Handler) ProjectNew(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Form": model.ProjectInput{}}
	if err := h.renderer.Render(w, r, "pages/project_form", h.pageData(r, "New Project", data)); err != nil {
		h.logAndInternalError(w, err, "rendering project form")
	}
}

// ProjectCreate creates a project.
func (h *Handler) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, RouteProjectNew) {
		return
	}
	in := projectInputFromForm(r)
	in.CreatedBy = h.session.Username(r.Context())
	if in.Name == "" || in.ProjectID == "" {
		h.flashError(w, r, RouteProjectNew, "Project ID and name are required")
		return
	}
	if err := h.clients.Projects.Create(r.Context(), in); err != nil {
		h.failRemote(w, r, RouteProjectNew, err)
		return
	}
	h.flashSuccess(w, r, RouteProjects, "Project created successfully")
}

// Project displays one project; ?edit=1 enables editing.
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteProjects, "Invalid project ID")
		return
	}
	project, err := h.clients.Projects.Get(r.Context(), id)
	if err != nil {
		h.failRemote(w, r, RouteProjects, err)
		return
	}
	data := map[string]any{
		"Project":  project,
		"Editing":  r.URL.Query().Get("edit") == "1",
		"Statuses": model.ProjectStatuses,
	}
	if err := h.renderer.Render(w, r, "pages/project_detail", h.pageData(r, project.Name, data)); err != nil {
		h.logAndInternalError(w, err, "rendering project detail")
	}
}

// ProjectUpdate saves the mutable fields of a project, including a status
// change picked from the enum.
func (h *Handler) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteProjects, "Invalid project ID")
		return
	}
	detailURL := idPath(RouteProjects, id)
	if !h.parseFormOrRedirect(w, r, detailURL+"?edit=1") {
		return
	}
	in := projectInputFromForm(r)
	in.UpdatedBy = h.session.Username(r.Context())
	if in.Name == "" {
		h.flashError(w, r, detailURL+"?edit=1", "Project name is required")
		return
	}
	if in.Status != "" && !model.IsValidProjectStatus(in.Status) {
		h.flashError(w, r, detailURL+"?edit=1", "Unknown project status")
		return
	}
	if err := h.clients.Projects.Update(r.Context(), id, in); err != nil {
		h.failRemote(w, r, detailURL+"?edit=1", err)
		return
	}
	h.flashSuccess(w, r, detailURL, "Project updated successfully")
}

// ProjectActivate moves a project back to the active collection.
func (h *Handler) ProjectActivate(w http.ResponseWriter, r *http.Request) {
	h.setProjectActive(w, r, true)
}

// ProjectDeactivate deactivates a project. On failure the operator lands
// back on the tab they acted from, row intact.
func (h *Handler) ProjectDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setProjectActive(w, r, false)
}

func (h *Handler) setProjectActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteProjects, "Invalid project ID")
		return
	}
	back := projectListURL(r.FormValue("status"))
	call, verb := h.clients.Projects.Deactivate, "deactivated"
	if active {
		call, verb = h.clients.Projects.Activate, "activated"
	}
	if err := call(r.Context(), id); err != nil {
		h.failRemote(w, r, back, err)
		return
	}
	h.flashSuccess(w, r, back, "Project "+verb+" successfully")
}

// projectInputFromForm collects the project fields shared by create and
// update. The parsed form must already be available.
func projectInputFromForm(r *http.Request) model.ProjectInput {
	return model.ProjectInput{
		ProjectID:   strings.TrimSpace(r.FormValue("projectId")),
		Name:        strings.TrimSpace(r.FormValue("name")),
		StartDate:   strings.TrimSpace(r.FormValue("startDate")),
		EndDate:     strings.TrimSpace(r.FormValue("endDate")),
		Description: strings.TrimSpace(r.FormValue("description")),
		TeamMembers: strings.TrimSpace(r.FormValue("teamMembers")),
		Status:      strings.TrimSpace(r.FormValue("status")),
	}
}
