// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/hrops/hrops-go/internal/model"
)

// listURL builds the list page URL for the given collection selector, so a
// row action lands back on the collection the operator was looking at.
func listURL(base, show string) string {
	if show == "inactive" {
		return base + "?show=inactive"
	}
	return base
}

// Roles lists active or inactive roles.
func (h *Handler) Roles(w http.ResponseWriter, r *http.Request) {
	show := r.URL.Query().Get("show")
	result, ok := fetchList(h, w, r, func() ([]model.Role, error) {
		if show == "inactive" {
			return h.clients.Roles.ListInactive(r.Context())
		}
		return h.clients.Roles.ListActive(r.Context())
	})
	if !ok {
		return
	}

	data := map[string]any{
		"Roles":        result.Rows,
		"Error":        result.ErrorMsg,
		"ShowInactive": show == "inactive",
		"EmptyMessage": "There are currently no active roles",
	}
	if show == "inactive" {
		data["EmptyMessage"] = "There are currently no inactive roles"
	}
	if err := h.renderer.Render(w, r, "pages/roles", h.pageData(r, "Roles", data)); err != nil {
		h.logAndInternalError(w, err, "rendering roles page")
	}
}

// RoleNew displays the role creation form.
func (h *Handler) RoleNew(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Form": model.RoleInput{}}
	if err := h.renderer.Render(w, r, "pages/role_form", h.pageData(r, "New Role", data)); err != nil {
		h.logAndInternalError(w, err, "rendering role form")
	}
}

// RoleCreate creates a role.
func (h *Handler) RoleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, RouteRoleNew) {
		return
	}
	in := model.RoleInput{
		Role:        strings.TrimSpace(r.FormValue("role")),
		Description: strings.TrimSpace(r.FormValue("description")),
		CreatedBy:   h.session.Username(r.Context()),
	}
	if in.Role == "" {
		h.flashError(w, r, RouteRoleNew, "Role name is required")
		return
	}
	if err := h.clients.Roles.Create(r.Context(), in); err != nil {
		h.failRemote(w, r, RouteRoleNew, err)
		return
	}
	h.flashSuccess(w, r, RouteRoles, "Role created successfully")
}

// Role displays one role; ?edit=1 swaps the static fields for inputs.
func (h *Handler) Role(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteRoles, "Invalid role ID")
		return
	}
	role, err := h.clients.Roles.Get(r.Context(), id)
	if err != nil {
		h.failRemote(w, r, RouteRoles, err)
		return
	}
	data := map[string]any{
		"Role":    role,
		"Editing": r.URL.Query().Get("edit") == "1",
	}
	if err := h.renderer.Render(w, r, "pages/role_detail", h.pageData(r, role.Role, data)); err != nil {
		h.logAndInternalError(w, err, "rendering role detail")
	}
}

// RoleUpdate saves the mutable fields of a role. The draft lives in the
// form; canceling an edit never touches the loaded record.
func (h *Handler) RoleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteRoles, "Invalid role ID")
		return
	}
	detailURL := idPath(RouteRoles, id)
	if !h.parseFormOrRedirect(w, r, detailURL+"?edit=1") {
		return
	}
	in := model.RoleInput{
		Role:        strings.TrimSpace(r.FormValue("role")),
		Description: strings.TrimSpace(r.FormValue("description")),
		UpdatedBy:   h.session.Username(r.Context()),
	}
	if in.Role == "" {
		h.flashError(w, r, detailURL+"?edit=1", "Role name is required")
		return
	}
	if err := h.clients.Roles.Update(r.Context(), id, in); err != nil {
		h.failRemote(w, r, detailURL+"?edit=1", err)
		return
	}
	h.flashSuccess(w, r, detailURL, "Role updated successfully")
}

// RoleActivate moves a role back to the active collection.
func (h *Handler) RoleActivate(w http.ResponseWriter, r *http.Request) {
	h.setRoleActive(w, r, true)
}

// RoleDeactivate retires a role.
func (h *Handler) RoleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setRoleActive(w, r, false)
}

func (h *Handler) setRoleActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteRoles, "Invalid role ID")
		return
	}
	back := listURL(RouteRoles, r.FormValue("show"))
	call, verb := h.clients.Roles.Deactivate, "deactivated"
	if active {
		call, verb = h.clients.Roles.Activate, "activated"
	}
	if err := call(r.Context(), id); err != nil {
		h.failRemote(w, r, back, err)
		return
	}
	h.flashSuccess(w, r, back, "Role "+verb+" successfully")
}
