// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "net/http"

// Attendance displays the attendance placeholder page.
func (h *Handler) Attendance(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "pages/attendance", h.pageData(r, "Attendance", map[string]any{})); err != nil {
		h.logAndInternalError(w, err, "rendering attendance page")
	}
}

// Payroll displays the payroll placeholder page.
func (h *Handler) Payroll(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "pages/payroll", h.pageData(r, "Payroll", map[string]any{})); err != nil {
		h.logAndInternalError(w, err, "rendering payroll page")
	}
}

// Settings displays the session settings page: who is signed in, when the
// token expires, and the notification channel state.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := map[string]any{}
	if exp, ok := h.session.TokenExpiry(ctx); ok {
		data["TokenExpiry"] = exp
	}
	if err := h.renderer.Render(w, r, "pages/settings", h.pageData(r, "Settings", data)); err != nil {
		h.logAndInternalError(w, err, "rendering settings page")
	}
}
