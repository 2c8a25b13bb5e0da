// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/model"
	"github.com/hrops/hrops-go/internal/timesheet"
)

// Timesheets displays the signed-in user's weekly entry table. Project
// names for the entry form come from the active project list.
func (h *Handler) Timesheets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := h.session.Username(ctx)

	projects, err := h.clients.Projects.ListByStatus(ctx, model.ProjectStatusActive)
	if err != nil {
		if errors.Is(err, hrclient.ErrNoToken) {
			http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
			return
		}
		h.logger.Warn("loading projects for timesheet form", "error", err)
	}

	week, total := h.timesheets.Week(username, time.Now())
	data := map[string]any{
		"Entries":    week,
		"TotalHours": total,
		"AllEntries": h.timesheets.Entries(username),
		"Projects":   projects,
		"Today":      time.Now().Format("2006-01-02"),
	}
	if err := h.renderer.Render(w, r, "pages/timesheets", h.pageData(r, "Timesheets", data)); err != nil {
		h.logAndInternalError(w, err, "rendering timesheets page")
	}
}

// TimesheetAdd logs one block of work.
func (h *Handler) TimesheetAdd(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, RouteTimesheets) {
		return
	}
	hours, err := strconv.ParseFloat(r.FormValue("hours"), 64)
	if err != nil {
		h.flashError(w, r, RouteTimesheets, "Hours must be a number")
		return
	}
	entry := model.TimesheetEntry{
		WorkDate:    strings.TrimSpace(r.FormValue("workDate")),
		ProjectName: strings.TrimSpace(r.FormValue("projectName")),
		Hours:       hours,
		Notes:       strings.TrimSpace(r.FormValue("notes")),
	}
	if err := h.timesheets.Add(h.session.Username(r.Context()), entry); err != nil {
		h.flashError(w, r, RouteTimesheets, err.Error())
		return
	}
	h.toastSuccess(r, "Timesheet entry logged")
	http.Redirect(w, r, RouteTimesheets, http.StatusSeeOther)
}

// TimesheetExport streams the user's entries as an XLSX download.
func (h *Handler) TimesheetExport(w http.ResponseWriter, r *http.Request) {
	username := h.session.Username(r.Context())
	entries := h.timesheets.Entries(username)
	if len(entries) == 0 {
		h.flashError(w, r, RouteTimesheets, "Nothing to export yet")
		return
	}

	filename := fmt.Sprintf("timesheet-%s-%s.xlsx", username, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := timesheet.Export(w, username, entries); err != nil {
		h.logger.Error("exporting timesheet", "username", username, "error", err)
	}
}
