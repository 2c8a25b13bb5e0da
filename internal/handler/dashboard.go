// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hrops/hrops-go/internal/nav"
)

// ServiceStatus is one backend service's reachability on the dashboard.
type ServiceStatus struct {
	Name string
	URL  string
	Up   bool
}

// healthReport is the cached probe result for all backend services.
type healthReport struct {
	Services  []ServiceStatus
	CheckedAt time.Time
}

const healthCacheKey = "service_health"

// probeHealth pings every backend service. Probes run with their own short
// deadline so a dead service cannot stall the dashboard.
func (h *Handler) probeHealth(ctx context.Context) (*healthReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	report := &healthReport{CheckedAt: time.Now()}
	for _, svc := range []struct {
		name   string
		client interface {
			Ping(context.Context) error
			BaseURL() string
		}
	}{
		{"Core", h.clients.Core},
		{"Projects", h.clients.Project},
		{"Leaves", h.clients.Leave},
	} {
		report.Services = append(report.Services, ServiceStatus{
			Name: svc.name,
			URL:  svc.client.BaseURL(),
			Up:   svc.client.Ping(ctx) == nil,
		})
	}
	return report, nil
}

// ServiceHealth returns the cached backend health, probing on a cold cache.
func (h *Handler) ServiceHealth(ctx context.Context) []ServiceStatus {
	report, err := h.health.GetOrSet(ctx, healthCacheKey, func() (*healthReport, error) {
		return h.probeHealth(ctx)
	})
	if err != nil || report == nil {
		return nil
	}
	return report.Services
}

// RefreshHealth re-probes the backends and replaces the cached report. The
// scheduler calls this so the dashboard rarely pays for a cold probe.
func (h *Handler) RefreshHealth(ctx context.Context) error {
	report, err := h.probeHealth(ctx)
	if err != nil {
		return err
	}
	return h.health.Set(ctx, healthCacheKey, report)
}

// Home displays the dashboard.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := map[string]any{
		"Services": h.ServiceHealth(ctx),
	}
	if exp, ok := h.session.TokenExpiry(ctx); ok {
		data["TokenExpiry"] = exp
	}
	if err := h.renderer.Render(w, r, "pages/home", h.pageData(r, "Dashboard", data)); err != nil {
		h.logAndInternalError(w, err, "rendering dashboard")
	}
}

// redirectBack returns to the page the action came from. Only same-site
// relative paths are honored; anything else falls back to the dashboard.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := redirectHome
	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			target = u.Path
			if u.RawQuery != "" {
				target += "?" + u.RawQuery
			}
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// ToggleSidebar flips the sidebar collapse flag for this session.
func (h *Handler) ToggleSidebar(w http.ResponseWriter, r *http.Request) {
	h.session.ToggleSidebar(r.Context())
	redirectBack(w, r)
}

// ToggleSection flips one sidebar section's disclosure state. Unknown
// section ids are ignored so a stale form cannot grow the stored set.
func (h *Handler) ToggleSection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if nav.ValidSection(id) {
		h.session.ToggleSection(r.Context(), id)
	}
	redirectBack(w, r)
}

// MarkNotificationsRead zeroes the unread counter, keeping the entries.
func (h *Handler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if h.notifications != nil {
		h.notifications.MarkAllRead()
	}
	redirectBack(w, r)
}

// ClearNotifications empties the notification history.
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	if h.notifications != nil {
		h.notifications.ClearAll()
	}
	redirectBack(w, r)
}

// NotificationsStream pushes notifications to the browser as server-sent
// events, so the bell badge updates without a page reload.
func (h *Handler) NotificationsStream(w http.ResponseWriter, r *http.Request) {
	if h.notifications == nil {
		http.NotFound(w, r)
		return
	}
	sub, cancel := h.notifications.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case n, ok := <-sub:
			if !ok {
				return
			}
			payload, err := json.Marshal(map[string]any{
				"message": n.Message,
				"unread":  h.notifications.UnreadCount(),
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// DismissToast removes one toast before its timer fires.
func (h *Handler) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.queue(r).Dismiss(chi.URLParam(r, "id"))
	redirectBack(w, r)
}
