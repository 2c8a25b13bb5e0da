// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains HTTP handlers for the admin console. Every page
// is rendered server-side; entity data comes from the remote HR services on
// each request and is never cached locally.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hrops/hrops-go/internal/cache"
	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/middleware"
	"github.com/hrops/hrops-go/internal/model"
	"github.com/hrops/hrops-go/internal/nav"
	"github.com/hrops/hrops-go/internal/notify"
	"github.com/hrops/hrops-go/internal/render"
	"github.com/hrops/hrops-go/internal/session"
	"github.com/hrops/hrops-go/internal/timesheet"
	"github.com/hrops/hrops-go/internal/toast"
)

// Clients bundles the remote service clients the handlers call.
type Clients struct {
	Auth        *hrclient.AuthClient
	Users       *hrclient.UserClient
	Roles       *hrclient.Resource[model.Role]
	Departments *hrclient.Resource[model.Department]
	Projects    *hrclient.Resource[model.Project]
	Leaves      *hrclient.LeaveClient
	Files       *hrclient.FileClient

	// LeaveRecords is the core service's per-employee leave collection,
	// kept separate from the leave-request workflow on the leave service.
	LeaveRecords *hrclient.Resource[model.LeaveRequest]

	// Raw clients, used only for reachability probes on the dashboard.
	Core    *hrclient.Client
	Project *hrclient.Client
	Leave   *hrclient.Client
}

// NewClients wires the per-service clients from the three base clients.
func NewClients(core, project, leave *hrclient.Client) Clients {
	return Clients{
		Auth:         hrclient.NewAuthClient(core),
		Users:        hrclient.NewUserClient(core),
		Roles:        hrclient.NewResource[model.Role](core, "/role"),
		Departments:  hrclient.NewResource[model.Department](core, "/departments"),
		Projects:     hrclient.NewResource[model.Project](project, "/project"),
		Leaves:       hrclient.NewLeaveClient(leave),
		Files:        hrclient.NewFileClient(core),
		LeaveRecords: hrclient.NewResource[model.LeaveRequest](core, "/Leaves"),
		Core:         core,
		Project:      project,
		Leave:        leave,
	}
}

// Handler holds dependencies for the console handlers.
type Handler struct {
	logger          *slog.Logger
	renderer        *render.Renderer
	session         *session.State
	toasts          *toast.Registry
	notifications   *notify.Channel
	loginProtection *middleware.LoginProtection
	clients         Clients
	timesheets      *timesheet.Store
	health          *cache.TypedCache[healthReport]
}

// Options configures a Handler.
type Options struct {
	Logger          *slog.Logger
	Renderer        *render.Renderer
	Session         *session.State
	Toasts          *toast.Registry
	Notifications   *notify.Channel
	LoginProtection *middleware.LoginProtection
	Clients         Clients
	Timesheets      *timesheet.Store
	HealthCache     cache.Cacher
	HealthTTL       time.Duration
}

// New creates a Handler.
func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.HealthTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	// Without an injected cache (Redis in production), health probes fall
	// back to an in-process TTL cache so every dashboard load still hits
	// at most one probe per window.
	hc := opts.HealthCache
	if hc == nil {
		hc = cache.NewCacheWithTTL(ttl)
	}
	health := cache.NewTypedCache[healthReport](hc, ttl)
	return &Handler{
		logger:          logger,
		renderer:        opts.Renderer,
		session:         opts.Session,
		toasts:          opts.Toasts,
		notifications:   opts.Notifications,
		loginProtection: opts.LoginProtection,
		clients:         opts.Clients,
		timesheets:      opts.Timesheets,
		health:          health,
	}
}

// queue returns the toast queue for the current browser session.
func (h *Handler) queue(r *http.Request) *toast.Queue {
	return h.toasts.For(h.session.Manager().Token(r.Context()))
}

// pageData assembles the shared template data every authenticated page
// needs: navigation state, toast snapshot, notification panel and the
// signed-in username.
func (h *Handler) pageData(r *http.Request, title string, data any) render.TemplateData {
	ctx := r.Context()
	activePath := middleware.GetRequestPath(ctx)
	if activePath == "" {
		activePath = r.URL.Path
	}
	td := render.TemplateData{
		Title:    title,
		Data:     data,
		Username: middleware.GetUsername(r),
		Nav:      nav.Build(ctx, h.session, activePath),
		Toasts:   h.queue(r).Snapshot(),
	}
	if h.notifications != nil {
		td.Notifications = render.NotificationView{
			Entries: h.notifications.Notifications(),
			Unread:  h.notifications.UnreadCount(),
			State:   h.notifications.State().String(),
		}
	}
	return td
}
