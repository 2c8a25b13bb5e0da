// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/render"
)

// LoginForm displays the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.session.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, redirectHome, http.StatusSeeOther)
		return
	}
	data := render.TemplateData{Title: "Sign In"}
	if err := h.renderer.Render(w, r, "auth/login", data); err != nil {
		h.logAndInternalError(w, err, "rendering login page")
	}
}

// Login authenticates against the remote auth service and starts the
// console session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.session.IsAuthenticated(ctx) {
		http.Redirect(w, r, redirectHome, http.StatusSeeOther)
		return
	}
	if !h.parseFormOrRedirect(w, r, RouteLogin) {
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		h.flashError(w, r, RouteLogin, "Username and password are required")
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(username); locked {
		h.flashError(w, r, RouteLogin,
			fmt.Sprintf("Account temporarily locked. Try again in %d minutes.", int(remaining.Minutes())+1))
		return
	}

	token, err := h.clients.Auth.Login(ctx, username, password)
	if err != nil {
		h.logger.Warn("login failed", "username", username, "error", err)

		if errors.Is(err, hrclient.ErrNoResponse) {
			h.flashError(w, r, RouteLogin, "No response from server")
			return
		}

		if locked, duration := h.loginProtection.RecordFailedAttempt(username); locked {
			h.flashError(w, r, RouteLogin,
				fmt.Sprintf("Too many failed attempts. Account locked for %d minutes.", int(duration.Minutes())))
			return
		}
		msg := "Invalid username or password"
		if remaining := h.loginProtection.GetRemainingAttempts(username); remaining <= 3 {
			msg = fmt.Sprintf("Invalid username or password. %d attempts remaining.", remaining)
		}
		h.flashError(w, r, RouteLogin, msg)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(username)

	if err := h.session.SignIn(ctx, token, username); err != nil {
		h.logAndInternalError(w, err, "starting session")
		return
	}
	h.logger.Info("user signed in", "username", username)
	http.Redirect(w, r, redirectHome, http.StatusSeeOther)
}

// Logout invalidates the remote token (best effort) and always clears the
// local session, so a dead auth service can never trap a user signed in.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := h.session.Username(ctx)

	if err := h.clients.Auth.Logout(ctx); err != nil {
		h.logger.Warn("remote logout failed", "username", username, "error", err)
	}

	h.toasts.Drop(h.session.Manager().Token(ctx))
	if err := h.session.SignOut(ctx); err != nil {
		h.logger.Error("destroying session", "error", err)
	}
	h.logger.Info("user signed out", "username", username)
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}
