// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/hrops/hrops-go/internal/session"
)

func testState() *session.State {
	return session.NewState(scs.New())
}

func TestAuthRedirectsAnonymous(t *testing.T) {
	state := testState()
	handler := state.Manager().LoadAndSave(
		Auth(state)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler reached without a session token")
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestAuthPassesSignedInUser(t *testing.T) {
	state := testState()
	var gotUsername string
	handler := state.Manager().LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := state.SignIn(r.Context(), "token", "jdoe"); err != nil {
			t.Fatalf("SignIn: %v", err)
		}
		Auth(state)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUsername = GetUsername(r)
		})).ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUsername != "jdoe" {
		t.Errorf("GetUsername = %q, want %q", gotUsername, "jdoe")
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	state := testState()
	handler := state.Manager().LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := state.SignIn(r.Context(), "token", "jdoe"); err != nil {
			t.Fatalf("SignIn: %v", err)
		}
		RedirectIfAuthenticated(state)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("login page reached while signed in")
		})).ServeHTTP(w, r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}
