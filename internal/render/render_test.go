// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"
)

var testTemplates = fstest.MapFS{
	"layouts/base.html": &fstest.MapFile{Data: []byte(
		`{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`,
	)},
	"layouts/app.html": &fstest.MapFile{Data: []byte(
		`{{define "shell"}}shell{{end}}`,
	)},
	"partials/flash.html": &fstest.MapFile{Data: []byte(
		`{{define "flash"}}{{if .Flash}}<div class="flash-{{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`,
	)},
	"pages/roles.html": &fstest.MapFile{Data: []byte(
		`{{define "content"}}{{template "flash" .}}<h1>{{.Title}}</h1>{{end}}`,
	)},
	"auth/login.html": &fstest.MapFile{Data: []byte(
		`{{define "content"}}<form>login</form>{{end}}`,
	)},
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *Renderer {
	t.Helper()
	r, err := New(Config{TemplatesFS: testTemplates, SessionManager: sm})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRenderPage(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	if err := r.Render(rec, req, "pages/roles", TemplateData{Title: "Roles"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<h1>Roles</h1>") {
		t.Errorf("body = %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := r.Render(rec, req, "pages/missing", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRenderPopsFlash(t *testing.T) {
	sm := scs.New()
	r := newTestRenderer(t, sm)

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.SetFlash(req, "Role created", "success")

		rec := httptest.NewRecorder()
		if err := r.Render(rec, req, "pages/roles", TemplateData{Title: "Roles"}); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(rec.Body.String(), `<div class="flash-success">Role created</div>`) {
			t.Errorf("flash missing from body: %q", rec.Body.String())
		}

		// A second render must not repeat the flash.
		rec = httptest.NewRecorder()
		if err := r.Render(rec, req, "pages/roles", TemplateData{Title: "Roles"}); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if strings.Contains(rec.Body.String(), "flash-success") {
			t.Error("flash rendered twice")
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/roles", nil))
}

func TestAuthTemplateUsesBaseLayout(t *testing.T) {
	r := newTestRenderer(t, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	if err := r.Render(rec, req, "auth/login", TemplateData{Title: "Sign In"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "<form>login</form>") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
