// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/middleware"
	"github.com/hrops/hrops-go/internal/notify"
	"github.com/hrops/hrops-go/internal/render"
	"github.com/hrops/hrops-go/internal/session"
	"github.com/hrops/hrops-go/internal/timesheet"
	"github.com/hrops/hrops-go/internal/toast"
	"github.com/hrops/hrops-go/web"
)

const testToken = "tok123"

// testEnv runs the console against stub HR services, with a cookie-jarred
// client so session state carries across requests.
type testEnv struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newEnv(t *testing.T, core, project, leave http.Handler) *testEnv {
	return newEnvNotify(t, core, project, leave, nil)
}

// newEnvNotify additionally wires a notification channel into the handler
// for tests that exercise the live stream.
func newEnvNotify(t *testing.T, core, project, leave http.Handler, notifications *notify.Channel) *testEnv {
	t.Helper()
	if core == nil {
		core = http.NotFoundHandler()
	}
	if project == nil {
		project = http.NotFoundHandler()
	}
	if leave == nil {
		leave = http.NotFoundHandler()
	}
	coreSrv := httptest.NewServer(core)
	projectSrv := httptest.NewServer(project)
	leaveSrv := httptest.NewServer(leave)
	t.Cleanup(coreSrv.Close)
	t.Cleanup(projectSrv.Close)
	t.Cleanup(leaveSrv.Close)

	sm := scs.New()
	state := session.NewState(sm)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm})
	if err != nil {
		t.Fatalf("building renderer: %v", err)
	}

	newClient := func(base string) *hrclient.Client {
		return hrclient.New(hrclient.Options{
			BaseURL: base,
			Token:   state.Token,
			Timeout: 2 * time.Second,
		})
	}

	registry := toast.NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	h := New(Options{
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Renderer:        renderer,
		Session:         state,
		Toasts:          registry,
		LoginProtection: middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig()),
		Clients:         NewClients(newClient(coreSrv.URL), newClient(projectSrv.URL), newClient(leaveSrv.URL)),
		Timesheets:      timesheet.NewStore(),
		Notifications:   notifications,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestPath)
	r.Use(sm.LoadAndSave)
	h.Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &testEnv{
		t:   t,
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// loginStub serves the auth endpoint on a core service mux.
func loginStub(mux *http.ServeMux) {
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": testToken})
	})
}

func (e *testEnv) signIn() {
	e.t.Helper()
	resp := e.postForm("/login", url.Values{"username": {"jdoe"}, "password": {"secret"}})
	defer resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/" {
		e.t.Fatalf("sign-in redirect = %q, want /", loc)
	}
}

func (e *testEnv) get(path string) *http.Response {
	e.t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	if err != nil {
		e.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) postForm(path string, form url.Values) *http.Response {
	e.t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+path, form)
	if err != nil {
		e.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(b)
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	env := newEnv(t, nil, nil, nil)
	resp := env.get("/roles")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestRoleListRow(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	loginStub(mux)
	mux.HandleFunc("/role/active", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"id": 1, "role": "Engineer", "description": "Builds things",
			"createdDate": "2026-01-15", "active": true,
		}})
	})

	env := newEnv(t, mux, nil, nil)
	env.signIn()

	page := body(t, env.get("/roles"))
	if gotAuth != "Bearer "+testToken {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	for _, want := range []string{"Engineer", "Builds things", "2026-01-15", `href="/roles/1"`} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	// The navbar shows the signed-in username the auth middleware carries.
	if !strings.Contains(page, "jdoe") {
		t.Error("page missing signed-in username")
	}
}

func TestDepartmentInactiveEmptyState(t *testing.T) {
	mux := http.NewServeMux()
	loginStub(mux)
	mux.HandleFunc("/departments/inactive", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	env := newEnv(t, mux, nil, nil)
	env.signIn()

	page := body(t, env.get("/departments?show=inactive"))
	if !strings.Contains(page, "There are currently no inactive departments") {
		t.Error("page missing empty-state copy")
	}
	if strings.Contains(page, "inline-error") {
		t.Error("404 must not render an error indicator")
	}
}

func TestRoleListServerErrorShowsInlineError(t *testing.T) {
	mux := http.NewServeMux()
	loginStub(mux)
	mux.HandleFunc("/role/active", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "database exploded"})
	})

	env := newEnv(t, mux, nil, nil)
	env.signIn()

	page := body(t, env.get("/roles"))
	if !strings.Contains(page, "database exploded") {
		t.Error("page missing the server's error message")
	}
	if !strings.Contains(page, "inline-error") {
		t.Error("5xx must render an error indicator")
	}
	if strings.Contains(page, "<tbody>") {
		t.Error("5xx must render zero rows")
	}
}

func TestProjectDeactivate(t *testing.T) {
	coreMux := http.NewServeMux()
	loginStub(coreMux)

	var gotMethod, gotPath string
	projMux := http.NewServeMux()
	projMux.HandleFunc("/project/deactivate/7", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	env := newEnv(t, coreMux, projMux, nil)
	env.signIn()

	resp := env.postForm("/projects/7/deactivate", url.Values{"status": {"ACTIVE"}})
	defer resp.Body.Close()
	if gotMethod != http.MethodPatch || gotPath != "/project/deactivate/7" {
		t.Errorf("remote call = %s %s, want PATCH /project/deactivate/7", gotMethod, gotPath)
	}
	if loc := resp.Header.Get("Location"); loc != "/projects" {
		t.Errorf("Location = %q, want /projects", loc)
	}
}

func TestProjectDeactivateFailureKeepsRow(t *testing.T) {
	coreMux := http.NewServeMux()
	loginStub(coreMux)

	projMux := http.NewServeMux()
	projMux.HandleFunc("/project/deactivate/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "project has open tasks"})
	})
	projMux.HandleFunc("/project/getByStatus/ACTIVE", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"id": 7, "projectId": "PRJ-7", "name": "Atlas", "status": "ACTIVE",
		}})
	})

	env := newEnv(t, coreMux, projMux, nil)
	env.signIn()

	resp := env.postForm("/projects/7/deactivate", url.Values{"status": {"ACTIVE"}})
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/projects" {
		t.Fatalf("Location = %q, want /projects", loc)
	}

	page := body(t, env.get("/projects"))
	if !strings.Contains(page, "project has open tasks") {
		t.Error("page missing the failure flash")
	}
	if !strings.Contains(page, "Atlas") {
		t.Error("row must remain after a failed deactivate")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
	})

	env := newEnv(t, mux, nil, nil)
	resp := env.postForm("/login", url.Values{"username": {"jdoe"}, "password": {"wrong"}})
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}

	page := body(t, env.get("/login"))
	if !strings.Contains(page, "Invalid username or password") {
		t.Error("login page missing the failure flash")
	}
}

func TestLoginUnreachableAuthService(t *testing.T) {
	env := newEnv(t, unreachableHandler{}, nil, nil)
	resp := env.postForm("/login", url.Values{"username": {"jdoe"}, "password": {"secret"}})
	resp.Body.Close()

	page := body(t, env.get("/login"))
	if !strings.Contains(page, "No response from server") {
		t.Error("login page missing the no-response flash")
	}
}

// unreachableHandler hijacks and drops the connection so the client sees a
// transport error rather than an HTTP response.
type unreachableHandler struct{}

func (unreachableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(err)
	}
	conn.Close()
}

func TestLogoutClearsSessionEvenWhenRemoteFails(t *testing.T) {
	mux := http.NewServeMux()
	loginStub(mux)
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	env := newEnv(t, mux, nil, nil)
	env.signIn()

	resp := env.get("/logout")
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}

	// The token is gone: protected pages bounce to login.
	resp = env.get("/roles")
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("after logout, /roles Location = %q, want /login", loc)
	}
}

func TestTimesheetAddAndToast(t *testing.T) {
	coreMux := http.NewServeMux()
	loginStub(coreMux)
	projMux := http.NewServeMux()
	projMux.HandleFunc("/project/getByStatus/ACTIVE", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Atlas", "status": "ACTIVE"}})
	})

	env := newEnv(t, coreMux, projMux, nil)
	env.signIn()

	resp := env.postForm("/timesheets", url.Values{
		"workDate":    {"2026-08-31"},
		"projectName": {"Atlas"},
		"hours":       {"7.5"},
		"notes":       {"release prep"},
	})
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/timesheets" {
		t.Fatalf("Location = %q, want /timesheets", loc)
	}

	page := body(t, env.get("/timesheets"))
	if !strings.Contains(page, "Timesheet entry logged") {
		t.Error("page missing the success toast")
	}
	if !strings.Contains(page, "release prep") {
		t.Error("page missing the logged entry")
	}
}

func TestTimesheetExportDownload(t *testing.T) {
	coreMux := http.NewServeMux()
	loginStub(coreMux)
	projMux := http.NewServeMux()
	projMux.HandleFunc("/project/getByStatus/ACTIVE", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})

	env := newEnv(t, coreMux, projMux, nil)
	env.signIn()

	resp := env.postForm("/timesheets", url.Values{
		"workDate": {"2026-08-31"}, "projectName": {"Atlas"}, "hours": {"8"},
	})
	resp.Body.Close()

	resp = env.get("/timesheets/export")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q, want spreadsheet", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "timesheet-jdoe-") {
		t.Errorf("Content-Disposition = %q, want attachment filename", cd)
	}
}

func TestDocumentsPaginationAndFilter(t *testing.T) {
	var gotQuery url.Values
	mux := http.NewServeMux()
	loginStub(mux)
	mux.HandleFunc("/file/filter", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{
				"id": 3, "fileName": "handbook.pdf", "fileType": "application/pdf",
				"fileSize": 2048, "uploadedBy": "jdoe", "createdDate": "2026-08-01",
			}},
			"totalPages": 4,
		})
	})

	env := newEnv(t, mux, nil, nil)
	env.signIn()

	page := body(t, env.get("/documents?page=2&fileName=handbook"))
	if gotQuery.Get("page") != "1" {
		t.Errorf("wire page = %q, want zero-based 1", gotQuery.Get("page"))
	}
	if gotQuery.Get("fileName") != "handbook" {
		t.Errorf("fileName filter not forwarded, got %q", gotQuery.Get("fileName"))
	}
	if !strings.Contains(page, "handbook.pdf") {
		t.Error("page missing the document row")
	}
	if !strings.Contains(page, "fileName=handbook") {
		t.Error("pagination links must preserve the filter")
	}
}

func TestSidebarSectionToggle(t *testing.T) {
	mux := http.NewServeMux()
	loginStub(mux)

	env := newEnv(t, mux, nil, nil)
	env.signIn()

	// Initially closed: children hidden.
	page := body(t, env.get("/settings"))
	if strings.Contains(page, `href="/leaves/apply"`) {
		t.Fatal("leaves section should start closed")
	}

	resp := env.postForm("/ui/section/leaves/toggle", nil)
	resp.Body.Close()

	page = body(t, env.get("/settings"))
	if !strings.Contains(page, `href="/leaves/apply"`) {
		t.Error("leaves section should be open after toggle")
	}

	// Unknown ids are ignored.
	resp = env.postForm("/ui/section/bogus/toggle", nil)
	resp.Body.Close()
	page = body(t, env.get("/settings"))
	if !strings.Contains(page, `href="/leaves/apply"`) {
		t.Error("bogus toggle must not disturb open sections")
	}
}

func TestLeaveDetailViewAndUpdate(t *testing.T) {
	coreMux := http.NewServeMux()
	loginStub(coreMux)

	var gotUpdate map[string]any
	leaveMux := http.NewServeMux()
	leaveMux.HandleFunc("/leaverequests/5", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"leaveRequestId": 5, "userId": 12, "reportingManagerId": 3,
			"leaveStartDate": "2026-09-07", "leaveEndDate": "2026-09-09",
			"leaveType": "SICK", "leaveStatus": "PENDING",
			"description": "Flu",
		})
	})
	leaveMux.HandleFunc("/leaverequests/update/5", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("update method = %s, want PUT", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotUpdate)
	})

	env := newEnv(t, coreMux, nil, leaveMux)
	env.signIn()

	page := body(t, env.get("/leaves/5"))
	for _, want := range []string{"Flu", "2026-09-07", "PENDING", `href="/leaves/5?edit=1"`} {
		if !strings.Contains(page, want) {
			t.Errorf("detail page missing %q", want)
		}
	}

	// Edit mode binds the record into form inputs.
	page = body(t, env.get("/leaves/5?edit=1"))
	if !strings.Contains(page, `value="2026-09-09"`) {
		t.Error("edit form should carry the loaded end date")
	}

	resp := env.postForm("/leaves/5", url.Values{
		"userId":             {"12"},
		"reportingManagerId": {"3"},
		"leaveStartDate":     {"2026-09-07"},
		"leaveEndDate":       {"2026-09-10"},
		"leaveType":          {"SICK"},
		"description":        {"Flu, extended"},
	})
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/leaves/5" {
		t.Fatalf("update redirect = %q, want /leaves/5", loc)
	}
	if gotUpdate["leaveEndDate"] != "2026-09-10" {
		t.Errorf("update body leaveEndDate = %v, want 2026-09-10", gotUpdate["leaveEndDate"])
	}
}

func TestEmployeeLeavesInactiveTab(t *testing.T) {
	coreMux := http.NewServeMux()
	loginStub(coreMux)
	coreMux.HandleFunc("/Leaves/inactive", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"leaveRequestId": 9, "userId": 4, "reportingManagerId": 2,
			"leaveType": "EARNED", "leaveStartDate": "2026-06-01", "leaveEndDate": "2026-06-05",
		}})
	})
	var activated bool
	coreMux.HandleFunc("/Leaves/activate/9", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("activate method = %s, want PUT", r.Method)
		}
		activated = true
	})

	env := newEnv(t, coreMux, nil, nil)
	env.signIn()

	page := body(t, env.get("/leaves/employee?status=INACTIVE"))
	for _, want := range []string{"EARNED", "2026-06-01", "/leaves/records/9/activate"} {
		if !strings.Contains(page, want) {
			t.Errorf("inactive tab missing %q", want)
		}
	}

	resp := env.postForm("/leaves/records/9/activate", url.Values{"status": {"INACTIVE"}})
	resp.Body.Close()
	if loc := resp.Header.Get("Location"); loc != "/leaves/employee?status=INACTIVE" {
		t.Errorf("activate redirect = %q, want the inactive tab", loc)
	}
	if !activated {
		t.Error("activate endpoint was not called")
	}
}

func TestDashboardHealthProbeIsCached(t *testing.T) {
	var probes int
	mux := http.NewServeMux()
	loginStub(mux)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		probes++
	})

	env := newEnv(t, mux, nil, nil)
	env.signIn()

	page := body(t, env.get("/"))
	if !strings.Contains(page, "status-up") {
		t.Error("dashboard missing reachable service status")
	}
	if probes != 1 {
		t.Fatalf("probes after first load = %d, want 1", probes)
	}

	// Within the TTL the second load serves the cached report.
	body(t, env.get("/"))
	if probes != 1 {
		t.Errorf("probes after second load = %d, want 1 (cached)", probes)
	}
}

// Events arriving on the websocket feed must come out of the server-sent
// event stream, which is what keeps the navbar badge current between page
// loads.
func TestNotificationStreamRelaysFeed(t *testing.T) {
	frames := make(chan string)
	upgrader := websocket.Upgrader{}
	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for msg := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(feed.Close)
	t.Cleanup(func() { close(frames) })

	channel := notify.NewChannel("ws"+strings.TrimPrefix(feed.URL, "http"), 10,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	runCtx, stopRun := context.WithCancel(context.Background())
	go channel.Run(runCtx)
	t.Cleanup(func() {
		stopRun()
		channel.Close()
	})

	mux := http.NewServeMux()
	loginStub(mux)
	env := newEnvNotify(t, mux, nil, nil, channel)
	env.signIn()

	resp := env.get("/notifications/stream")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stream status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	// The subscription is registered before the response headers go out, so
	// a frame sent now cannot slip past the stream.
	select {
	case frames <- "Leave request approved":
	case <-time.After(5 * time.Second):
		t.Fatal("feed connection never established")
	}

	events := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if data, ok := strings.CutPrefix(sc.Text(), "data: "); ok {
				events <- data
				return
			}
		}
	}()

	select {
	case data := <-events:
		var event struct {
			Message string `json:"message"`
			Unread  int    `json:"unread"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			t.Fatalf("decoding event %q: %v", data, err)
		}
		if event.Message != "Leave request approved" {
			t.Errorf("message = %q, want the feed's text", event.Message)
		}
		if event.Unread != 1 {
			t.Errorf("unread = %d, want 1", event.Unread)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event came out of the stream")
	}
}
