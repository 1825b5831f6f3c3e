package notebook

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/darkhorsekelly/notebook/models"
)

func text(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

// stubViews renders a short summary of each page so tests can assert on the
// data handlers pass to the templates.
func stubViews() ViewFuncs {
	return ViewFuncs{
		Home: func(p HomePage) templ.Component {
			return text("home entries=%d featured=%d tags=%d active=%s", len(p.Entries), len(p.Featured), len(p.Tags), p.ActiveTag)
		},
		Artifact: func(p ArtifactPage) templ.Component {
			return text("artifact %s projects=%d tags=%d reactions=%d", p.Entry.Meta.Title, len(p.Projects), len(p.Tags), len(p.Reactions))
		},
		Projects: func(p ProjectsPage) templ.Component {
			return text("projects=%d", len(p.Projects))
		},
		Project: func(p ProjectPage) templ.Component {
			return text("project %s artifacts=%d reactions=%d", p.Project.Name, len(p.Artifacts), len(p.Reactions))
		},
		AdminLogin: func(_ SiteConfig, showError bool, _ string) templ.Component {
			return text("login error=%t", showError)
		},
		AdminDashboard: func(p AdminPage) templ.Component {
			return text("dashboard ok=%t tags=%d msg=%s", p.Report.OK(), len(p.Tags), p.Message)
		},
		AdminImages: func(images []models.Image, _ string) templ.Component {
			return text("images=%d", len(images))
		},
		NotFound:    func() templ.Component { return text("not found") },
		ServerError: func() templ.Component { return text("server error") },
	}
}

const testPassword = "hunter2"

func setupTestApp(t *testing.T) *App {
	t.Helper()
	s, cleanup := setupTestStore(t)
	t.Cleanup(cleanup)
	if _, err := Seed(context.Background(), s); err != nil {
		t.Fatal(err)
	}

	a := New(SiteConfig{
		ContentDir:    "site/content",
		AdminPassword: testPassword,
		SessionSecret: "test-session-secret-0123456789abcdef",
	}, stubViews(), WithStore(s), WithStaticDir(t.TempDir()))
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func do(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string) *httptest.ResponseRecorder {
	return do(a, httptest.NewRequest(http.MethodGet, target, nil))
}

// postForm sends a form with a matching CSRF cookie and header, plus any
// extra cookies.
func postForm(a *App, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", "test-csrf-token")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: "test-csrf-token"})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(a, req)
}

func login(t *testing.T, a *App) *http.Cookie {
	t.Helper()
	rec := postForm(a, "/admin/login/", url.Values{"password": {testPassword}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, body %q", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionName {
			return c
		}
	}
	t.Fatal("no session cookie after login")
	return nil
}

func TestHandleHome(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got, want := rec.Body.String(), "home entries=5 featured=1 tags=5 active="; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}

	rec = get(a, "/?tag="+SeedTagGameDesign)
	if !strings.HasPrefix(rec.Body.String(), "home entries=1 ") {
		t.Errorf("tag filter body = %q", rec.Body.String())
	}
}

func TestHandleArtifact(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/artifacts/devlog-001-foundation/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := "artifact Dev Log #1: Setting up the Foundation projects=1 tags=3 reactions=1"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestHandleArtifactNotFound(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/artifacts/missing/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec.Body.String() != "not found" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHandleArtifactAddsTrailingSlash(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/artifacts/devlog-001-foundation")
	if rec.Code != http.StatusMovedPermanently {
		t.Errorf("status = %d, want 301", rec.Code)
	}
}

func TestHandleProjects(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/projects/")
	if rec.Body.String() != "projects=3" {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = get(a, "/projects/"+SeedProjectNotebook+"/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if want := "project Generalist's Notebook artifacts=3 reactions=1"; rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}

	rec = get(a, "/projects/does-not-exist/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing project status = %d, want 404", rec.Code)
	}
}

func TestHandleFeedAndSitemap(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("feed status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "rss+xml") {
		t.Errorf("feed content type = %q", ct)
	}
	if n := strings.Count(rec.Body.String(), "<item>"); n != 5 {
		t.Errorf("feed items = %d, want 5", n)
	}

	rec = get(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/artifacts/island-game-design/") {
		t.Error("sitemap missing artifact URL")
	}
	if !strings.Contains(body, "/projects/"+SeedProjectIsland+"/") {
		t.Error("sitemap missing project URL")
	}
}

func TestAdminLogin(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/admin/")
	if rec.Body.String() != "login error=false" {
		t.Errorf("unauthenticated admin body = %q", rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}

	rec = postForm(a, "/admin/login/", url.Values{"password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", rec.Code)
	}
	if rec.Body.String() != "login error=true" {
		t.Errorf("bad password body = %q", rec.Body.String())
	}

	cookie := login(t, a)
	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(cookie)
	rec = do(a, req)
	if !strings.HasPrefix(rec.Body.String(), "dashboard ok=true tags=5") {
		t.Errorf("dashboard body = %q", rec.Body.String())
	}
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := setupTestApp(t)

	for i := 0; i < 5; i++ {
		postForm(a, "/admin/login/", url.Values{"password": {"wrong"}})
	}
	rec := postForm(a, "/admin/login/", url.Values{"password": {testPassword}})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestAdminCreateTag(t *testing.T) {
	a := setupTestApp(t)
	cookie := login(t, a)

	rec := postForm(a, "/admin/tags/", url.Values{"name": {"Procedural Generation"}}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if want := `dashboard ok=true tags=6 msg=Tag "Procedural Generation" created.`; rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}

	rec = postForm(a, "/admin/tags/", url.Values{"name": {"sqlite"}}, cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("duplicate status = %d, want 422", rec.Code)
	}
	if !strings.HasSuffix(rec.Body.String(), "msg="+MsgTagExists) {
		t.Errorf("duplicate body = %q", rec.Body.String())
	}

	rec = postForm(a, "/admin/tags/", url.Values{"name": {""}}, cookie)
	if !strings.HasSuffix(rec.Body.String(), "msg="+MsgTagNameRequired) {
		t.Errorf("empty body = %q", rec.Body.String())
	}
}

func TestAdminCreateTagRequiresLogin(t *testing.T) {
	a := setupTestApp(t)

	rec := postForm(a, "/admin/tags/", url.Values{"name": {"Sneaky"}})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if _, err := a.Store.TagByName(context.Background(), "Sneaky"); err == nil {
		t.Error("tag should not be created without a session")
	}
}

func TestAdminCreateTagRequiresCSRF(t *testing.T) {
	a := setupTestApp(t)
	cookie := login(t, a)

	req := httptest.NewRequest(http.MethodPost, "/admin/tags/", strings.NewReader("name=NoToken"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := do(a, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestAdminSync(t *testing.T) {
	a := setupTestApp(t)
	cookie := login(t, a)

	rec := postForm(a, "/admin/sync/", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Synced: 0 created, 0 updated, 5 unchanged, 0 skipped.") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestCacheControl(t *testing.T) {
	a := setupTestApp(t)
	cookie := login(t, a)

	tests := []struct {
		name string
		rec  *httptest.ResponseRecorder
		want string
	}{
		{"home", get(a, "/"), "public, max-age=300"},
		{"artifact", get(a, "/artifacts/devlog-001-foundation/"), "public, max-age=300"},
		{"feed", get(a, "/feed.xml"), "public, max-age=3600"},
		{"admin page", get(a, "/admin/"), "no-store"},
		{"create tag", postForm(a, "/admin/tags/", url.Values{"name": {"Caching"}}, cookie), "no-store"},
		{"sync", postForm(a, "/admin/sync/", nil, cookie), "no-store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheControlPolicy(t *testing.T) {
	a := setupTestApp(t)
	tests := []struct {
		method, path string
		watch        bool
		want         string
	}{
		{http.MethodGet, "/public/site.css", false, "public, max-age=3600"},
		{http.MethodGet, "/public/uploads/cover.jpg", false, "public, max-age=86400"},
		{http.MethodGet, "/public/fonts/inter.woff2", false, "public, max-age=31536000, immutable"},
		{http.MethodGet, "/projects/", true, "no-cache"},
		{http.MethodGet, "/public/fonts/inter.woff2", true, "public, max-age=31536000, immutable"},
		{http.MethodPost, "/artifacts/devlog-001-foundation/", false, "no-store"},
		{http.MethodDelete, "/admin/images/cover.jpg/", false, "no-store"},
	}
	for _, tt := range tests {
		a.Config.WatchContent = tt.watch
		got := a.cacheControl(httptest.NewRequest(tt.method, tt.path, nil))
		if got != tt.want {
			t.Errorf("%s %s (watch=%t) = %q, want %q", tt.method, tt.path, tt.watch, got, tt.want)
		}
	}
}

func TestAdminImagesRequiresLogin(t *testing.T) {
	a := setupTestApp(t)

	rec := get(a, "/admin/images/")
	if rec.Code != http.StatusSeeOther {
		t.Errorf("unauthenticated status = %d, want 303", rec.Code)
	}

	cookie := login(t, a)
	req := httptest.NewRequest(http.MethodGet, "/admin/images/", nil)
	req.AddCookie(cookie)
	rec = do(a, req)
	if rec.Body.String() != "images=0" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestSetupRequiresSecrets(t *testing.T) {
	a := New(SiteConfig{}, stubViews())
	if err := a.Setup(); err == nil {
		t.Error("expected error without AdminPassword")
	}
	a = New(SiteConfig{AdminPassword: "x"}, stubViews())
	if err := a.Setup(); err == nil {
		t.Error("expected error without SessionSecret")
	}
}
