package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/darkhorsekelly/notebook"
	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func siteEntries(t *testing.T) []content.Entry {
	t.Helper()
	docs, _, err := content.LoadDir("../site/content", "")
	if err != nil {
		t.Fatal(err)
	}
	return content.Entries(docs)
}

var testSite = notebook.SiteConfig{Name: "Field Notes", Tagline: "Things I made"}.WithDefaults()

func TestHomePage(t *testing.T) {
	v := New(testSite)
	entries := siteEntries(t)
	html := render(t, v.Home(notebook.HomePage{
		Site:      testSite,
		Meta:      notebook.PageMeta{Title: testSite.Name},
		Featured:  entries[:1],
		Entries:   entries,
		Tags:      []models.Tag{{ID: "t1", Name: "Go"}, {ID: "t2", Name: "SQLite"}},
		ActiveTag: "t2",
	}))
	assertContains(t, html,
		"<title>Field Notes</title>",
		"Things I made",
		`<a class="pill active" href="/?tag=t2">SQLite</a>`,
		`<a class="pill" href="/">All</a>`,
		"/artifacts/devlog-002-database/",
		`"@type":"WebSite"`,
	)
}

func TestHomePageEmpty(t *testing.T) {
	html := render(t, New(testSite).Home(notebook.HomePage{Site: testSite}))
	assertContains(t, html, "Nothing published yet.")
	if strings.Contains(html, "Featured") {
		t.Error("featured section should be hidden")
	}
}

func TestArtifactPage(t *testing.T) {
	var entry content.Entry
	for _, e := range siteEntries(t) {
		if e.Slug == "devlog-001-foundation" {
			entry = e
		}
	}
	if entry.Slug == "" {
		t.Fatal("devlog-001-foundation not found")
	}

	html := render(t, New(testSite).Artifact(notebook.ArtifactPage{
		Site:      testSite,
		Meta:      notebook.PageMeta{Title: entry.Meta.Title},
		Entry:     entry,
		Projects:  []models.Project{{ID: "p1", Name: "Generalist's Notebook"}},
		Tags:      []models.Tag{{ID: "t1", Name: "Go"}},
		Reactions: []models.Reaction{{Emoji: "📚", ReviewText: "Helpful", UserName: "Guest User"}},
	}))
	assertContains(t, html,
		"Dev Log · Dec 10, 2024",
		`<a href="/projects/p1/">Generalist&#39;s Notebook</a>`,
		`<h1 id="setting-up-the-foundation">Setting up the Foundation</h1>`,
		"Helpful",
		`"@type":"TechArticle"`,
		`"keywords":"Go"`,
	)
}

func TestProjectPages(t *testing.T) {
	v := New(testSite)
	project := models.Project{
		ID:           "p1",
		Name:         "Codename Island",
		Status:       models.StatusIdeation,
		IdeationDate: time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
		LLMSummary:   "Early-stage game concept",
	}

	html := render(t, v.Projects(notebook.ProjectsPage{Site: testSite, Projects: []models.Project{project}}))
	assertContains(t, html, `<a href="/projects/p1/">Codename Island</a>`, "since Nov 15, 2024")

	html = render(t, v.Project(notebook.ProjectPage{
		Site:    testSite,
		Project: project,
		Artifacts: []models.Artifact{{
			Title:       "Island Mechanics",
			ContentPath: "/content/island-game-design.mdx",
			Type:        models.ArtifactDevLog,
			PublishDate: time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		}},
	}))
	assertContains(t, html,
		"Early-stage game concept",
		`<a href="/artifacts/island-game-design/">Island Mechanics</a>`,
		"ideated Nov 15, 2024",
	)
	if strings.Contains(html, "shipped") {
		t.Error("unset shipped date should be hidden")
	}
}

func TestAdminPages(t *testing.T) {
	v := New(testSite)

	html := render(t, v.AdminLogin(testSite, true, "tok123"))
	assertContains(t, html, "Wrong password.", `name="_csrf" value="tok123"`)

	html = render(t, v.AdminDashboard(notebook.AdminPage{
		Site: testSite,
		Report: content.Report{Files: []content.FileReport{
			{Path: "/content/bad.mdx", InvalidTagIDs: []string{"missing-tag"}},
		}},
		Tags:      []models.Tag{{ID: "t1", Name: "Go"}},
		Counts:    map[string]int{"tags": 1},
		Message:   `Tag "Go" created.`,
		CSRFToken: "tok123",
	}))
	assertContains(t, html,
		"Tag &#34;Go&#34; created.",
		"Some content files need attention.",
		"unknown tags: missing-tag",
		`<td>tags</td><td>1</td>`,
	)

	html = render(t, v.AdminImages([]models.Image{{Filename: "island.jpg", Width: 800, Height: 600}}, "tok123"))
	assertContains(t, html, "/public/uploads/island.jpg", `data-csrf="tok123"`)
}

func TestErrorPages(t *testing.T) {
	v := New(testSite)
	assertContains(t, render(t, v.NotFound()), "<h2>404</h2>", "That page does not exist.")
	assertContains(t, render(t, v.ServerError()), "<h2>500</h2>")
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"a", "b"}); got != "a, b" {
		t.Errorf("Join = %q", got)
	}
}
