// Package views holds the default page templates for a notebook site.
//
// Pages are html/template files embedded in the binary and exposed as
// templ components, so they plug into notebook.ViewFuncs next to any
// generated templ views.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/darkhorsekelly/notebook"
	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/markdown"
	"github.com/darkhorsekelly/notebook/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"date":      formatDate,
	"markdown":  renderBody,
	"websiteLD": func(cfg notebook.SiteConfig) template.JS { return template.JS(notebook.WebsiteJsonLD(cfg)) },
	"articleLD": articleLD,
	"tagNames":  tagNames,
	"tagClass":  TagClass,
	"join":      Join,
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"home.html", "artifact.html", "projects.html", "project.html",
		"login.html", "dashboard.html", "images.html", "error.html",
	} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
}

// page wraps data for templates that are not given a Site and Meta.
type page struct {
	Site notebook.SiteConfig
	Meta notebook.PageMeta
	Data any
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "layout", data)
	})
}

// New returns the default views for a site. cfg should already have its
// defaults applied.
func New(cfg notebook.SiteConfig) notebook.ViewFuncs {
	simple := func(name, title string, data any) templ.Component {
		return component(name, page{Site: cfg, Meta: notebook.PageMeta{Title: title}, Data: data})
	}
	return notebook.ViewFuncs{
		Home:     func(p notebook.HomePage) templ.Component { return component("home.html", p) },
		Artifact: func(p notebook.ArtifactPage) templ.Component { return component("artifact.html", p) },
		Projects: func(p notebook.ProjectsPage) templ.Component { return component("projects.html", p) },
		Project:  func(p notebook.ProjectPage) templ.Component { return component("project.html", p) },
		AdminLogin: func(site notebook.SiteConfig, showError bool, csrfToken string) templ.Component {
			return component("login.html", page{
				Site: site,
				Meta: notebook.PageMeta{Title: "Admin"},
				Data: loginData{ShowError: showError, CSRFToken: csrfToken},
			})
		},
		AdminDashboard: func(p notebook.AdminPage) templ.Component {
			return component("dashboard.html", dashboardData{AdminPage: p, Meta: notebook.PageMeta{Title: "Admin"}})
		},
		AdminImages: func(images []models.Image, csrfToken string) templ.Component {
			return simple("images.html", "Images", imagesData{Images: images, CSRFToken: csrfToken})
		},
		NotFound: func() templ.Component {
			return simple("error.html", "Not found", errorData{Code: 404, Message: "That page does not exist."})
		},
		ServerError: func() templ.Component {
			return simple("error.html", "Server error", errorData{Code: 500, Message: "Something went wrong on our end."})
		},
	}
}

type loginData struct {
	ShowError bool
	CSRFToken string
}

type dashboardData struct {
	notebook.AdminPage
	Meta notebook.PageMeta
}

type imagesData struct {
	Images    []models.Image
	CSRFToken string
}

type errorData struct {
	Code    int
	Message string
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// renderBody renders an MDX body, dropping import and export lines first.
func renderBody(body string) (template.HTML, error) {
	out, err := markdown.Render([]byte(content.StripESM(body)))
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

func articleLD(p notebook.ArtifactPage) template.JS {
	return template.JS(notebook.ArticleJsonLD(p.Entry, tagNames(p.Tags), p.Site))
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "pill active"
	}
	return "pill"
}

// Join is strings.Join for templates.
func Join(vals []string) string {
	return strings.Join(vals, ", ")
}
