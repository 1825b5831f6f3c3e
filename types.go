package notebook

import (
	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// HomePage is the data for the landing page.
type HomePage struct {
	Site      SiteConfig
	Meta      PageMeta
	Featured  []content.Entry
	Entries   []content.Entry
	Tags      []models.Tag
	ActiveTag string
}

// ArtifactPage is the data for a single artifact.
type ArtifactPage struct {
	Site      SiteConfig
	Meta      PageMeta
	Entry     content.Entry
	Projects  []models.Project
	Tags      []models.Tag
	Reactions []models.Reaction
	Related   []content.Entry
}

// ProjectsPage lists every project.
type ProjectsPage struct {
	Site     SiteConfig
	Meta     PageMeta
	Projects []models.Project
}

// ProjectPage is the data for a single project.
type ProjectPage struct {
	Site      SiteConfig
	Meta      PageMeta
	Project   models.Project
	Artifacts []models.Artifact
	Reactions []models.Reaction
}

// AdminPage is the data for the admin dashboard.
type AdminPage struct {
	Site      SiteConfig
	Report    content.Report
	Tags      []models.Tag
	Counts    map[string]int
	Message   string
	CSRFToken string
}
