package notebook

import (
	"encoding/xml"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, entries []content.Entry, projects []models.Project) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "projects")},
	}
	for _, e := range entries {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "artifacts", e.Slug),
			LastMod: e.Meta.PublishTime().Format(time.DateOnly),
		})
	}
	for _, p := range projects {
		u := sitemapURL{Loc: BuildURL(base, "projects", p.ID)}
		if !p.UpdatedAt.IsZero() {
			u.LastMod = p.UpdatedAt.Format(time.DateOnly)
		}
		urls = append(urls, u)
	}
	return renderXML(c, "application/xml; charset=utf-8", sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}
