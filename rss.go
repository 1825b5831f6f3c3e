package notebook

import (
	"encoding/xml"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/darkhorsekelly/notebook/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title      string   `xml:"title"`
	Link       string   `xml:"link"`
	Categories []string `xml:"category,omitempty"`
	PubDate    string   `xml:"pubDate"`
	GUID       string   `xml:"guid"`
}

func (a *App) renderRSS(c echo.Context, entries []content.Entry) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		pubDate := ""
		if t := e.Meta.PublishTime(); !t.IsZero() {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := BuildURL(base, "artifacts", e.Slug)
		items = append(items, rssItem{
			Title:      e.Meta.Title,
			Link:       link,
			Categories: []string{e.Artifact().Type.Label()},
			PubDate:    pubDate,
			GUID:       link,
		})
	}
	description := a.Config.Description
	if description == "" {
		description = a.Config.Tagline
	}
	return renderXML(c, "application/rss+xml; charset=utf-8", rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: description,
			Items:       items,
		},
	})
}
