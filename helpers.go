package notebook

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterRelated finds entries that share at least one tag ID with current.
func FilterRelated(current content.Entry, entries []content.Entry) []content.Entry {
	var related []content.Entry
	for _, e := range entries {
		if e.Path == current.Path {
			continue
		}
		for _, id := range current.Meta.TagIDs {
			if e.HasTag(id) {
				related = append(related, e)
				break
			}
		}
	}
	return related
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Tagline,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

// ArticleJsonLD returns a JSON-LD string for an artifact. Blog posts are
// BlogPosting; every other type is a TechArticle.
func ArticleJsonLD(e content.Entry, keywords []string, cfg SiteConfig) string {
	artifact := e.Artifact()
	kind := "TechArticle"
	if artifact.Type == models.ArtifactBlogPost {
		kind = "BlogPosting"
	}
	link := BuildURL(cfg.URL, "artifacts", e.Slug)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         kind,
		"headline":      e.Meta.Title,
		"datePublished": artifact.PublishDate.Format(time.DateOnly),
		"url":           link,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   link,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(keywords) > 0 {
		data["keywords"] = strings.Join(keywords, ", ")
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
