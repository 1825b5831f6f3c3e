package notebook

import (
	"encoding/json"
	"testing"

	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Dev Log #1: Setting up the Foundation": "dev-log-1-setting-up-the-foundation",
		"  Hello,   World!  ":                   "hello-world",
		"Go":                                    "go",
		"---":                                   "",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"projects"}, "https://example.com/projects/"},
		{"https://example.com/", []string{"artifacts", "devlog-001"}, "https://example.com/artifacts/devlog-001/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func entry(path string, tags ...string) content.Entry {
	var e content.Entry
	e.Path = path
	e.Meta.TagIDs = tags
	return e
}

func TestFilterRelated(t *testing.T) {
	current := entry("/content/a.mdx", "go", "sqlite")
	all := []content.Entry{
		current,
		entry("/content/b.mdx", "sqlite"),
		entry("/content/c.mdx", "game"),
		entry("/content/d.mdx", "go", "sqlite"),
	}
	related := FilterRelated(current, all)
	if len(related) != 2 {
		t.Fatalf("related = %d, want 2", len(related))
	}
	if related[0].Path != "/content/b.mdx" || related[1].Path != "/content/d.mdx" {
		t.Errorf("related = %s, %s", related[0].Path, related[1].Path)
	}
}

func TestArticleJsonLD(t *testing.T) {
	e := entry("/content/post.mdx")
	e.Slug = "post"
	e.Meta.Title = "Lessons"
	e.Meta.PublishDate = "2024-12-01"
	e.Meta.Type = models.ArtifactBlogPost

	var data map[string]any
	raw := ArticleJsonLD(e, []string{"Go", "Web Development"}, SiteConfig{URL: "https://example.com", Name: "Notebook"})
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("invalid JSON-LD: %v", err)
	}
	if data["@type"] != "BlogPosting" {
		t.Errorf("@type = %v, want BlogPosting", data["@type"])
	}
	if data["url"] != "https://example.com/artifacts/post/" {
		t.Errorf("url = %v", data["url"])
	}
	if data["keywords"] != "Go, Web Development" {
		t.Errorf("keywords = %v", data["keywords"])
	}
	if data["datePublished"] != "2024-12-01" {
		t.Errorf("datePublished = %v", data["datePublished"])
	}
	if _, ok := data["author"]; ok {
		t.Error("author should be omitted when unset")
	}

	e.Meta.Type = models.ArtifactDevLog
	if err := json.Unmarshal([]byte(ArticleJsonLD(e, nil, SiteConfig{})), &data); err != nil {
		t.Fatal(err)
	}
	if data["@type"] != "TechArticle" {
		t.Errorf("@type = %v, want TechArticle", data["@type"])
	}
}
