package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/darkhorsekelly/notebook/models"
)

func validFrontmatter() map[string]any {
	return map[string]any{
		"title":        "Test Dev Log",
		"publish_date": "2025-01-15T10:00:00Z",
		"is_featured":  true,
		"project_ids":  []any{"550e8400-e29b-41d4-a716-446655440000"},
		"tag_ids":      []any{"550e8400-e29b-41d4-a716-446655440001", "550e8400-e29b-41d4-a716-446655440002"},
	}
}

func with(key string, value any) map[string]any {
	m := validFrontmatter()
	m[key] = value
	return m
}

func issueFields(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Field
	}
	return out
}

func TestValidateFrontmatterRoundTrip(t *testing.T) {
	inputs := []map[string]any{
		validFrontmatter(),
		with("type", "Blog Post"),
		with("publish_date", "2024-12-10"),
		with("is_featured", false),
	}
	for _, in := range inputs {
		res := ValidateFrontmatter(in)
		if !res.Success {
			t.Fatalf("ValidateFrontmatter(%v) failed: %v", in, res.Issues)
		}
		if diff := cmp.Diff(in, res.Data.Map()); diff != "" {
			t.Errorf("round trip mismatch (-in +out):\n%s", diff)
		}
	}
}

func TestValidateFrontmatterMissingFields(t *testing.T) {
	res := ValidateFrontmatter(map[string]any{
		"title":        "Test",
		"publish_date": "2025-01-15T10:00:00Z",
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	want := []string{"is_featured", "project_ids", "tag_ids"}
	if diff := cmp.Diff(want, issueFields(res.Issues)); diff != "" {
		t.Errorf("issue fields (-want +got):\n%s", diff)
	}
	for _, is := range res.Issues {
		if is.Code != CodeRequired {
			t.Errorf("%s code = %q, want %q", is.Field, is.Code, CodeRequired)
		}
	}
}

func TestValidateFrontmatterEmptyInput(t *testing.T) {
	res := ValidateFrontmatter(nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if len(res.Issues) != 5 {
		t.Errorf("issues = %v, want one per required field", res.Issues)
	}
}

func TestValidateFrontmatterInvalidTypes(t *testing.T) {
	res := ValidateFrontmatter(map[string]any{
		"title":        "",
		"publish_date": "invalid-date",
		"is_featured":  "yes",
		"project_ids":  "not-an-array",
		"tag_ids":      []any{"invalid-uuid"},
	})
	if res.Success {
		t.Fatal("expected failure")
	}
	want := []Issue{
		{Field: "is_featured", Code: CodeInvalidType},
		{Field: "project_ids", Code: CodeInvalidType},
		{Field: "publish_date", Code: CodeInvalidDate},
		{Field: "tag_ids.0", Code: CodeInvalidUUID},
		{Field: "title", Code: CodeTooSmall},
	}
	ignoreMessage := cmp.FilterPath(func(p cmp.Path) bool { return p.Last().String() == ".Message" }, cmp.Ignore())
	if diff := cmp.Diff(want, res.Issues, ignoreMessage); diff != "" {
		t.Errorf("issues (-want +got):\n%s", diff)
	}
}

func TestValidateFrontmatterFieldRules(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		ok    bool
	}{
		{"invalid uuids", with("project_ids", []any{"invalid-uuid-format"}), false},
		{"invalid date", with("publish_date", "not-a-date"), false},
		{"empty arrays", func() map[string]any {
			m := with("project_ids", []any{})
			m["tag_ids"] = []any{}
			return m
		}(), true},
		{"non-array tag ids", with("tag_ids", 123), false},
		{"string slice ids", with("tag_ids", []string{"550e8400-e29b-41d4-a716-446655440002"}), true},
		{"uuid version 0", with("tag_ids", []any{"550e8400-e29b-01d4-a716-446655440002"}), false},
		{"uuid wrong variant", with("tag_ids", []any{"550e8400-e29b-41d4-c716-446655440002"}), false},
		{"braced uuid", with("tag_ids", []any{"{550e8400-e29b-41d4-a716-446655440002}"}), false},
		{"numeric title", with("title", 42), false},
		{"null type", with("type", nil), false},
		{"invalid type", with("type", "Invalid Type"), false},
		{"extra keys allowed", with("summary", "free text"), true},
	}
	for _, label := range []string{"Dev Log", "Blog Post", "Link", "Image"} {
		tests = append(tests, struct {
			name  string
			input map[string]any
			ok    bool
		}{"type " + label, with("type", label), true})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateFrontmatter(tt.input)
			if res.Success != tt.ok {
				t.Errorf("Success = %v, want %v (issues %v)", res.Success, tt.ok, res.Issues)
			}
		})
	}
}

func TestValidateFrontmatterTypedData(t *testing.T) {
	res := ValidateFrontmatter(with("type", "Image"))
	if !res.Success {
		t.Fatalf("unexpected issues: %v", res.Issues)
	}
	if res.Data.Type != models.ArtifactImage {
		t.Errorf("Type = %q, want %q", res.Data.Type, models.ArtifactImage)
	}
	if got := res.Data.PublishTime().Format("2006-01-02"); got != "2025-01-15" {
		t.Errorf("PublishTime = %s", got)
	}
}

func TestToArtifact(t *testing.T) {
	res := ValidateFrontmatter(validFrontmatter())
	if !res.Success {
		t.Fatalf("unexpected issues: %v", res.Issues)
	}
	a := ToArtifact(res.Data, "/content/test-dev-log.mdx")
	if a.Title != "Test Dev Log" || !a.IsFeatured || a.ContentPath != "/content/test-dev-log.mdx" {
		t.Errorf("unexpected artifact %+v", a)
	}
	if a.Type != models.ArtifactDevLog {
		t.Errorf("Type = %q, want default %q", a.Type, models.ArtifactDevLog)
	}
	if a.PublishDate.UTC().Format("2006-01-02T15:04:05Z07:00") != "2025-01-15T10:00:00Z" {
		t.Errorf("PublishDate = %v", a.PublishDate)
	}
	if a.Slug() != "test-dev-log" {
		t.Errorf("Slug = %q", a.Slug())
	}

	res = ValidateFrontmatter(with("type", "Blog Post"))
	if got := ToArtifact(res.Data, "/content/test-blog-post.mdx").Type; got != models.ArtifactBlogPost {
		t.Errorf("Type = %q, want %q", got, models.ArtifactBlogPost)
	}
}

func TestIsUUID(t *testing.T) {
	tests := map[string]bool{
		"550e8400-e29b-41d4-a716-446655440000":          true,
		"550E8400-E29B-41D4-A716-446655440000":          true,
		"urn:uuid:550e8400-e29b-41d4-a716-446655440000": false,
		"550e8400e29b41d4a716446655440000":              false,
		"non-existent-id":                               false,
		"":                                              false,
	}
	for in, want := range tests {
		if got := IsUUID(in); got != want {
			t.Errorf("IsUUID(%q) = %v, want %v", in, got, want)
		}
	}
}
