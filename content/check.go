package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/darkhorsekelly/notebook/models"
)

// Catalog is the backing store consulted by Check.
type Catalog interface {
	ProjectFinder
	TagFinder
	ListArtifacts(ctx context.Context) ([]models.Artifact, error)
}

// FileReport collects everything wrong with one content file.
type FileReport struct {
	Path              string
	ParseError        string
	Issues            []Issue
	InvalidProjectIDs []string
	InvalidTagIDs     []string
	EmptyBody         bool
}

// OK reports whether the file parsed, validated and references known rows.
func (f FileReport) OK() bool {
	return f.ParseError == "" && len(f.Issues) == 0 &&
		len(f.InvalidProjectIDs) == 0 && len(f.InvalidTagIDs) == 0 && !f.EmptyBody
}

// Report is the outcome of checking a whole content directory.
type Report struct {
	Files       []FileReport
	Sync        SyncStatus
	HasFeatured bool
}

// OK is true when every file is clean and nothing is out of sync.
func (r Report) OK() bool {
	for _, f := range r.Files {
		if !f.OK() {
			return false
		}
	}
	return !r.Sync.NeedsUpdate
}

// Warnings lists problems that do not fail the check.
func (r Report) Warnings() []string {
	var out []string
	if !r.HasFeatured {
		out = append(out, "no artifact is marked is_featured")
	}
	for _, p := range r.Sync.Untracked {
		out = append(out, p+": no artifact record")
	}
	for _, p := range r.Sync.Orphaned {
		out = append(out, p+": record has no content file")
	}
	return out
}

// Check validates every document and reconciles it with the catalog.
func Check(ctx context.Context, docs []Document, failures []LoadError, catalog Catalog) (Report, error) {
	var report Report
	for _, f := range failures {
		report.Files = append(report.Files, FileReport{Path: f.Path, ParseError: f.Err.Error()})
	}

	for _, d := range docs {
		fr := FileReport{Path: d.Path, EmptyBody: strings.TrimSpace(d.Body) == ""}
		res := ValidateFrontmatter(d.Frontmatter)
		if !res.Success {
			fr.Issues = res.Issues
			report.Files = append(report.Files, fr)
			continue
		}
		if res.Data.IsFeatured {
			report.HasFeatured = true
		}
		projects, err := ValidateProjectReferences(ctx, res.Data.ProjectIDs, catalog)
		if err != nil {
			return Report{}, fmt.Errorf("%s: %w", d.Path, err)
		}
		tags, err := ValidateTagReferences(ctx, res.Data.TagIDs, catalog)
		if err != nil {
			return Report{}, fmt.Errorf("%s: %w", d.Path, err)
		}
		fr.InvalidProjectIDs = projects.InvalidIDs
		fr.InvalidTagIDs = tags.InvalidIDs
		report.Files = append(report.Files, fr)
	}

	records, err := catalog.ListArtifacts(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load artifacts: %w", err)
	}
	report.Sync = CheckSync(records, docs)
	return report, nil
}
