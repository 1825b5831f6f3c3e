package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
)

// SyncResult lists what SyncContent did, or would do on a dry run, per
// content path.
type SyncResult struct {
	Created   []string
	Updated   []string
	Unchanged []string
	Skipped   map[string]string // path -> reason
}

// Changed reports whether any row was or would be written.
func (r SyncResult) Changed() bool {
	return len(r.Created)+len(r.Updated) > 0
}

// SyncContent upserts an artifact row for every entry whose project and tag
// references exist. With dryRun nothing is written.
func SyncContent(ctx context.Context, s *Store, entries []content.Entry, dryRun bool, logger *slog.Logger) (SyncResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	res := SyncResult{Skipped: map[string]string{}}
	for _, e := range entries {
		projects, err := content.ValidateProjectReferences(ctx, e.Meta.ProjectIDs, s)
		if err != nil {
			return res, fmt.Errorf("notebook: sync %s: %w", e.Path, err)
		}
		tags, err := content.ValidateTagReferences(ctx, e.Meta.TagIDs, s)
		if err != nil {
			return res, fmt.Errorf("notebook: sync %s: %w", e.Path, err)
		}
		if !projects.Valid || !tags.Valid {
			res.Skipped[e.Path] = fmt.Sprintf("unknown ids: %v", append(projects.InvalidIDs, tags.InvalidIDs...))
			continue
		}

		want := e.Artifact()
		have, err := s.GetArtifactByPath(ctx, e.Path)
		switch {
		case errors.Is(err, ErrNotFound):
			res.Created = append(res.Created, e.Path)
		case err != nil:
			return res, fmt.Errorf("notebook: sync %s: %w", e.Path, err)
		case sameArtifact(have, want):
			res.Unchanged = append(res.Unchanged, e.Path)
			continue
		default:
			res.Updated = append(res.Updated, e.Path)
		}
		if dryRun {
			continue
		}
		if _, err := s.SaveArtifact(ctx, want); err != nil {
			return res, fmt.Errorf("notebook: sync %s: %w", e.Path, err)
		}
		logger.InfoContext(ctx, "artifact synced", "path", e.Path, "title", want.Title)
	}
	return res, nil
}

func sameArtifact(have, want models.Artifact) bool {
	return have.Title == want.Title &&
		have.PublishDate.Equal(want.PublishDate) &&
		have.IsFeatured == want.IsFeatured &&
		have.Type == want.Type &&
		sameIDs(have.ProjectIDs, want.ProjectIDs) &&
		sameIDs(have.TagIDs, want.TagIDs)
}

func sameIDs(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}
