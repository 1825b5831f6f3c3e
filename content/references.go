package content

import (
	"context"
	"fmt"

	"github.com/darkhorsekelly/notebook/models"
)

// ProjectFinder returns the projects whose IDs are in ids. Unknown IDs are
// simply absent from the result.
type ProjectFinder interface {
	FindProjects(ctx context.Context, ids []string) ([]models.Project, error)
}

// TagFinder returns the tags whose IDs are in ids.
type TagFinder interface {
	FindTags(ctx context.Context, ids []string) ([]models.Tag, error)
}

// ProjectReferences is the outcome of ValidateProjectReferences. Projects
// holds the rows that were found; InvalidIDs lists the requested IDs with no
// matching row, in request order without repeats. Valid is true when
// InvalidIDs is empty.
type ProjectReferences struct {
	Valid      bool
	Projects   []models.Project
	InvalidIDs []string
}

// TagReferences is the tag counterpart of ProjectReferences.
type TagReferences struct {
	Valid      bool
	Tags       []models.Tag
	InvalidIDs []string
}

// ValidateProjectReferences confirms every id names an existing project.
func ValidateProjectReferences(ctx context.Context, ids []string, finder ProjectFinder) (ProjectReferences, error) {
	if len(ids) == 0 {
		return ProjectReferences{Valid: true}, nil
	}
	found, err := finder.FindProjects(ctx, ids)
	if err != nil {
		return ProjectReferences{}, fmt.Errorf("find projects: %w", err)
	}
	invalid := missingIDs(ids, found, func(p models.Project) string { return p.ID })
	return ProjectReferences{Valid: len(invalid) == 0, Projects: found, InvalidIDs: invalid}, nil
}

// ValidateTagReferences confirms every id names an existing tag.
func ValidateTagReferences(ctx context.Context, ids []string, finder TagFinder) (TagReferences, error) {
	if len(ids) == 0 {
		return TagReferences{Valid: true}, nil
	}
	found, err := finder.FindTags(ctx, ids)
	if err != nil {
		return TagReferences{}, fmt.Errorf("find tags: %w", err)
	}
	invalid := missingIDs(ids, found, func(t models.Tag) string { return t.ID })
	return TagReferences{Valid: len(invalid) == 0, Tags: found, InvalidIDs: invalid}, nil
}

// missingIDs returns the ids with no matching record, in input order and
// without repeats.
func missingIDs[T any](ids []string, found []T, idOf func(T) string) []string {
	known := make(map[string]struct{}, len(found))
	for _, rec := range found {
		known[idOf(rec)] = struct{}{}
	}
	var invalid []string
	seen := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := known[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		invalid = append(invalid, id)
	}
	return invalid
}
