package content

import (
	"sort"

	"github.com/darkhorsekelly/notebook/models"
)

// SyncStatus describes drift between content files and artifact records.
// Only OutOfSync drives NeedsUpdate; Untracked and Orphaned are informational.
type SyncStatus struct {
	NeedsUpdate bool
	OutOfSync   []string // files whose title differs from the stored record
	Untracked   []string // files with no stored record
	Orphaned    []string // records with no file
}

// CheckSync compares each document's frontmatter title with the record
// stored under the same content path.
func CheckSync(records []models.Artifact, docs []Document) SyncStatus {
	byPath := make(map[string]models.Artifact, len(records))
	for _, r := range records {
		byPath[r.ContentPath] = r
	}
	var status SyncStatus
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		seen[d.Path] = struct{}{}
		rec, ok := byPath[d.Path]
		if !ok {
			status.Untracked = append(status.Untracked, d.Path)
			continue
		}
		if rec.Title != d.Title() {
			status.OutOfSync = append(status.OutOfSync, d.Path)
		}
	}
	for _, r := range records {
		if _, ok := seen[r.ContentPath]; !ok {
			status.Orphaned = append(status.Orphaned, r.ContentPath)
		}
	}
	sort.Strings(status.Orphaned)
	status.NeedsUpdate = len(status.OutOfSync) > 0
	return status
}
