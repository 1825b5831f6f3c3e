package content

import (
	"sort"

	"github.com/darkhorsekelly/notebook/models"
)

// Entry is a document whose frontmatter passed validation.
type Entry struct {
	Document
	Meta Frontmatter
}

// Artifact maps the entry onto the database record shape.
func (e Entry) Artifact() models.Artifact {
	return ToArtifact(e.Meta, e.Path)
}

// HasTag reports whether the entry lists tagID.
func (e Entry) HasTag(tagID string) bool {
	for _, id := range e.Meta.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// Entries keeps the valid documents, newest first. Ties sort by path.
func Entries(docs []Document) []Entry {
	var out []Entry
	for _, d := range docs {
		res := ValidateFrontmatter(d.Frontmatter)
		if !res.Success {
			continue
		}
		out = append(out, Entry{Document: d, Meta: res.Data})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Meta.PublishTime(), out[j].Meta.PublishTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// ToArtifact maps validated frontmatter to an artifact record. Documents that
// omit type are treated as dev logs.
func ToArtifact(fm Frontmatter, contentPath string) models.Artifact {
	typ := fm.Type
	if typ == "" {
		typ = models.ArtifactDevLog
	}
	return models.Artifact{
		Title:       fm.Title,
		PublishDate: fm.PublishTime(),
		IsFeatured:  fm.IsFeatured,
		ContentPath: contentPath,
		Type:        typ,
		ProjectIDs:  append([]string(nil), fm.ProjectIDs...),
		TagIDs:      append([]string(nil), fm.TagIDs...),
	}
}
