// Package models holds the records persisted by the notebook store and
// rendered by the views. They mirror the database tables one to one.
package models

import (
	"strings"
	"time"
)

// ArtifactType is the stored enum value of an artifact's kind.
type ArtifactType string

const (
	ArtifactDevLog   ArtifactType = "DevLog"
	ArtifactBlogPost ArtifactType = "BlogPost"
	ArtifactLink     ArtifactType = "Link"
	ArtifactImage    ArtifactType = "Image"
)

// ArtifactTypes lists every artifact type in display order.
var ArtifactTypes = []ArtifactType{ArtifactDevLog, ArtifactBlogPost, ArtifactLink, ArtifactImage}

// Label returns the human form used in frontmatter ("Dev Log", "Blog Post", ...).
func (t ArtifactType) Label() string {
	switch t {
	case ArtifactDevLog:
		return "Dev Log"
	case ArtifactBlogPost:
		return "Blog Post"
	case ArtifactLink:
		return "Link"
	case ArtifactImage:
		return "Image"
	}
	return string(t)
}

// Valid reports whether t is one of the known artifact types.
func (t ArtifactType) Valid() bool {
	for _, v := range ArtifactTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ArtifactTypeFromLabel resolves a frontmatter label to its stored value.
func ArtifactTypeFromLabel(label string) (ArtifactType, bool) {
	for _, v := range ArtifactTypes {
		if v.Label() == label {
			return v, true
		}
	}
	return "", false
}

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	StatusIdeation   ProjectStatus = "Ideation"
	StatusInProgress ProjectStatus = "InProgress"
	StatusShipped    ProjectStatus = "Shipped"
)

// Label returns a display string for the status.
func (s ProjectStatus) Label() string {
	if s == StatusInProgress {
		return "In Progress"
	}
	return string(s)
}

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	return s == StatusIdeation || s == StatusInProgress || s == StatusShipped
}

// Role is a user's permission level.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Project groups artifacts. The LLM fields are free text written by a
// summarisation job outside this repository.
type Project struct {
	ID                 string
	Name               string
	Description        string
	Status             ProjectStatus
	IdeationDate       time.Time // zero when unset
	StartDate          time.Time // zero when unset
	ShippedDate        time.Time // zero when unset
	LLMSummary         string
	LLMSentimentPhrase string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Artifact is a published unit of content backed by an MDX file at ContentPath.
type Artifact struct {
	ID          string
	Title       string
	PublishDate time.Time
	IsFeatured  bool
	ContentPath string
	Type        ArtifactType
	ProjectIDs  []string
	TagIDs      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Slug derives the URL slug from the content file name.
func (a Artifact) Slug() string {
	name := a.ContentPath
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".mdx")
}

// Reaction is a short review attached to exactly one of a project or an artifact.
type Reaction struct {
	ID         string
	Emoji      string
	ReviewText string
	UserID     string
	UserName   string // filled on reads
	ProjectID  string // empty when attached to an artifact
	ArtifactID string // empty when attached to a project
	CreatedAt  time.Time
}

// Image is an uploaded picture served from the static uploads directory.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
