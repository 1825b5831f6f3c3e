package notebook

import (
	"context"
	"fmt"
	"time"

	"github.com/darkhorsekelly/notebook/models"
)

// Fixed IDs for the sample data. Bundled content files reference them.
const (
	SeedAdminUserID = "3b9e7c1a-52d4-4f8e-9a1b-0c2d3e4f5a60"
	SeedGuestUserID = "3b9e7c1a-52d4-4f8e-9a1b-0c2d3e4f5a61"

	SeedTagGo         = "7a1d2c3e-4b5f-4a6b-8c7d-9e0f1a2b3c01"
	SeedTagGameDesign = "7a1d2c3e-4b5f-4a6b-8c7d-9e0f1a2b3c02"
	SeedTagSQLite     = "7a1d2c3e-4b5f-4a6b-8c7d-9e0f1a2b3c03"
	SeedTagWebDev     = "7a1d2c3e-4b5f-4a6b-8c7d-9e0f1a2b3c04"
	SeedTagTooling    = "7a1d2c3e-4b5f-4a6b-8c7d-9e0f1a2b3c05"

	SeedProjectNotebook   = "5c8f0e2b-1d3a-4c5e-b6f7-8a9b0c1d2e01"
	SeedProjectIsland     = "5c8f0e2b-1d3a-4c5e-b6f7-8a9b0c1d2e02"
	SeedProjectAutomation = "5c8f0e2b-1d3a-4c5e-b6f7-8a9b0c1d2e03"

	seedArtifactDevLog1    = "9d4e5f6a-7b8c-4d9e-8f0a-1b2c3d4e5f01"
	seedArtifactDevLog2    = "9d4e5f6a-7b8c-4d9e-8f0a-1b2c3d4e5f02"
	seedArtifactBlogPost   = "9d4e5f6a-7b8c-4d9e-8f0a-1b2c3d4e5f03"
	seedArtifactIsland     = "9d4e5f6a-7b8c-4d9e-8f0a-1b2c3d4e5f04"
	seedArtifactAutomation = "9d4e5f6a-7b8c-4d9e-8f0a-1b2c3d4e5f05"
)

// SeedSummary holds row counts after seeding, keyed by table name.
type SeedSummary map[string]int

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	seedUsers = []models.User{
		{ID: SeedAdminUserID, Name: "AWK", Email: "fake@fake.com", Role: models.RoleAdmin},
		{ID: SeedGuestUserID, Name: "Guest User", Email: "guest@example.com", Role: models.RoleUser},
	}

	seedTags = []models.Tag{
		{ID: SeedTagGo, Name: "Go"},
		{ID: SeedTagGameDesign, Name: "Game Design"},
		{ID: SeedTagSQLite, Name: "SQLite"},
		{ID: SeedTagWebDev, Name: "Web Development"},
		{ID: SeedTagTooling, Name: "Tooling"},
	}

	seedProjects = []models.Project{
		{
			ID:                 SeedProjectNotebook,
			Name:               "Generalist's Notebook",
			Description:        "A personal website to showcase and organize creative projects and technical artifacts.",
			Status:             models.StatusInProgress,
			IdeationDate:       day("2024-12-01"),
			LLMSummary:         "A Go-based personal portfolio site with project tracking, artifact management, and AI-powered features for content discovery and sentiment analysis.",
			LLMSentimentPhrase: "Excited and productive momentum",
		},
		{
			ID:                 SeedProjectIsland,
			Name:               "Codename Island",
			Description:        "An experimental island survival game prototype exploring procedural generation and emergent gameplay.",
			Status:             models.StatusIdeation,
			IdeationDate:       day("2024-11-15"),
			LLMSummary:         "Early-stage game concept focusing on survival mechanics, procedural world generation, and player-driven narrative emergence.",
			LLMSentimentPhrase: "Curious exploration phase",
		},
		{
			ID:                 SeedProjectAutomation,
			Name:               "Development Automation Suite",
			Description:        "Collection of scripts and tools to streamline development workflow and project management.",
			Status:             models.StatusShipped,
			IdeationDate:       day("2024-10-01"),
			LLMSummary:         "Completed toolkit featuring GitHub automation, testing frameworks, and deployment scripts that significantly improved development velocity.",
			LLMSentimentPhrase: "Satisfied and accomplished",
		},
	}

	seedArtifacts = []models.Artifact{
		{
			ID:          seedArtifactDevLog1,
			Title:       "Dev Log #1: Setting up the Foundation",
			PublishDate: day("2024-12-10"),
			IsFeatured:  true,
			ContentPath: "/content/devlog-001-foundation.mdx",
			Type:        models.ArtifactDevLog,
			ProjectIDs:  []string{SeedProjectNotebook},
			TagIDs:      []string{SeedTagGo, SeedTagTooling, SeedTagWebDev},
		},
		{
			ID:          seedArtifactDevLog2,
			Title:       "Dev Log #2: Database Schema Design",
			PublishDate: day("2024-12-15"),
			ContentPath: "/content/devlog-002-database.mdx",
			Type:        models.ArtifactDevLog,
			ProjectIDs:  []string{SeedProjectNotebook},
			TagIDs:      []string{SeedTagSQLite, SeedTagTooling, SeedTagWebDev},
		},
		{
			ID:          seedArtifactBlogPost,
			Title:       "Lessons from Building My First Personal Site",
			PublishDate: day("2024-12-01"),
			ContentPath: "/content/blog-personal-site-lessons.mdx",
			Type:        models.ArtifactBlogPost,
			ProjectIDs:  []string{SeedProjectNotebook},
			TagIDs:      []string{SeedTagWebDev, SeedTagGo},
		},
		{
			ID:          seedArtifactIsland,
			Title:       "Game Design Doc: Island Survival Mechanics",
			PublishDate: day("2024-11-20"),
			ContentPath: "/content/island-game-design.mdx",
			Type:        models.ArtifactDevLog,
			ProjectIDs:  []string{SeedProjectIsland},
			TagIDs:      []string{SeedTagGameDesign},
		},
		{
			ID:          seedArtifactAutomation,
			Title:       "Automation Scripts Collection",
			PublishDate: day("2024-10-15"),
			ContentPath: "/content/automation-scripts.mdx",
			Type:        models.ArtifactLink,
			ProjectIDs:  []string{SeedProjectAutomation},
			TagIDs:      []string{SeedTagTooling, SeedTagWebDev},
		},
	}

	seedReactions = []models.Reaction{
		{Emoji: "🚀", ReviewText: "Love the direction this project is taking!", UserID: SeedGuestUserID, ProjectID: SeedProjectNotebook},
		{Emoji: "💡", ReviewText: "Interesting game concept, excited to see how it develops.", UserID: SeedGuestUserID, ProjectID: SeedProjectIsland},
		{Emoji: "✅", ReviewText: "These automation tools saved me hours of work.", UserID: SeedAdminUserID, ProjectID: SeedProjectAutomation},
		{Emoji: "📚", ReviewText: "Great technical deep-dive, very helpful setup guide.", UserID: SeedGuestUserID, ArtifactID: seedArtifactDevLog1},
		{Emoji: "🧠", ReviewText: "Solid database design patterns here.", UserID: SeedGuestUserID, ArtifactID: seedArtifactDevLog2},
		{Emoji: "🎯", ReviewText: "Relatable insights about building personal projects.", UserID: SeedAdminUserID, ArtifactID: seedArtifactBlogPost},
	}
)

// Seed clears the database and loads the sample users, tags, projects,
// artifacts and reactions.
func Seed(ctx context.Context, s *Store) (SeedSummary, error) {
	if err := s.Reset(ctx); err != nil {
		return nil, fmt.Errorf("notebook: seed: reset: %w", err)
	}
	for _, u := range seedUsers {
		if _, err := s.CreateUser(ctx, u); err != nil {
			return nil, fmt.Errorf("notebook: seed: user %s: %w", u.Email, err)
		}
	}
	for _, t := range seedTags {
		if _, err := s.insertTag(ctx, t.ID, t.Name); err != nil {
			return nil, fmt.Errorf("notebook: seed: tag %s: %w", t.Name, err)
		}
	}
	for _, p := range seedProjects {
		if _, err := s.CreateProject(ctx, p); err != nil {
			return nil, fmt.Errorf("notebook: seed: project %s: %w", p.Name, err)
		}
	}
	for _, a := range seedArtifacts {
		if _, err := s.SaveArtifact(ctx, a); err != nil {
			return nil, fmt.Errorf("notebook: seed: artifact %s: %w", a.ContentPath, err)
		}
	}
	for _, r := range seedReactions {
		if _, err := s.CreateReaction(ctx, r); err != nil {
			return nil, fmt.Errorf("notebook: seed: reaction %s: %w", r.Emoji, err)
		}
	}
	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("notebook: seed: count: %w", err)
	}
	return SeedSummary(counts), nil
}
