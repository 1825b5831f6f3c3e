package notebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	_ "modernc.org/sqlite"

	"github.com/darkhorsekelly/notebook/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = sql.ErrNoRows
	// ErrDuplicateTag is returned when a tag name is already taken, ignoring case.
	ErrDuplicateTag = errors.New("tag already exists")
)

// Store wraps the SQLite database holding users, tags, projects, artifacts,
// reactions and uploaded images.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// Connection pragmas go in the DSN so every pooled connection gets them;
	// foreign_keys in particular is per connection.
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "synchronous(NORMAL)")
	db, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL DEFAULT 'User' CHECK (role IN ('Admin', 'User')),
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    provider TEXT NOT NULL,
    provider_account_id TEXT NOT NULL,
    UNIQUE (provider, provider_account_id)
);
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    session_token TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expires TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_key TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK (status IN ('Ideation', 'InProgress', 'Shipped')),
    ideation_date TEXT,
    start_date TEXT,
    shipped_date TEXT,
    llm_summary TEXT NOT NULL DEFAULT '',
    llm_sentiment_phrase TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS artifacts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    publish_date TEXT NOT NULL,
    is_featured INTEGER NOT NULL DEFAULT 0,
    content_path TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL CHECK (type IN ('DevLog', 'BlogPost', 'Link', 'Image')),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS project_artifacts (
    project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    artifact_id TEXT NOT NULL REFERENCES artifacts(id) ON DELETE CASCADE,
    PRIMARY KEY (project_id, artifact_id)
);
CREATE TABLE IF NOT EXISTS artifact_tags (
    artifact_id TEXT NOT NULL REFERENCES artifacts(id) ON DELETE CASCADE,
    tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (artifact_id, tag_id)
);
CREATE TABLE IF NOT EXISTS reactions (
    id TEXT PRIMARY KEY,
    emoji TEXT NOT NULL,
    review_text TEXT NOT NULL DEFAULT '',
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    project_id TEXT REFERENCES projects(id) ON DELETE CASCADE,
    artifact_id TEXT REFERENCES artifacts(id) ON DELETE CASCADE,
    created_at TEXT NOT NULL,
    CHECK ((project_id IS NULL) <> (artifact_id IS NULL))
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_artifacts_publish_date ON artifacts(publish_date);
CREATE INDEX IF NOT EXISTS idx_reactions_project ON reactions(project_id);
CREATE INDEX IF NOT EXISTS idx_reactions_artifact ON reactions(artifact_id);
`)
	if err != nil {
		return err
	}
	return s.migrateTagKeys()
}

// migrateTagKeys adds and backfills tags.name_key on databases created
// before the column existed, then enforces uniqueness on it.
func (s *Store) migrateTagKeys() error {
	if _, err := s.db.Exec(`ALTER TABLE tags ADD COLUMN name_key TEXT NOT NULL DEFAULT '';`); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
			return err
		}
	}
	rows, err := s.db.Query(`SELECT id, name FROM tags WHERE name_key = ''`)
	if err != nil {
		return err
	}
	pending := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			rows.Close()
			return err
		}
		pending[id] = name
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	for id, name := range pending {
		if _, err := s.db.Exec(`UPDATE tags SET name_key = ? WHERE id = ?`, tagKey(name), id); err != nil {
			return err
		}
	}
	_, err = s.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_name_key ON tags(name_key);`)
	return err
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseNullTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	return parseTime(s.String)
}

// inClause returns "?, ?, ?" and the ids as query args.
func inClause(ids []string) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

// --- users ---

// CreateUser inserts u, assigning an ID when empty.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	created := now()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO users (id, name, email, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, string(u.Role), created); err != nil {
		return models.User{}, err
	}
	u.CreatedAt = parseTime(created)
	return u, nil
}

// --- tags ---

// CreateTag inserts a tag named name. It returns ErrDuplicateTag when a tag
// with the same name exists under Unicode case folding.
func (s *Store) CreateTag(ctx context.Context, name string) (models.Tag, error) {
	return s.insertTag(ctx, uuid.NewString(), name)
}

func (s *Store) insertTag(ctx context.Context, id, name string) (models.Tag, error) {
	if _, err := s.TagByName(ctx, name); err == nil {
		return models.Tag{}, ErrDuplicateTag
	} else if !errors.Is(err, ErrNotFound) {
		return models.Tag{}, err
	}
	created := now()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO tags (id, name, name_key, created_at) VALUES (?, ?, ?, ?)`, id, name, tagKey(name), created); err != nil {
		if isUniqueViolation(err) {
			return models.Tag{}, ErrDuplicateTag
		}
		return models.Tag{}, err
	}
	return models.Tag{ID: id, Name: name, CreatedAt: parseTime(created)}, nil
}

// TagByName looks a tag up by its case-folded name.
func (s *Store) TagByName(ctx context.Context, name string) (models.Tag, error) {
	var t models.Tag
	var created string
	err := s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM tags WHERE name_key = ?`, tagKey(name)).
		Scan(&t.ID, &t.Name, &created)
	if err != nil {
		return models.Tag{}, err
	}
	t.CreatedAt = parseTime(created)
	return t, nil
}

// ListTags returns every tag ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.queryTags(ctx, `SELECT id, name, created_at FROM tags ORDER BY name_key, name`)
}

// FindTags returns the tags whose IDs are in ids.
func (s *Store) FindTags(ctx context.Context, ids []string) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	in, args := inClause(ids)
	return s.queryTags(ctx, `SELECT id, name, created_at FROM tags WHERE id IN (`+in+`) ORDER BY name_key, name`, args...)
}

// tagKey folds name so that "Über" and "über" collide. SQLite's NOCASE
// only folds ASCII.
func tagKey(name string) string {
	return cases.Fold().String(name)
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		var created string
		if err := rows.Scan(&t.ID, &t.Name, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = parseTime(created)
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// --- projects ---

const projectColumns = `id, name, description, status, ideation_date, start_date, shipped_date, llm_summary, llm_sentiment_phrase, created_at, updated_at`

// CreateProject inserts p, assigning an ID when empty.
func (s *Store) CreateProject(ctx context.Context, p models.Project) (models.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if !p.Status.Valid() {
		return models.Project{}, fmt.Errorf("invalid project status %q", p.Status)
	}
	ts := now()
	_, err := s.db.ExecContext(ctx, `INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, string(p.Status),
		formatDate(p.IdeationDate), formatDate(p.StartDate), formatDate(p.ShippedDate),
		p.LLMSummary, p.LLMSentimentPhrase, ts, ts)
	if err != nil {
		return models.Project{}, err
	}
	p.CreatedAt, p.UpdatedAt = parseTime(ts), parseTime(ts)
	return p, nil
}

// GetProject returns a project by ID.
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	projects, err := s.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	if err != nil {
		return models.Project{}, err
	}
	if len(projects) == 0 {
		return models.Project{}, ErrNotFound
	}
	return projects[0], nil
}

// ListProjects returns every project, most recently ideated first.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY ideation_date DESC, name`)
}

// FindProjects returns the projects whose IDs are in ids.
func (s *Store) FindProjects(ctx context.Context, ids []string) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	in, args := inClause(ids)
	return s.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects WHERE id IN (`+in+`) ORDER BY name`, args...)
}

func (s *Store) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var status, created, updated string
		var ideation, start, shipped sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &status, &ideation, &start, &shipped,
			&p.LLMSummary, &p.LLMSentimentPhrase, &created, &updated); err != nil {
			return nil, err
		}
		p.Status = models.ProjectStatus(status)
		p.IdeationDate = parseNullTime(ideation)
		p.StartDate = parseNullTime(start)
		p.ShippedDate = parseNullTime(shipped)
		p.CreatedAt = parseTime(created)
		p.UpdatedAt = parseTime(updated)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// --- artifacts ---

const artifactColumns = `id, title, publish_date, is_featured, content_path, type, created_at, updated_at`

// SaveArtifact upserts an artifact keyed by content path and replaces its
// project and tag links. The stored row, with its ID, is returned.
func (s *Store) SaveArtifact(ctx context.Context, a models.Artifact) (models.Artifact, error) {
	if !a.Type.Valid() {
		return models.Artifact{}, fmt.Errorf("invalid artifact type %q", a.Type)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Artifact{}, err
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM artifacts WHERE content_path = ?`, a.ContentPath).Scan(&existingID)
	switch {
	case err == nil:
		a.ID = existingID
	case errors.Is(err, sql.ErrNoRows):
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
	default:
		return models.Artifact{}, err
	}

	ts := now()
	featured := 0
	if a.IsFeatured {
		featured = 1
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO artifacts (`+artifactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET title = excluded.title, publish_date = excluded.publish_date,
    is_featured = excluded.is_featured, type = excluded.type, updated_at = excluded.updated_at`,
		a.ID, a.Title, a.PublishDate.UTC().Format(time.RFC3339Nano), featured, a.ContentPath, string(a.Type), ts, ts); err != nil {
		return models.Artifact{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_artifacts WHERE artifact_id = ?`, a.ID); err != nil {
		return models.Artifact{}, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM artifact_tags WHERE artifact_id = ?`, a.ID); err != nil {
		return models.Artifact{}, err
	}
	for _, pid := range a.ProjectIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO project_artifacts (project_id, artifact_id) VALUES (?, ?)`, pid, a.ID); err != nil {
			return models.Artifact{}, fmt.Errorf("link project %s: %w", pid, err)
		}
	}
	for _, tid := range a.TagIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO artifact_tags (artifact_id, tag_id) VALUES (?, ?)`, a.ID, tid); err != nil {
			return models.Artifact{}, fmt.Errorf("link tag %s: %w", tid, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return models.Artifact{}, err
	}
	return s.GetArtifactByPath(ctx, a.ContentPath)
}

// GetArtifactByPath returns the artifact stored for a content path.
func (s *Store) GetArtifactByPath(ctx context.Context, contentPath string) (models.Artifact, error) {
	artifacts, err := s.queryArtifacts(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE content_path = ?`, contentPath)
	if err != nil {
		return models.Artifact{}, err
	}
	if len(artifacts) == 0 {
		return models.Artifact{}, ErrNotFound
	}
	return artifacts[0], nil
}

// ListArtifacts returns every artifact ordered by publish date descending.
func (s *Store) ListArtifacts(ctx context.Context) ([]models.Artifact, error) {
	return s.queryArtifacts(ctx, `SELECT `+artifactColumns+` FROM artifacts ORDER BY publish_date DESC, content_path`)
}

// ArtifactsByPath returns the artifacts stored for the given content paths.
func (s *Store) ArtifactsByPath(ctx context.Context, paths []string) ([]models.Artifact, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	in, args := inClause(paths)
	return s.queryArtifacts(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE content_path IN (`+in+`) ORDER BY publish_date DESC`, args...)
}

// ProjectArtifacts returns the artifacts linked to a project.
func (s *Store) ProjectArtifacts(ctx context.Context, projectID string) ([]models.Artifact, error) {
	return s.queryArtifacts(ctx, `SELECT a.id, a.title, a.publish_date, a.is_featured, a.content_path, a.type, a.created_at, a.updated_at
FROM artifacts a JOIN project_artifacts pa ON pa.artifact_id = a.id
WHERE pa.project_id = ? ORDER BY a.publish_date DESC`, projectID)
}

func (s *Store) queryArtifacts(ctx context.Context, query string, args ...any) ([]models.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var artifacts []models.Artifact
	for rows.Next() {
		var a models.Artifact
		var publish, typ, created, updated string
		var featured int
		if err := rows.Scan(&a.ID, &a.Title, &publish, &featured, &a.ContentPath, &typ, &created, &updated); err != nil {
			rows.Close()
			return nil, err
		}
		a.PublishDate = parseTime(publish)
		a.IsFeatured = featured == 1
		a.Type = models.ArtifactType(typ)
		a.CreatedAt = parseTime(created)
		a.UpdatedAt = parseTime(updated)
		artifacts = append(artifacts, a)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range artifacts {
		if err := s.loadLinks(ctx, &artifacts[i]); err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

func (s *Store) loadLinks(ctx context.Context, a *models.Artifact) error {
	var err error
	a.ProjectIDs, err = s.queryIDs(ctx, `SELECT project_id FROM project_artifacts WHERE artifact_id = ? ORDER BY project_id`, a.ID)
	if err != nil {
		return err
	}
	a.TagIDs, err = s.queryIDs(ctx, `SELECT tag_id FROM artifact_tags WHERE artifact_id = ? ORDER BY tag_id`, a.ID)
	return err
}

func (s *Store) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- reactions ---

// CreateReaction inserts r. Exactly one of ProjectID and ArtifactID must be set.
func (s *Store) CreateReaction(ctx context.Context, r models.Reaction) (models.Reaction, error) {
	if (r.ProjectID == "") == (r.ArtifactID == "") {
		return models.Reaction{}, errors.New("reaction must target exactly one of a project or an artifact")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	created := now()
	_, err := s.db.ExecContext(ctx, `INSERT INTO reactions (id, emoji, review_text, user_id, project_id, artifact_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Emoji, r.ReviewText, r.UserID, nullString(r.ProjectID), nullString(r.ArtifactID), created)
	if err != nil {
		return models.Reaction{}, err
	}
	r.CreatedAt = parseTime(created)
	return r, nil
}

// ProjectReactions returns the reactions left on a project, oldest first.
func (s *Store) ProjectReactions(ctx context.Context, projectID string) ([]models.Reaction, error) {
	return s.queryReactions(ctx, `r.project_id = ?`, projectID)
}

// ArtifactReactions returns the reactions left on an artifact, oldest first.
func (s *Store) ArtifactReactions(ctx context.Context, artifactID string) ([]models.Reaction, error) {
	return s.queryReactions(ctx, `r.artifact_id = ?`, artifactID)
}

func (s *Store) queryReactions(ctx context.Context, where string, args ...any) ([]models.Reaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.id, r.emoji, r.review_text, r.user_id, u.name, r.project_id, r.artifact_id, r.created_at
FROM reactions r JOIN users u ON u.id = r.user_id WHERE `+where+` ORDER BY r.created_at, r.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []models.Reaction
	for rows.Next() {
		var r models.Reaction
		var project, artifact sql.NullString
		var created string
		if err := rows.Scan(&r.ID, &r.Emoji, &r.ReviewText, &r.UserID, &r.UserName, &project, &artifact, &created); err != nil {
			return nil, err
		}
		r.ProjectID = project.String
		r.ArtifactID = artifact.String
		r.CreatedAt = parseTime(created)
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// --- images ---

// SaveImage upserts image metadata.
func (s *Store) SaveImage(ctx context.Context, img models.Image) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages(ctx context.Context) ([]models.Image, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var images []models.Image
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(ctx context.Context, filename string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(ctx context.Context, filename string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE filename = ?`, filename)
	return err
}

// --- maintenance ---

// resetOrder lists tables children first so deletes respect foreign keys.
var resetOrder = []string{
	"reactions", "project_artifacts", "artifact_tags", "artifacts",
	"projects", "tags", "sessions", "accounts", "users",
}

// Reset deletes every content row. Images are kept.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, table := range resetOrder {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Counts returns the number of rows per table.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(resetOrder))
	for _, table := range resetOrder {
		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
