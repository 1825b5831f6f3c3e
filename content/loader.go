package content

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Ext is the file extension of content documents.
const Ext = ".mdx"

// DefaultPathPrefix is prepended to file names to form the content path
// stored on artifact records.
const DefaultPathPrefix = "/content"

// Document is one parsed content file.
type Document struct {
	Path        string // content path, e.g. /content/devlog-001-foundation.mdx
	FilePath    string // location on disk
	Slug        string
	Frontmatter map[string]any
	Body        string
	ModTime     time.Time
}

// Title returns the frontmatter title, or "" when it is missing or not a string.
func (d Document) Title() string {
	s, _ := d.Frontmatter["title"].(string)
	return s
}

// LoadError records a file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e LoadError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e LoadError) Unwrap() error { return e.Err }

// LoadDir parses every .mdx file directly inside dir. Files that fail are
// reported as LoadErrors and skipped; only a failure to list dir is returned
// as err.
func LoadDir(dir, prefix string) ([]Document, []LoadError, error) {
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read content dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var docs []Document
	var failures []LoadError
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		contentPath := path.Join(prefix, e.Name())
		doc, err := LoadFile(filepath.Join(dir, e.Name()), contentPath)
		if err != nil {
			failures = append(failures, LoadError{Path: contentPath, Err: err})
			continue
		}
		docs = append(docs, doc)
	}
	return docs, failures, nil
}

// LoadFile parses a single document and labels it with contentPath.
func LoadFile(filePath, contentPath string) (Document, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return Document{}, err
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return Document{}, err
	}
	parsed, err := Parse(src)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Path:        contentPath,
		FilePath:    filePath,
		Slug:        strings.TrimSuffix(filepath.Base(filePath), Ext),
		Frontmatter: parsed.Frontmatter,
		Body:        parsed.Body,
		ModTime:     info.ModTime(),
	}, nil
}
