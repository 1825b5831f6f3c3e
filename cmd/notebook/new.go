package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/darkhorsekelly/notebook"
	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
	"github.com/darkhorsekelly/notebook/scaffold"
)

// runNew writes a starter document to the content directory. Project and
// tag IDs are checked against the database when it exists.
func runNew(args []string, stdout, stderr io.Writer) error {
	var (
		typeLabel string
		date      string
		featured  bool
		projects  []string
		tags      []string
	)
	cfg, logger, rest, err := setup("new", args, stderr, func(fs *pflag.FlagSet) {
		fs.StringVar(&typeLabel, "type", models.ArtifactDevLog.Label(), "artifact type label")
		fs.StringVar(&date, "date", time.Now().Format(time.DateOnly), "publish date (YYYY-MM-DD)")
		fs.BoolVar(&featured, "featured", false, "mark as featured")
		fs.StringSliceVar(&projects, "project", nil, "project ID (repeatable)")
		fs.StringSliceVar(&tags, "tag", nil, "tag ID (repeatable)")
	})
	if err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(rest, " "))
	if title == "" {
		fmt.Fprintln(stderr, "Usage: notebook new [flags] <title>")
		return exitError(2)
	}
	typ, ok := models.ArtifactTypeFromLabel(typeLabel)
	if !ok {
		return fmt.Errorf("unknown type %q", typeLabel)
	}
	slug := notebook.Slugify(title)
	if slug == "" {
		return fmt.Errorf("title %q has no usable characters for a file name", title)
	}

	var buf bytes.Buffer
	if err := scaffold.WriteArtifact(&buf, scaffold.Artifact{
		Title:       title,
		PublishDate: date,
		IsFeatured:  featured,
		Type:        typ,
		ProjectIDs:  projects,
		TagIDs:      tags,
	}); err != nil {
		return err
	}
	parsed, err := content.Parse(buf.Bytes())
	if err != nil {
		return err
	}
	if res := content.ValidateFrontmatter(parsed.Frontmatter); !res.Success {
		for _, is := range res.Issues {
			fmt.Fprintf(stderr, "%s\n", is)
		}
		return exitError(1)
	}

	if _, err := os.Stat(cfg.DatabasePath); err == nil {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		ctx := context.Background()
		pr, err := content.ValidateProjectReferences(ctx, projects, store)
		if err != nil {
			return err
		}
		tr, err := content.ValidateTagReferences(ctx, tags, store)
		if err != nil {
			return err
		}
		for _, id := range pr.InvalidIDs {
			logger.Warn("unknown project id", "id", id)
		}
		for _, id := range tr.InvalidIDs {
			logger.Warn("unknown tag id", "id", id)
		}
	}

	outPath := filepath.Join(cfg.ContentDir, slug+content.Ext)
	if _, err := os.Stat(outPath); err == nil {
		return fmt.Errorf("file %q already exists", outPath)
	}
	if err := os.MkdirAll(cfg.ContentDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	fmt.Fprintf(stdout, "created %s\n", outPath)
	return nil
}
