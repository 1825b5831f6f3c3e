package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/darkhorsekelly/notebook"
	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/views"
)

// setup parses flags and returns the config and logger for a subcommand.
func setup(name string, args []string, stderr io.Writer, extra func(*pflag.FlagSet)) (notebook.SiteConfig, *slog.Logger, []string, error) {
	fs, cf := newFlagSet(name, stderr)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return notebook.SiteConfig{}, nil, nil, exitError(0)
		}
		return notebook.SiteConfig{}, nil, nil, exitError(2)
	}
	cfg, err := cf.siteConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := newLogger(stderr, cf.logLevel)
	if err != nil {
		return cfg, nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, fs.Args(), nil
}

func runServe(args []string, stderr io.Writer) error {
	var addr string
	var watch bool
	cfg, logger, _, err := setup("serve", args, stderr, func(fs *pflag.FlagSet) {
		fs.StringVar(&addr, "addr", "", "listen address")
		fs.BoolVar(&watch, "watch", true, "reload content when files change")
	})
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	cfg.WatchContent = watch

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := notebook.New(cfg, views.New(cfg), notebook.WithLogger(logger))
	defer app.Close()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func openStore(cfg notebook.SiteConfig) (*notebook.Store, error) {
	s, err := notebook.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
	}
	return s, nil
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	cfg, _, _, err := setup("check", args, stderr, nil)
	if err != nil {
		return err
	}
	docs, failures, err := content.LoadDir(cfg.ContentDir, cfg.ContentPathPrefix)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := content.Check(context.Background(), docs, failures, store)
	if err != nil {
		return err
	}
	printReport(stdout, report)
	if !report.OK() {
		return exitError(1)
	}
	return nil
}

func printReport(w io.Writer, r content.Report) {
	for _, f := range r.Files {
		if f.OK() {
			fmt.Fprintf(w, "ok    %s\n", f.Path)
			continue
		}
		fmt.Fprintf(w, "FAIL  %s\n", f.Path)
		if f.ParseError != "" {
			fmt.Fprintf(w, "      %s\n", f.ParseError)
		}
		for _, is := range f.Issues {
			fmt.Fprintf(w, "      %s\n", is)
		}
		if len(f.InvalidProjectIDs) > 0 {
			fmt.Fprintf(w, "      unknown project ids: %s\n", strings.Join(f.InvalidProjectIDs, ", "))
		}
		if len(f.InvalidTagIDs) > 0 {
			fmt.Fprintf(w, "      unknown tag ids: %s\n", strings.Join(f.InvalidTagIDs, ", "))
		}
		if f.EmptyBody {
			fmt.Fprintln(w, "      empty body")
		}
	}
	for _, p := range r.Sync.OutOfSync {
		fmt.Fprintf(w, "DRIFT %s: title differs from the database, run notebook sync\n", p)
	}
	for _, warning := range r.Warnings() {
		fmt.Fprintf(w, "warn  %s\n", warning)
	}
}

func runSync(args []string, stdout, stderr io.Writer) error {
	var dryRun bool
	cfg, logger, _, err := setup("sync", args, stderr, func(fs *pflag.FlagSet) {
		fs.BoolVar(&dryRun, "dry-run", false, "report changes without writing")
	})
	if err != nil {
		return err
	}
	docs, failures, err := content.LoadDir(cfg.ContentDir, cfg.ContentPathPrefix)
	if err != nil {
		return err
	}
	for _, f := range failures {
		logger.Warn("skipping unparseable file", "path", f.Path, "err", f.Err)
	}
	entries := content.Entries(docs)
	if n := len(docs) - len(entries); n > 0 {
		logger.Warn("skipping files with invalid frontmatter; run notebook check", "count", n)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := notebook.SyncContent(context.Background(), store, entries, dryRun, logger)
	if err != nil {
		return err
	}
	verb := ""
	if dryRun {
		verb = "would be "
	}
	for _, p := range res.Created {
		fmt.Fprintf(stdout, "%screated  %s\n", verb, p)
	}
	for _, p := range res.Updated {
		fmt.Fprintf(stdout, "%supdated  %s\n", verb, p)
	}
	skipped := make([]string, 0, len(res.Skipped))
	for p := range res.Skipped {
		skipped = append(skipped, p)
	}
	sort.Strings(skipped)
	for _, p := range skipped {
		fmt.Fprintf(stdout, "skipped  %s: %s\n", p, res.Skipped[p])
	}
	fmt.Fprintf(stdout, "%d created, %d updated, %d unchanged, %d skipped\n",
		len(res.Created), len(res.Updated), len(res.Unchanged), len(res.Skipped))
	return nil
}

func runSeed(args []string, stdout, stderr io.Writer) error {
	cfg, logger, _, err := setup("seed", args, stderr, nil)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("seeding database", "path", cfg.DatabasePath)
	summary, err := notebook.Seed(context.Background(), store)
	if err != nil {
		return err
	}
	tables := make([]string, 0, len(summary))
	for t := range summary {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		fmt.Fprintf(stdout, "%-18s %d\n", t, summary[t])
	}
	return nil
}

func runTag(args []string, stdout, stderr io.Writer) error {
	cfg, logger, rest, err := setup("tag", args, stderr, nil)
	if err != nil {
		return err
	}
	if len(rest) < 1 || rest[0] != "create" {
		fmt.Fprintln(stderr, "Usage: notebook tag create <name>")
		return exitError(2)
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	name := strings.Join(rest[1:], " ")
	res := notebook.CreateTag(context.Background(), store, notebook.CreateTagInput{Name: name}, logger)
	if !res.OK() {
		fmt.Fprintln(stderr, res.Message)
		return exitError(1)
	}
	fmt.Fprintf(stdout, "%s\t%s\n", res.Tag.ID, res.Tag.Name)
	return nil
}
