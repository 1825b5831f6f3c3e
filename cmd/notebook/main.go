// Command notebook serves the site and runs the content pipeline: checking
// MDX files against the database, syncing them into it, seeding sample data,
// creating tags and scaffolding new documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/darkhorsekelly/notebook"
)

// version is set at build time via ldflags.
var version = "dev"

// exitError carries a process exit code without an error message.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func (e exitError) ExitCode() int { return int(e) }

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return exitError(2)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "serve":
		return runServe(rest, stderr)
	case "check":
		return runCheck(rest, stdout, stderr)
	case "sync":
		return runSync(rest, stdout, stderr)
	case "seed":
		return runSeed(rest, stdout, stderr)
	case "tag":
		return runTag(rest, stdout, stderr)
	case "new":
		return runNew(rest, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "notebook %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", cmd)
		printUsage(stderr)
		return exitError(2)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `notebook - a personal portfolio and dev log built with Go, Echo, and templ

Usage:
  notebook <command> [flags]

Commands:
  serve              Run the web server
  check              Validate content files against the database
  sync [--dry-run]   Write content file metadata into the database
  seed               Reset the database and load sample data
  tag create <name>  Create a tag
  new <title>        Write a starter content file (--type, --project, --tag)
  version            Print the notebook version
  help               Show this help message

Common flags:
  --config <file>    YAML config file (env NOTEBOOK_CONFIG)
  --db <path>        SQLite database (env NOTEBOOK_DB)
  --content <dir>    Content directory (env NOTEBOOK_CONTENT_DIR)
  --log-level <lvl>  debug, info, warn or error`)
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	config   string
	db       string
	content  string
	logLevel string
}

func newFlagSet(name string, stderr io.Writer) (*pflag.FlagSet, *commonFlags) {
	var cf commonFlags
	fs := pflag.NewFlagSet("notebook "+name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cf.config, "config", notebook.EnvOr("NOTEBOOK_CONFIG", ""), "YAML config file")
	fs.StringVar(&cf.db, "db", "", "SQLite database path")
	fs.StringVar(&cf.content, "content", "", "content directory")
	fs.StringVar(&cf.logLevel, "log-level", notebook.EnvOr("NOTEBOOK_LOG_LEVEL", "info"), "log level")
	return fs, &cf
}

// siteConfig layers the config file, the environment and flags, in that
// order, and fills in defaults.
func (cf *commonFlags) siteConfig() (notebook.SiteConfig, error) {
	var cfg notebook.SiteConfig
	if cf.config != "" {
		var err error
		if cfg, err = notebook.LoadConfigFile(cf.config); err != nil {
			return cfg, err
		}
	}
	env := func(dst *string, key string) {
		*dst = notebook.EnvOr(key, *dst)
	}
	env(&cfg.Name, "NOTEBOOK_SITE_NAME")
	env(&cfg.URL, "NOTEBOOK_URL")
	env(&cfg.Addr, "NOTEBOOK_ADDR")
	env(&cfg.DatabasePath, "NOTEBOOK_DB")
	env(&cfg.ContentDir, "NOTEBOOK_CONTENT_DIR")
	env(&cfg.AdminPassword, "NOTEBOOK_ADMIN_PASSWORD")
	env(&cfg.SessionSecret, "NOTEBOOK_SESSION_SECRET")
	if v := os.Getenv("NOTEBOOK_COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "1" || strings.EqualFold(v, "true")
	}
	if cf.db != "" {
		cfg.DatabasePath = cf.db
	}
	if cf.content != "" {
		cfg.ContentDir = cf.content
	}
	return cfg.WithDefaults(), nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			if a.Key == "ip" {
				if v := a.Value.String(); v == "127.0.0.1" || v == "::1" {
					return slog.Attr{}
				}
			}
			return a
		},
	})), nil
}
