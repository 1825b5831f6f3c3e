package notebook

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/darkhorsekelly/notebook/content"
)

// SiteConfig holds all configuration for a notebook site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Dark Horse Kelly")
	Tagline     string `yaml:"tagline"`     // Shown under the name (default "A Generalist Notebook")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags
	Author      string `yaml:"author"`

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/notebook.db")

	ContentDir        string `yaml:"content_dir"`         // Directory of .mdx files (default "site/content")
	ContentPathPrefix string `yaml:"content_path_prefix"` // Prefix of stored content paths (default "/content")
	WatchContent      bool   `yaml:"watch_content"`       // Invalidate the content cache on file changes

	AdminPassword string `yaml:"admin_password"` // Required: admin login password
	SessionSecret string `yaml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	CacheTTL time.Duration `yaml:"cache_ttl"` // Content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Dark Horse Kelly"
	}
	if c.Tagline == "" {
		c.Tagline = "A Generalist Notebook"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/notebook.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "site/content"
	}
	if c.ContentPathPrefix == "" {
		c.ContentPathPrefix = content.DefaultPathPrefix
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c SiteConfig) WithDefaults() SiteConfig {
	c.setDefaults()
	return c
}

// LoadConfigFile reads a YAML config file. Missing fields keep their zero
// value; New fills in defaults.
func LoadConfigFile(path string) (SiteConfig, error) {
	var cfg SiteConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("notebook: read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("notebook: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger used by the app and its request logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithStore uses an already opened store instead of opening DatabasePath.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}
