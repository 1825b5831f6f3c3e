// Package notebook is the web application and content pipeline behind a
// personal portfolio and dev-log site built with Go, Echo, and templ.
//
// Artifacts are authored as MDX files with YAML frontmatter and tracked in a
// SQLite database alongside projects, tags and reactions. The content
// package validates the files; this package serves them, keeps the database
// in step with them, and provides the admin actions.
//
// Users provide their own templates via the ViewFuncs struct.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/darkhorsekelly/notebook/models"
)

// ViewFuncs holds the templ components the app calls when rendering pages.
type ViewFuncs struct {
	Home           func(page HomePage) templ.Component
	Artifact       func(page ArtifactPage) templ.Component
	Projects       func(page ProjectsPage) templ.Component
	Project        func(page ProjectPage) templ.Component
	AdminLogin     func(site SiteConfig, showError bool, csrfToken string) templ.Component
	AdminDashboard func(page AdminPage) templ.Component
	AdminImages    func(images []models.Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central notebook application. It wires together the store,
// content cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *ContentCache
	Views  ViewFuncs
	Logger *slog.Logger

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	ownsStore    bool
	stopWatch    context.CancelFunc
}

// New creates a new notebook App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = slog.Default()
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	return a
}

// Setup opens the store, builds the content cache, and registers middleware
// and routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("notebook: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("notebook: SessionSecret is required")
	}

	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("notebook: init store: %w", err)
		}
		a.Store = store
		a.ownsStore = true
	}

	a.Cache = NewContentCache(a.Config.ContentDir, a.Config.ContentPathPrefix, a.Config.CacheTTL)
	if a.Config.WatchContent {
		ctx, cancel := context.WithCancel(context.Background())
		if err := WatchContent(ctx, a.Config.ContentDir, a.Cache, a.Logger); err != nil {
			cancel()
			return fmt.Errorf("notebook: watch content: %w", err)
		}
		a.stopWatch = cancel
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Logger.Info("listening", "addr", a.Config.Addr, "content", a.Config.ContentDir)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets, including uploaded images.
	e.Static("/public", a.staticDir)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/artifacts/:slug/", a.handleArtifact)
	e.GET("/projects/", a.handleProjects)
	e.GET("/projects/:id/", a.handleProject)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/tags/", a.handleAdminCreateTag)
	e.POST("/admin/sync/", a.handleAdminSync)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil && a.ownsStore {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("notebook: required environment variable %s is not set", key)
	}
	return v
}
