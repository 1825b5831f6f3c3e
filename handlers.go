package notebook

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darkhorsekelly/notebook/content"
	"github.com/darkhorsekelly/notebook/models"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	entries, err := a.Cache.Entries(tag)
	if err != nil {
		return err
	}
	tags, err := a.Store.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	var featured []content.Entry
	for _, e := range entries {
		if e.Meta.IsFeatured {
			featured = append(featured, e)
		}
	}
	return Render(c, a.Views.Home(HomePage{
		Site: a.Config,
		Meta: PageMeta{
			Title:       a.Config.Name,
			Description: a.Config.Tagline,
			URL:         BuildURL(a.Config.URL),
			OGType:      "website",
		},
		Featured:  featured,
		Entries:   entries,
		Tags:      tags,
		ActiveTag: tag,
	}))
}

func (a *App) handleArtifact(c echo.Context) error {
	ctx := c.Request().Context()
	entry, err := a.Cache.Entry(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	projects, err := a.Store.FindProjects(ctx, entry.Meta.ProjectIDs)
	if err != nil {
		return err
	}
	tags, err := a.Store.FindTags(ctx, entry.Meta.TagIDs)
	if err != nil {
		return err
	}
	var reactions []models.Reaction
	record, err := a.Store.GetArtifactByPath(ctx, entry.Path)
	switch {
	case err == nil:
		if reactions, err = a.Store.ArtifactReactions(ctx, record.ID); err != nil {
			return err
		}
	case !errors.Is(err, ErrNotFound):
		return err
	}
	all, err := a.Cache.Entries("")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Artifact(ArtifactPage{
		Site: a.Config,
		Meta: PageMeta{
			Title:       entry.Meta.Title,
			Description: entry.Artifact().Type.Label() + " · " + entry.Meta.PublishDate,
			URL:         BuildURL(a.Config.URL, "artifacts", entry.Slug),
			OGType:      "article",
		},
		Entry:     entry,
		Projects:  projects,
		Tags:      tags,
		Reactions: reactions,
		Related:   FilterRelated(entry, all),
	}))
}

func (a *App) handleProjects(c echo.Context) error {
	projects, err := a.Store.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Projects(ProjectsPage{
		Site: a.Config,
		Meta: PageMeta{
			Title:  "Projects · " + a.Config.Name,
			URL:    BuildURL(a.Config.URL, "projects"),
			OGType: "website",
		},
		Projects: projects,
	}))
}

func (a *App) handleProject(c echo.Context) error {
	ctx := c.Request().Context()
	project, err := a.Store.GetProject(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	artifacts, err := a.Store.ProjectArtifacts(ctx, project.ID)
	if err != nil {
		return err
	}
	reactions, err := a.Store.ProjectReactions(ctx, project.ID)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Project(ProjectPage{
		Site: a.Config,
		Meta: PageMeta{
			Title:       project.Name,
			Description: project.Description,
			URL:         BuildURL(a.Config.URL, "projects", project.ID),
			OGType:      "article",
		},
		Project:   project,
		Artifacts: artifacts,
		Reactions: reactions,
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	entries, err := a.Cache.Entries("")
	if err != nil {
		return err
	}
	projects, err := a.Store.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, entries, projects)
}

func (a *App) handleFeed(c echo.Context) error {
	entries, err := a.Cache.Entries("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, entries)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.ErrorContext(c.Request().Context(), "server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "err", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
