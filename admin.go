package notebook

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darkhorsekelly/notebook/content"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.Config, false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	a.Logger.WarnContext(c.Request().Context(), "failed admin login", "ip", ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.Config, true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminCreateTag(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	res := CreateTag(c.Request().Context(), a.Store, CreateTagInput{Name: c.FormValue("name")}, a.Logger)
	if !res.OK() {
		return a.renderAdminDashboardStatus(c, http.StatusUnprocessableEntity, res.Message)
	}
	return a.renderAdminDashboard(c, fmt.Sprintf("Tag %q created.", res.Tag.Name))
}

func (a *App) handleAdminSync(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	entries, err := a.Cache.Entries("")
	if err != nil {
		return err
	}
	res, err := SyncContent(c.Request().Context(), a.Store, entries, false, a.Logger)
	if err != nil {
		return err
	}
	return a.renderAdminDashboard(c, fmt.Sprintf("Synced: %d created, %d updated, %d unchanged, %d skipped.",
		len(res.Created), len(res.Updated), len(res.Unchanged), len(res.Skipped)))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	return a.renderAdminDashboardStatus(c, http.StatusOK, msg)
}

func (a *App) renderAdminDashboardStatus(c echo.Context, code int, msg string) error {
	ctx := c.Request().Context()
	docs, failures, err := a.Cache.Documents()
	if err != nil {
		return err
	}
	report, err := content.Check(ctx, docs, failures, a.Store)
	if err != nil {
		return err
	}
	tags, err := a.Store.ListTags(ctx)
	if err != nil {
		return err
	}
	counts, err := a.Store.Counts(ctx)
	if err != nil {
		return err
	}
	return RenderStatus(c, code, a.Views.AdminDashboard(AdminPage{
		Site:      a.Config,
		Report:    report,
		Tags:      tags,
		Counts:    counts,
		Message:   msg,
		CSRFToken: CsrfToken(c),
	}))
}
