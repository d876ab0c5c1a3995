package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReportActiveGuard redirects to the already-active report when the session
// cookie names a different clean ID that is still open in the registry.
// Requests for the active report itself pass through so it can be re-rendered.
func (h *Handler) ReportActiveGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(reportSessionCookie)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		if active := cookie.Value; active != c.Param("id") && h.registry.IsActive(active) {
			return c.Redirect(http.StatusSeeOther, "/api/clean/"+active)
		}

		return next(c)
	}
}
