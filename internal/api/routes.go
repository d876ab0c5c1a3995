// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/", h.HandleIndex)
	apiGroup.GET("/health", h.HandleHealth)

	apiGroup.POST("/upload", h.HandleUpload)
	apiGroup.GET("/clean/:id", h.HandleClean, h.ReportActiveGuard)
	apiGroup.GET("/clean/:id/table.msgpack", h.HandleExportTable)

	apiGroup.GET("/quit_report", h.HandleQuitReport)
	apiGroup.GET("/logout", h.HandleLogout)
}
