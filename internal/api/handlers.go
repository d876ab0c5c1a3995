// handlers.go - Upload and report handlers
package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/tabular-insights/backend/internal/ingest"
	"github.com/tabular-insights/backend/internal/report"
	"github.com/tabular-insights/backend/internal/tablestore"
)

// reportSessionCookie names the cookie tying a browser session to its report.
const reportSessionCookie = "report_session"

// Handler holds the pipeline dependencies for all routes.
type Handler struct {
	loader    *ingest.Loader
	store     tablestore.Store
	generator *report.Generator
	registry  *report.Registry
	log       *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(loader *ingest.Loader, store tablestore.Store, generator *report.Generator, registry *report.Registry, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		loader:    loader,
		store:     store,
		generator: generator,
		registry:  registry,
		log:       log,
	}
}

// HandleIndex returns basic service info.
func (h *Handler) HandleIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service": "tabular-insights",
		"upload":  "/api/upload",
	})
}

// HandleHealth returns the health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"storedTables":  h.store.Len(),
		"activeReports": h.registry.Len(),
	})
}

// HandleUpload accepts a multipart file, validates and parses it, and
// redirects to the clean endpoint for the stored table.
func (h *Handler) HandleUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	src, err := file.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	cleanID, err := h.loader.ReadValidateFile(file.Filename, src)
	if err != nil {
		return FromPipelineError(err)
	}

	return c.Redirect(http.StatusSeeOther, "/api/clean/"+cleanID)
}

// HandleClean runs the full pipeline for a stored table and returns the
// report payload. On success the report session cookie is set on this
// response and the report is registered as active.
func (h *Handler) HandleClean(c echo.Context) error {
	cleanID := c.Param("id")
	if cleanID == "" {
		return NewValidationError("id")
	}

	res, err := h.generator.Generate(c.Request().Context(), cleanID)
	if err != nil {
		var modelErr *report.ModelCallError
		if errors.As(err, &modelErr) {
			h.log.Error("model call failed",
				zap.String("cleanId", cleanID),
				zap.String("stage", modelErr.Stage),
				zap.Error(modelErr.Unwrap()))
		}
		return FromPipelineError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     reportSessionCookie,
		Value:    cleanID,
		Path:     "/",
		HttpOnly: true,
	})

	h.registry.Register(cleanID, res.Runtime)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"columns":  res.Table.ColumnNames(),
		"dtypes":   res.Table.DTypes(),
		"rows":     res.Table.Rows,
		"rowCount": res.Table.RowCount(),
		"intent":   res.Intent,
		"report":   res.Report,
		"success":  "Data is successfully analyzed.",
		"runtime":  math.Round(res.Runtime*100) / 100,
	})
}

// HandleExportTable returns the stored table msgpack-encoded.
func (h *Handler) HandleExportTable(c echo.Context) error {
	cleanID := c.Param("id")
	if cleanID == "" {
		return NewValidationError("id")
	}

	table, err := h.loader.LoadFile(cleanID)
	if err != nil {
		return FromPipelineError(err)
	}

	blob, err := msgpack.Marshal(table)
	if err != nil {
		return NewInternalError("failed to encode table", err)
	}

	return c.Blob(http.StatusOK, "application/x-msgpack", blob)
}

// HandleQuitReport closes the active report: the registry entry and the
// stored table are released along with the session cookie.
func (h *Handler) HandleQuitReport(c echo.Context) error {
	if cookie, err := c.Cookie(reportSessionCookie); err == nil && cookie.Value != "" {
		h.registry.Delete(cookie.Value)
		if err := h.store.Delete(cookie.Value); err != nil && !errors.Is(err, tablestore.ErrNotFound) {
			h.log.Warn("failed to delete stored table", zap.String("cleanId", cookie.Value), zap.Error(err))
		}
	}

	h.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/api/")
}

// HandleLogout clears the session cookie only.
func (h *Handler) HandleLogout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "session removed"})
}

func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     reportSessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
