// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tabular-insights/backend/internal/ingest"
	"github.com/tabular-insights/backend/internal/report"
	"github.com/tabular-insights/backend/internal/tablestore"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error constructors for consistent error handling

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewValidationError creates a 400 validation error for a specific field
func NewValidationError(field string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("validation failed for field: %s", field),
	}
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// FromPipelineError maps the pipeline's discriminated error kinds onto the
// API error envelope. Parser and model causes stay out of the message; they
// are logged at the source, not exposed verbatim.
func FromPipelineError(err error) *APIError {
	var (
		parseErr *ingest.ParseError
		rowErr   *report.RowLimitError
		modelErr *report.ModelCallError
	)

	switch {
	case errors.Is(err, ingest.ErrInvalidFileType):
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "INVALID_FILE_TYPE",
			Message: "CSV or Excel file is only allowed.",
		}
	case errors.Is(err, ingest.ErrMalformedTable):
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "MALFORMED_TABLE",
			Message: "File data structure is invalid.",
		}
	case errors.As(err, &parseErr):
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "PARSE_FAILURE",
			Message: "Failed to read file.",
		}
	case errors.Is(err, tablestore.ErrNotFound):
		return &APIError{
			Status:  http.StatusNotFound,
			Code:    "NOT_FOUND",
			Message: "File not found.",
		}
	case errors.As(err, &rowErr):
		return &APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    "ROW_LIMIT_EXCEEDED",
			Message: fmt.Sprintf("Dataset is too large. Please upload a file with fewer than %d rows.", rowErr.Limit),
		}
	case errors.As(err, &modelErr):
		return &APIError{
			Status:  http.StatusBadGateway,
			Code:    "MODEL_CALL_FAILED",
			Message: "Something went wrong while analyzing the data.",
		}
	}

	return NewInternalError("An unexpected error occurred", err)
}

// ErrorHandler middleware for Echo
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError

	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNKNOWN_ERROR",
			Message: "An unexpected error occurred",
		}
	}

	if !c.Response().Committed {
		c.JSON(apiErr.Status, apiErr)
	}
}
