package ingest

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tabular-insights/backend/internal/models"
	"github.com/tabular-insights/backend/internal/tablestore"
)

// ErrInvalidFileType means the filename extension is not in the allow-list.
var ErrInvalidFileType = errors.New("only CSV or Excel files are allowed")

// ErrMalformedTable means the file parsed but does not form a well-formed 2D
// table (empty header row, inconsistent column count).
var ErrMalformedTable = errors.New("file data structure is invalid")

// ParseError wraps a parser-level failure on corrupt or unsupported bytes.
// The cause is kept for logging but the message stays generic.
type ParseError struct {
	cause error
}

func (e *ParseError) Error() string { return "failed to read file" }

func (e *ParseError) Unwrap() error { return e.cause }

// Loader parses uploaded files and persists the result in the table store.
type Loader struct {
	store tablestore.Store
	log   *zap.Logger
}

// NewLoader creates a loader backed by the given store.
func NewLoader(store tablestore.Store, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{store: store, log: log}
}

// ReadValidateFile parses the uploaded bytes according to the declared
// extension, validates the table shape, and persists the table under a fresh
// clean ID. It returns the ID on success.
func (l *Loader) ReadValidateFile(name string, r io.Reader) (string, error) {
	if !ValidateFilename(name) {
		return "", ErrInvalidFileType
	}

	var (
		table *models.Table
		err   error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		table, err = parseCSV(r)
	case ".xls":
		table, err = parseXLS(r)
	default:
		table, err = parseWorkbook(r)
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			l.log.Warn("file parse failed",
				zap.String("file", name),
				zap.Error(pe.Unwrap()))
		}
		return "", err
	}

	id, err := l.store.Put(table)
	if err != nil {
		return "", err
	}

	l.log.Info("table stored",
		zap.String("cleanId", shortID(id)),
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColumnCount()))

	return id, nil
}

// LoadFile retrieves a previously stored table by clean ID. An unknown or
// expired ID yields tablestore.ErrNotFound, never a panic.
func (l *Loader) LoadFile(id string) (*models.Table, error) {
	return l.store.Get(id)
}

// shortID truncates an ID for logging.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
