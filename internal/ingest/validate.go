package ingest

import (
	"path/filepath"
	"strings"
)

// allowedExtensions is the upload allow-list. Only delimited text and Excel
// workbooks are accepted; contents are not inspected here.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// ValidateFilename reports whether the declared filename carries an accepted
// extension, case-insensitively.
func ValidateFilename(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return allowedExtensions[ext]
}
