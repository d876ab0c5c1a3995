package report

import "fmt"

// RowLimitError is returned when the cleaned table exceeds the configured
// row limit. The gate runs after cleaning and before any prompt is built.
type RowLimitError struct {
	Rows  int
	Limit int
}

func (e *RowLimitError) Error() string {
	return fmt.Sprintf("dataset is too large: %d rows, the limit is %d", e.Rows, e.Limit)
}

// ModelCallError wraps a failure from the text generation endpoint. Stage is
// "intent" or "insight".
type ModelCallError struct {
	Stage string
	Err   error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("%s model call failed: %v", e.Stage, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }
