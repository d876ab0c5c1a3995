package models

// IntentResult is the structured reading of the model's intent completion,
// keyed to the table it was derived from.
type IntentResult struct {
	Question string   `json:"question"`
	Category string   `json:"category"`
	Columns  []string `json:"columns"`
	RowCount int      `json:"rowCount"`
}

// InsightResult is the structured reading of the model's insight completion.
type InsightResult struct {
	Insight    string   `json:"insight"`
	Highlights []string `json:"highlights"`
}

// CombinedReport merges the intent and insight analyses into the payload
// handed to rendering.
type CombinedReport struct {
	Question   string   `json:"question"`
	Category   string   `json:"category"`
	Insight    string   `json:"insight"`
	Highlights []string `json:"highlights"`
	Narrative  string   `json:"narrative"`
	Columns    []string `json:"columns"`
	RowCount   int      `json:"rowCount"`
}
