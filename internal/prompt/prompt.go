// Package prompt builds the natural-language requests sent to the text
// generation endpoint. Everything here is a pure function of its inputs; no
// network or storage access.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tabular-insights/backend/internal/models"
)

const systemPrompt = `You are a senior data analyst. You are given tabular datasets and asked to reason about what they measure and what they show. Always respond with a single strict JSON object and nothing else: no markdown fences, no commentary.`

// DefaultSampleRows bounds how many data rows are quoted in the intent
// prompt when no limit is configured.
const DefaultSampleRows = 20

// SystemPrompt returns the constant instruction establishing the model role.
func SystemPrompt() string {
	return systemPrompt
}

// IntentPrompt renders a description of the table's shape and sample content,
// framed as "infer the analytical intent of this dataset".
func IntentPrompt(t *models.Table, sampleRows int) string {
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A dataset has %d rows and %d columns.\n", t.RowCount(), t.ColumnCount())

	b.WriteString("Columns:\n")
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "- %s (%s)\n", c.Name, c.Type)
	}

	n := len(t.Rows)
	if n > sampleRows {
		n = sampleRows
	}
	fmt.Fprintf(&b, "First %d rows:\n", n)
	b.WriteString(strings.Join(t.ColumnNames(), ", "))
	b.WriteString("\n")
	for _, row := range t.Rows[:n] {
		b.WriteString(strings.Join(row, ", "))
		b.WriteString("\n")
	}

	b.WriteString(`
Infer the analytical intent of this dataset: what question does the data appear to answer?
Respond with JSON only: {"question": "<the analytical question>", "category": "<a short category such as sales, operations, finance, marketing, science, general>"}`)

	return b.String()
}

// InsightPrompt renders the follow-up request, conditioned on the previously
// inferred intent.
func InsightPrompt(intent models.IntentResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A dataset with %d rows and columns [%s] was analyzed.\n",
		intent.RowCount, strings.Join(intent.Columns, ", "))
	fmt.Fprintf(&b, "The inferred analytical question is: %s\n", intent.Question)
	fmt.Fprintf(&b, "The question category is: %s\n", intent.Category)

	b.WriteString(`
State the resulting insight: the conclusion the data most plausibly supports for that question.
Respond with JSON only: {"insight": "<one or two sentences>", "highlights": ["<supporting point>", "..."]}`)

	return b.String()
}
