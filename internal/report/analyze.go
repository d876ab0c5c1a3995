package report

import (
	"encoding/json"
	"strings"

	"github.com/tabular-insights/backend/internal/models"
)

// stripFences removes a markdown code fence the model may wrap its JSON in,
// despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// AnalyzeIntent structures the model's free-text intent answer, keyed to the
// originating table. Free text that is not the requested JSON is kept as the
// question verbatim; this never fails.
func AnalyzeIntent(t *models.Table, completion string) models.IntentResult {
	res := models.IntentResult{
		Columns:  t.ColumnNames(),
		RowCount: t.RowCount(),
		Category: "general",
	}

	text := stripFences(completion)

	var raw struct {
		Question string `json:"question"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err == nil && strings.TrimSpace(raw.Question) != "" {
		res.Question = strings.TrimSpace(raw.Question)
		if c := strings.TrimSpace(raw.Category); c != "" {
			res.Category = strings.ToLower(c)
		}
		return res
	}

	res.Question = text
	return res
}

// AnalyzeInsight structures the model's free-text insight answer with the
// same parsing discipline as AnalyzeIntent.
func AnalyzeInsight(completion string) models.InsightResult {
	text := stripFences(completion)

	var raw struct {
		Insight    string   `json:"insight"`
		Highlights []string `json:"highlights"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err == nil && strings.TrimSpace(raw.Insight) != "" {
		highlights := make([]string, 0, len(raw.Highlights))
		for _, h := range raw.Highlights {
			if h = strings.TrimSpace(h); h != "" {
				highlights = append(highlights, h)
			}
		}
		return models.InsightResult{
			Insight:    strings.TrimSpace(raw.Insight),
			Highlights: highlights,
		}
	}

	return models.InsightResult{Insight: text, Highlights: []string{}}
}

// CombineResults merges the intent and insight analyses into the final
// report payload. Pure: identical inputs always yield deep-equal output.
func CombineResults(intent models.IntentResult, insight models.InsightResult) models.CombinedReport {
	highlights := make([]string, len(insight.Highlights))
	copy(highlights, insight.Highlights)

	columns := make([]string, len(intent.Columns))
	copy(columns, intent.Columns)

	narrative := strings.TrimSpace(intent.Question)
	if s := strings.TrimSpace(insight.Insight); s != "" {
		if narrative != "" {
			narrative += " "
		}
		narrative += s
	}

	return models.CombinedReport{
		Question:   intent.Question,
		Category:   intent.Category,
		Insight:    insight.Insight,
		Highlights: highlights,
		Narrative:  narrative,
		Columns:    columns,
		RowCount:   intent.RowCount,
	}
}
