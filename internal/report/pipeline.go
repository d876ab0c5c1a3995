// Package report orchestrates the insight pipeline: load, micro clean, row
// gate, intent call, insight call, combine. The two model calls are strictly
// sequential; the insight prompt depends on the intent result.
package report

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tabular-insights/backend/internal/clean"
	"github.com/tabular-insights/backend/internal/ingest"
	"github.com/tabular-insights/backend/internal/llm"
	"github.com/tabular-insights/backend/internal/models"
	"github.com/tabular-insights/backend/internal/prompt"
)

// Generator runs the full report pipeline for a stored table.
type Generator struct {
	loader     *ingest.Loader
	client     llm.Client
	maxRows    int
	sampleRows int
	log        *zap.Logger
}

// NewGenerator wires the pipeline stages together. maxRows is the row gate
// applied to the cleaned table; sampleRows bounds how much data reaches the
// intent prompt.
func NewGenerator(loader *ingest.Loader, client llm.Client, maxRows, sampleRows int, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		loader:     loader,
		client:     client,
		maxRows:    maxRows,
		sampleRows: sampleRows,
		log:        log,
	}
}

// Result is the payload handed to the HTTP boundary for rendering.
type Result struct {
	Table   *models.Table
	Intent  models.IntentResult
	Report  models.CombinedReport
	Runtime float64 // seconds
}

// Generate runs the pipeline for the table stored under cleanID.
//
// The row gate runs strictly after cleaning and strictly before prompt
// construction: an oversize table is rejected before any model call is made.
func (g *Generator) Generate(ctx context.Context, cleanID string) (*Result, error) {
	start := time.Now()

	table, err := g.loader.LoadFile(cleanID)
	if err != nil {
		return nil, err
	}

	cleaned := clean.MicroClean(table)

	if rows := cleaned.RowCount(); rows > g.maxRows {
		return nil, &RowLimitError{Rows: rows, Limit: g.maxRows}
	}

	intentText, err := g.client.Generate(ctx, prompt.SystemPrompt(), prompt.IntentPrompt(cleaned, g.sampleRows))
	if err != nil {
		return nil, &ModelCallError{Stage: "intent", Err: err}
	}
	intent := AnalyzeIntent(cleaned, intentText)

	insightText, err := g.client.Generate(ctx, prompt.SystemPrompt(), prompt.InsightPrompt(intent))
	if err != nil {
		return nil, &ModelCallError{Stage: "insight", Err: err}
	}
	insight := AnalyzeInsight(insightText)

	combined := CombineResults(intent, insight)
	runtime := time.Since(start).Seconds()

	g.log.Info("report generated",
		zap.String("cleanId", shortID(cleanID)),
		zap.Int("rows", cleaned.RowCount()),
		zap.Int("columns", cleaned.ColumnCount()),
		zap.String("category", intent.Category),
		zap.Float64("runtimeSeconds", runtime))

	return &Result{
		Table:   cleaned,
		Intent:  intent,
		Report:  combined,
		Runtime: runtime,
	}, nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
