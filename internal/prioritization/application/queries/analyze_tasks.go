package queries

import (
	"context"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
)

// AnalyzeTasksHandler handles the AnalyzeTasksQuery.
type AnalyzeTasksHandler struct {
	engine *engine.Engine
	source StoredTaskSource
}

// NewAnalyzeTasksHandler creates a handler. source may be nil when no record
// store is configured.
func NewAnalyzeTasksHandler(e *engine.Engine, source StoredTaskSource) *AnalyzeTasksHandler {
	return &AnalyzeTasksHandler{engine: e, source: source}
}

// Handle returns every task ranked by descending priority.
func (h *AnalyzeTasksHandler) Handle(ctx context.Context, q AnalyzeTasksQuery) (*domain.Analysis, error) {
	req, err := toRequest(ctx, h.source, q)
	if err != nil {
		return nil, err
	}
	return h.engine.Analyze(req)
}
