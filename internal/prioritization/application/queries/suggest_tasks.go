package queries

import (
	"context"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
)

// SuggestTasksQuery asks for the top Limit tasks with explanations.
// Limit 0 means engine.DefaultSuggestionLimit.
type SuggestTasksQuery struct {
	AnalyzeTasksQuery
	Limit int
}

// SuggestTasksHandler handles the SuggestTasksQuery.
type SuggestTasksHandler struct {
	engine *engine.Engine
	source StoredTaskSource
}

func NewSuggestTasksHandler(e *engine.Engine, source StoredTaskSource) *SuggestTasksHandler {
	return &SuggestTasksHandler{engine: e, source: source}
}

func (h *SuggestTasksHandler) Handle(ctx context.Context, q SuggestTasksQuery) (*domain.Suggestions, error) {
	req, err := toRequest(ctx, h.source, q.AnalyzeTasksQuery)
	if err != nil {
		return nil, err
	}
	return h.engine.Suggest(req, q.Limit)
}
