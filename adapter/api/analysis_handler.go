package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/domain"
	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// storedTasksParam selects the record store in GET /api/tasks/suggest/.
const storedTasksParam = "stored"

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "Request too large", err.Error())
		return nil, false
	}
	return body, true
}

func writeInvalidJSON(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "Invalid JSON", "Request body must be valid JSON")
}

// handleAnalyze handles POST /api/tasks/analyze/
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	query, errs, err := parseAnalyzeBody(body)
	if err != nil {
		writeInvalidJSON(w)
		return
	}
	if !errs.empty() {
		writeValidation(w, errs)
		return
	}

	analysis, err := observability.TimeOperationResult(r.Context(), s.logger, s.deps.Metrics, "tasks.analyze",
		func(ctx context.Context) (*domain.Analysis, error) {
			return s.deps.AnalyzeTasks.Handle(ctx, query)
		})
	if err != nil {
		s.writeAnalysisError(w, err, "Internal server error")
		return
	}
	s.recordAnalysis(analysis)
	writeJSON(w, http.StatusOK, analysis)
}

// handleSuggestQuery handles GET /api/tasks/suggest/?tasks=[...]
func (s *Server) handleSuggestQuery(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	tasksParam := params.Get("tasks")
	if tasksParam == "" {
		writeError(w, http.StatusBadRequest, "Missing tasks parameter",
			"Please provide tasks as JSON in query parameter: ?tasks=[...]")
		return
	}

	var query prioritizationQueries.AnalyzeTasksQuery
	errs := fieldErrors{}
	if tasksParam == storedTasksParam {
		query.UseStored = true
	} else {
		if !json.Valid([]byte(tasksParam)) {
			writeError(w, http.StatusBadRequest, "Invalid JSON in tasks parameter", "Tasks must be valid JSON array")
			return
		}
		query.Tasks = parseTaskList(json.RawMessage(tasksParam), errs)
	}

	choices := map[string]json.RawMessage{}
	for _, key := range []string{"strategy", "role"} {
		if v := params.Get(key); v != "" {
			raw, _ := json.Marshal(v)
			choices[key] = raw
		}
	}
	parseChoices(choices, &query, errs)
	if !errs.empty() {
		writeValidation(w, errs)
		return
	}

	limit := 0
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeValidation(w, fieldErrors{"limit": []string{msgInvalidInt}})
			return
		}
		limit = n
	}
	s.suggest(w, r, prioritizationQueries.SuggestTasksQuery{AnalyzeTasksQuery: query, Limit: limit})
}

// handleSuggestBody handles POST /api/tasks/suggest/
func (s *Server) handleSuggestBody(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	query, errs, err := parseAnalyzeBody(body)
	if err != nil {
		writeInvalidJSON(w)
		return
	}
	if !errs.empty() {
		writeValidation(w, errs)
		return
	}
	s.suggest(w, r, prioritizationQueries.SuggestTasksQuery{AnalyzeTasksQuery: query})
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request, query prioritizationQueries.SuggestTasksQuery) {
	suggestions, err := observability.TimeOperationResult(r.Context(), s.logger, s.deps.Metrics, "tasks.suggest",
		func(ctx context.Context) (*domain.Suggestions, error) {
			return s.deps.SuggestTasks.Handle(ctx, query)
		})
	if err != nil {
		s.writeAnalysisError(w, err, "Failed to process suggestions")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// writeAnalysisError classifies an analysis failure. Anything that is not a
// caller error is reported as a 500 under fallback.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error, fallback string) {
	var malformed *domain.MalformedTaskError
	switch {
	case errors.Is(err, prioritizationQueries.ErrCustomWeightsStrategy):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, domain.ErrInvalidWeights):
		writeError(w, http.StatusBadRequest, "Invalid custom weights", err.Error())
	case errors.As(err, &malformed):
		writeError(w, http.StatusBadRequest, "Invalid task", malformed.Error())
	case errors.Is(err, prioritizationQueries.ErrUnknownStrategy),
		errors.Is(err, prioritizationQueries.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		s.logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

func (s *Server) recordAnalysis(a *domain.Analysis) {
	s.deps.Metrics.Counter(observability.MetricAnalysisRuns, 1)
	s.deps.Metrics.Counter(observability.MetricTasksScored, int64(len(a.Tasks)))
	if n := len(a.CircularDependencies); n > 0 {
		s.deps.Metrics.Counter(observability.MetricCyclesDetected, int64(n))
	}
}
