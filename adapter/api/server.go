// Package api serves the task analysis HTTP API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/app"
	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/ratelimit"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

// Server is the HTTP API server.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	deps    Dependencies
	handler http.Handler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           "127.0.0.1:8000",
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

// Dependencies are the handlers the routes delegate to. RateLimiter and
// Health are optional.
type Dependencies struct {
	AnalyzeTasks *prioritizationQueries.AnalyzeTasksHandler
	SuggestTasks *prioritizationQueries.SuggestTasksHandler

	CreateTask *commands.CreateTaskHandler
	UpdateTask *commands.UpdateTaskHandler
	DeleteTask *commands.DeleteTaskHandler
	ListTasks  *queries.ListTasksHandler
	GetTask    *queries.GetTaskHandler

	Location    *time.Location
	RateLimiter *ratelimit.Limiter
	Health      *observability.HealthRegistry
	Metrics     observability.Metrics
}

// DependenciesFrom collects the API handlers from the application container.
func DependenciesFrom(c *app.Container) Dependencies {
	return Dependencies{
		AnalyzeTasks: c.AnalyzeTasksHandler,
		SuggestTasks: c.SuggestTasksHandler,
		CreateTask:   c.CreateTaskHandler,
		UpdateTask:   c.UpdateTaskHandler,
		DeleteTask:   c.DeleteTaskHandler,
		ListTasks:    c.ListTasksHandler,
		GetTask:      c.GetTaskHandler,
		Location:     c.Location,
		RateLimiter:  c.RateLimiter,
		Health:       c.Health,
		Metrics:      c.Metrics,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, deps Dependencies, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NoopMetrics{}
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		deps:   deps,
	}
	s.registerRoutes()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{observability.CorrelationIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
	})

	// Outermost first: correlation ids reach the access log and rate limiter.
	s.handler = s.withCorrelation(s.withAccessLog(corsHandler.Handler(s.withRateLimit(s.mux))))

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	if s.deps.Health != nil {
		s.mux.Handle("GET /health", s.deps.Health.Handler())
	} else {
		s.mux.HandleFunc("GET /health", s.handleHealth)
	}

	// Analysis
	s.mux.HandleFunc("POST /api/tasks/analyze/", s.handleAnalyze)
	s.mux.HandleFunc("GET /api/tasks/suggest/", s.handleSuggestQuery)
	s.mux.HandleFunc("POST /api/tasks/suggest/", s.handleSuggestBody)

	// Stored tasks
	s.mux.HandleFunc("GET /api/tasks/", s.handleListTasks)
	s.mux.HandleFunc("POST /api/tasks/", s.handleCreateTask)
	s.mux.HandleFunc("GET /api/tasks/{id}/", s.handleGetTask)
	s.mux.HandleFunc("PUT /api/tasks/{id}/", s.handleUpdateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}/", s.handleDeleteTask)
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting task analysis API server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down task analysis API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// errorBody is the JSON shape of every non-validation error.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError writes {"error": title, "message": message}.
func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, errorBody{Error: title, Message: message})
}

// validationBody is the JSON shape of a rejected request.
type validationBody struct {
	Error   string      `json:"error"`
	Details fieldErrors `json:"details"`
}

func writeValidation(w http.ResponseWriter, details fieldErrors) {
	writeJSON(w, http.StatusBadRequest, validationBody{Error: "Validation failed", Details: details})
}
