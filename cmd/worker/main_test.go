package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/app"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/eventbus"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/config"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

func TestHealthMux(t *testing.T) {
	cfg := &config.Config{
		AppEnv:             "test",
		Timezone:           "UTC",
		DatabaseDriver:     "sqlite",
		SQLitePath:         filepath.Join(t.TempDir(), "tasks.db"),
		OutboxPollInterval: 10 * time.Millisecond,
		OutboxBatchSize:    10,
		OutboxMaxRetries:   3,
	}
	container, err := app.NewContainer(context.Background(), cfg, observability.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	processor := container.NewOutboxProcessor(eventbus.NewNoopPublisher(observability.DiscardLogger()))
	mux := healthMux(container, processor)

	tests := []struct {
		path       string
		wantStatus int
		wantKey    string
		wantValue  any
	}{
		{path: "/healthz", wantStatus: http.StatusOK, wantKey: "status", wantValue: "ok"},
		{path: "/readyz", wantStatus: http.StatusOK, wantKey: "status", wantValue: "ready"},
		{path: "/health", wantStatus: http.StatusOK, wantKey: "status", wantValue: "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantValue, body[tt.wantKey])
		})
	}

	t.Run("readyz after close", func(t *testing.T) {
		require.NoError(t, container.DBConn.Close())
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
