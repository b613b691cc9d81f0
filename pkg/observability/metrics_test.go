package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryMetrics(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter(MetricAnalysisRuns, 1, T("strategy", "smart_balance"))
	m.Counter(MetricAnalysisRuns, 2, T("strategy", "smart_balance"))
	m.Counter(MetricAnalysisRuns, 1, T("strategy", "fastest_wins"))
	m.Timing(MetricOperationDuration, time.Second)

	assert.Equal(t, int64(3), m.GetCounter(MetricAnalysisRuns, T("strategy", "smart_balance")))
	assert.Equal(t, int64(1), m.GetCounter(MetricAnalysisRuns, T("strategy", "fastest_wins")))
	assert.Equal(t, []time.Duration{time.Second}, m.GetTimings(MetricOperationDuration))
	assert.Len(t, m.Snapshot(), 2)
}

func TestFormatKey_TagOrder(t *testing.T) {
	a := formatKey("m", []Tag{T("b", "2"), T("a", "1")})
	b := formatKey("m", []Tag{T("a", "1"), T("b", "2")})
	assert.Equal(t, "m:a=1:b=2", a)
	assert.Equal(t, a, b)
}

func TestTimeOperation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantErrors int64
	}{
		{"success", nil, 0},
		{"failure", errors.New("boom"), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewInMemoryMetrics()
			var seenOp string

			err := TimeOperation(context.Background(), DiscardLogger(), m, "engine.analyze", func(ctx context.Context) error {
				seenOp = OperationFromContext(ctx)
				return tc.err
			})

			assert.Equal(t, tc.err, err)
			assert.Equal(t, "engine.analyze", seenOp)
			tag := T(OperationKey, "engine.analyze")
			assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, tag))
			assert.Equal(t, tc.wantErrors, m.GetCounter(MetricOperationErrors, tag))
			assert.Len(t, m.GetTimings(MetricOperationDuration, tag), 1)
		})
	}
}

func TestHealthRegistry(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("refused") }

	tests := []struct {
		name     string
		checks   map[string]HealthChecker
		want     HealthStatus
		wantCode int
	}{
		{"no checks", nil, HealthStatusHealthy, http.StatusOK},
		{"all healthy", map[string]HealthChecker{"database": DatabaseHealthChecker(ok), "redis": RedisHealthChecker(ok)}, HealthStatusHealthy, http.StatusOK},
		{"redis down is degraded", map[string]HealthChecker{"database": DatabaseHealthChecker(ok), "redis": RedisHealthChecker(down)}, HealthStatusDegraded, http.StatusOK},
		{"database down is unhealthy", map[string]HealthChecker{"database": DatabaseHealthChecker(down), "redis": RedisHealthChecker(down)}, HealthStatusUnhealthy, http.StatusServiceUnavailable},
		{"open breaker is degraded", map[string]HealthChecker{"broker": BreakerHealthChecker(func() string { return "open" })}, HealthStatusDegraded, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewHealthRegistry(time.Second)
			for name, check := range tc.checks {
				r.Register(name, check)
			}

			health := r.GetOverallHealth(context.Background())
			assert.Equal(t, tc.want, health.Status)
			assert.Len(t, health.Checks, len(tc.checks))

			rec := httptest.NewRecorder()
			r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tc.wantCode, rec.Code)

			var body OverallHealth
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.want, body.Status)
		})
	}
}

func TestHealthRegistry_Timeout(t *testing.T) {
	r := NewHealthRegistry(20 * time.Millisecond)
	r.Register("slow", DatabaseHealthChecker(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	health := r.GetOverallHealth(context.Background())
	assert.Equal(t, HealthStatusUnhealthy, health.Status)
	assert.Contains(t, health.Checks["slow"].Message, "deadline exceeded")
}
