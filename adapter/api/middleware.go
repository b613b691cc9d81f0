package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// withCorrelation stamps every request with a request id and a correlation id,
// reusing the caller's X-Correlation-ID when present.
func (s *Server) withCorrelation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.NewRequestContext(r.Context(), r.Header.Get(observability.CorrelationIDHeader))
		w.Header().Set(observability.CorrelationIDHeader, observability.CorrelationIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		s.deps.Metrics.Counter(observability.MetricHTTPRequests, 1,
			observability.T("method", r.Method),
			observability.T(observability.StatusKey, strconv.Itoa(rec.status)),
		)
		s.logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			observability.StatusKey, rec.status,
			observability.DurationKey, duration.Milliseconds(),
		)
	})
}

// withRateLimit applies the per-client limiter to API routes. Health checks
// and preflight requests are never limited.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	limiter := s.deps.RateLimiter
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		decision := limiter.Allow(r.Context(), clientKey(r))
		if !decision.Degraded {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}
		if !decision.Allowed {
			retry := max(1, int(time.Until(decision.ResetAt).Seconds()+0.5))
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.deps.Metrics.Counter(observability.MetricRateLimited, 1)
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded",
				"Too many requests. Try again in "+strconv.Itoa(retry)+" seconds.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller for rate limiting: the first
// X-Forwarded-For hop, or the remote host.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
