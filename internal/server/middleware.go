package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/internal/calc"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// requestIDMiddleware accepts a client supplied id or assigns a new one
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(calc.ContextWithRequestID(r.Context(), id)))
	})
}

// timeoutMiddleware puts a deadline on the request context
func timeoutMiddleware(timeout time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observeMiddleware logs every request and feeds the request metrics. The
// route label is the matched mux pattern so ids do not blow up cardinality.
func observeMiddleware(logger *mdwlog.Logger, metrics *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				logger.WithRequestID(calc.RequestIDFromContext(r.Context())).
					Error("panic in handler", mdwlog.Any("panic", rec), mdwlog.String("path", r.URL.Path))
				wrapper.WriteHeader(http.StatusInternalServerError)
			}

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			metrics.ObserveRequest(route, r.Method, wrapper.statusCode, elapsed)
			logger.WithRequestID(calc.RequestIDFromContext(r.Context())).Info("http request",
				mdwlog.String("method", r.Method),
				mdwlog.String("path", r.URL.Path),
				mdwlog.Int("status", wrapper.statusCode),
				mdwlog.Duration("duration", elapsed),
			)
		}()

		next.ServeHTTP(wrapper, r)
	})
}
