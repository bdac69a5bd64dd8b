package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/examprep/selection/internal/logger"
	"github.com/examprep/selection/internal/metrics"
	"github.com/gorilla/mux"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// AccessLog logs each request and records the HTTP metrics, labelled by the
// matched route template so path parameters do not explode cardinality.
func AccessLog(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := routeTemplate(r)
			metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			metrics.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())

			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
				"request_id", RequestID(r.Context()),
			)
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
