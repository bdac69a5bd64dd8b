package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/examprep/selection/internal/logger"
	"github.com/gorilla/mux"
)

func Recover(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					log.Error("panic serving request",
						"path", r.URL.Path,
						"request_id", RequestID(r.Context()),
						"panic", v,
						"stack", string(debug.Stack()),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
