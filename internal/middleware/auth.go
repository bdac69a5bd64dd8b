package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type TokenParser interface {
	Parse(token string) (int64, error)
}

// Auth requires a valid "Authorization: Bearer <jwt>" header and stores the
// token's user ID in the request context.
func Auth(tokens TokenParser) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "Missing bearer token")
				return
			}

			userID, err := tokens.Parse(token)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
