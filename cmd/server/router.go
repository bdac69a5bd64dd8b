package main

import (
	"net/http"

	"github.com/examprep/selection/internal/logger"
	"github.com/examprep/selection/internal/middleware"
	"github.com/examprep/selection/internal/selection"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func newRouter(h *selection.Handler, tokens middleware.TokenParser, allowedOrigins []string, log *logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestIDs, middleware.Recover(log), middleware.AccessLog(log))

	api := r.PathPrefix("/api/v1").Subrouter()

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens))
	h.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
