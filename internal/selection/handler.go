package selection

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/examprep/selection/internal/logger"
	"github.com/examprep/selection/internal/middleware"
	"github.com/examprep/selection/internal/models"
	"github.com/gorilla/mux"
)

// maxBodyBytes bounds selection request bodies; exclude_ids is client-sized.
const maxBodyBytes = 1 << 20

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{service: service, log: log}
}

// RegisterRoutes mounts the selection API on an authenticated subrouter.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/selection", h.Select).Methods("POST")
	r.HandleFunc("/mastery/recompute", h.RecomputeMastery).Methods("POST")
	r.HandleFunc("/categories", h.ListCategories).Methods("GET")
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	return middleware.UserID(r.Context())
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.SelectionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "Request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.UserID = userID

	result, err := h.service.Select(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "Selection failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) RecomputeMastery(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.service.RecomputeMastery(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "Failed to recompute mastery")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")

	categories, err := h.service.Categories(r.Context(), section)
	if err != nil {
		h.writeError(w, r, err, "Failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, models.CategoryListResponse{Categories: categories, Total: len(categories)})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Error()})
		return
	}
	h.log.Error(msg, "path", r.URL.Path, "request_id", middleware.RequestID(r.Context()), "error", err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
