package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"food-delivery/auth"
	"food-delivery/rate-svc/internal/domain"
	"food-delivery/rate-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Ratings service.RatingServiceInterface
	Auth    *auth.Issuer
}

func NewHandler(ratings service.RatingServiceInterface, issuer *auth.Issuer) *Handler {
	return &Handler{Ratings: ratings, Auth: issuer}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/ratings/{type}/{targetId:[0-9]+}/summary", h.getSummary).Methods("GET")

	customer := func(fn http.HandlerFunc) http.Handler {
		return h.Auth.Middleware(auth.RequireRole(auth.RoleCustomer)(fn))
	}
	r.Handle("/api/ratings/check/{type}/{targetId:[0-9]+}", customer(h.checkRating)).Methods("GET")
	r.Handle("/api/ratings/{type}", customer(h.createRating)).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "rate-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) createRating(w http.ResponseWriter, r *http.Request) {
	var req domain.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	claims, _ := auth.FromContext(r.Context())
	rating, err := h.Ratings.Submit(r.Context(), claims, domain.RatingType(mux.Vars(r)["type"]), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

func (h *Handler) checkRating(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	orderID, _ := strconv.Atoi(mux.Vars(r)["targetId"])

	rated, err := h.Ratings.Check(r.Context(), claims, domain.RatingType(mux.Vars(r)["type"]), orderID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"rated": rated})
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	targetID, _ := strconv.Atoi(mux.Vars(r)["targetId"])
	summary, err := h.Ratings.Summary(r.Context(), domain.RatingType(mux.Vars(r)["type"]), targetID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrUnknownType),
		errors.Is(err, service.ErrNoDriver):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateRating), errors.Is(err, service.ErrNotDelivered):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[rate-svc] %s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
