package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"food-delivery/analytics-svc/internal/service"
	"food-delivery/auth"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Auth      *auth.Issuer
}

func NewHandler(svc service.AnalyticsInterface, issuer *auth.Issuer) *Handler {
	return &Handler{Analytics: svc, Auth: issuer}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/analytics/top-restaurants", h.getTopRestaurants).Methods("GET")

	restaurant := h.Auth.Middleware(auth.RequireRole(auth.RoleRestaurant)(http.HandlerFunc(h.getAnalytics)))
	r.Handle("/api/restaurants/{restaurantId:[0-9]+}/analytics", restaurant).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"service":   "analytics-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	claims, _ := auth.FromContext(r.Context())
	if claims == nil || claims.RestaurantID != restaurantID {
		writeError(w, http.StatusForbidden, "You can only view analytics for your own restaurant")
		return
	}

	data, err := h.Analytics.ForRestaurant(r.Context(), restaurantID, r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getTopRestaurants(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	data, err := h.Analytics.TopRestaurants(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRestaurantNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("[analytics-svc] %s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
