package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"food-delivery/auth"
	"food-delivery/menu-svc/internal/domain"
	"food-delivery/menu-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Menu        service.MenuServiceInterface
	Auth        *auth.Issuer
}

func NewHandler(restaurants service.RestaurantServiceInterface, menu service.MenuServiceInterface, issuer *auth.Issuer) *Handler {
	return &Handler{
		Restaurants: restaurants,
		Menu:        menu,
		Auth:        issuer,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id:[0-9]+}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId:[0-9]+}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId:[0-9]+}/menu/{itemId:[0-9]+}", h.getMenuItem).Methods("GET")

	r.Handle("/api/restaurants", h.restaurantOnly(h.createRestaurant)).Methods("POST")
	r.Handle("/api/restaurants/{id:[0-9]+}", h.restaurantOnly(h.updateRestaurant)).Methods("PUT")
	r.Handle("/api/restaurants/{id:[0-9]+}", h.restaurantOnly(h.deleteRestaurant)).Methods("DELETE")
	r.Handle("/api/restaurants/{id:[0-9]+}/status", h.restaurantOnly(h.setRestaurantStatus)).Methods("PATCH")

	r.Handle("/api/restaurants/{restaurantId:[0-9]+}/menu", h.restaurantOnly(h.createMenuItem)).Methods("POST")
	r.Handle("/api/restaurants/{restaurantId:[0-9]+}/menu/{itemId:[0-9]+}", h.restaurantOnly(h.updateMenuItem)).Methods("PUT")
	r.Handle("/api/restaurants/{restaurantId:[0-9]+}/menu/{itemId:[0-9]+}", h.restaurantOnly(h.deleteMenuItem)).Methods("DELETE")
	r.Handle("/api/restaurants/{restaurantId:[0-9]+}/menu/{itemId:[0-9]+}/availability", h.restaurantOnly(h.setMenuItemAvailability)).Methods("PATCH")
}

func (h *Handler) restaurantOnly(fn http.HandlerFunc) http.Handler {
	return h.Auth.Middleware(auth.RequireRole(auth.RoleRestaurant)(fn))
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "menu-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	filter := domain.RestaurantFilter{Search: r.URL.Query().Get("q")}
	if open := r.URL.Query().Get("open"); open != "" {
		isOpen, err := strconv.ParseBool(open)
		if err != nil {
			writeError(w, http.StatusBadRequest, "open must be true or false")
			return
		}
		filter.IsOpen = &isOpen
	}
	restaurants, err := h.Restaurants.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(r.Context(), pathInt(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var input domain.RestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	rest, err := h.Restaurants.Create(r.Context(), claimsOf(r), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var input domain.RestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	rest, err := h.Restaurants.Update(r.Context(), claimsOf(r), pathInt(r, "id"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Restaurants.Delete(r.Context(), claimsOf(r), pathInt(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setRestaurantStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsOpen *bool `json:"isOpen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsOpen == nil {
		writeError(w, http.StatusBadRequest, "isOpen is required")
		return
	}
	rest, err := h.Restaurants.SetOpen(r.Context(), claimsOf(r), pathInt(r, "id"), *req.IsOpen)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	availableOnly, _ := strconv.ParseBool(r.URL.Query().Get("available"))
	items, err := h.Menu.List(r.Context(), pathInt(r, "restaurantId"), availableOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), pathInt(r, "restaurantId"), pathInt(r, "itemId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var input domain.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	item, err := h.Menu.Create(r.Context(), claimsOf(r), pathInt(r, "restaurantId"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var input domain.MenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	item, err := h.Menu.Update(r.Context(), claimsOf(r), pathInt(r, "restaurantId"), pathInt(r, "itemId"), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Menu.Delete(r.Context(), claimsOf(r), pathInt(r, "restaurantId"), pathInt(r, "itemId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsAvailable *bool `json:"isAvailable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsAvailable == nil {
		writeError(w, http.StatusBadRequest, "isAvailable is required")
		return
	}
	item, err := h.Menu.SetAvailability(r.Context(), claimsOf(r), pathInt(r, "restaurantId"), pathInt(r, "itemId"), *req.IsAvailable)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func pathInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(mux.Vars(r)[name])
	return v
}

func claimsOf(r *http.Request) *auth.Claims {
	claims, _ := auth.FromContext(r.Context())
	return claims
}
