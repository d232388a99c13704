package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"food-delivery/auth"
	"food-delivery/market-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders   service.OrderServiceInterface
	Wallets  service.WalletServiceInterface
	Accounts service.AccountServiceInterface
	Auth     *auth.Issuer
}

func NewHandler(orders service.OrderServiceInterface, wallets service.WalletServiceInterface, accounts service.AccountServiceInterface, issuer *auth.Issuer) *Handler {
	return &Handler{
		Orders:   orders,
		Wallets:  wallets,
		Accounts: accounts,
		Auth:     issuer,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.Auth.Middleware)

	api.HandleFunc("/auth/refresh", h.refresh).Methods("POST")

	customer := auth.RequireRole(auth.RoleCustomer)
	restaurant := auth.RequireRole(auth.RoleRestaurant)
	driver := auth.RequireRole(auth.RoleDriver)

	api.Handle("/orders", customer(http.HandlerFunc(h.createOrder))).Methods("POST")
	api.Handle("/orders/user", customer(http.HandlerFunc(h.getMyOrders))).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}", h.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}/status", h.getOrderStatus).Methods("GET")
	api.HandleFunc("/orders/{id:[0-9]+}/qrcode", h.getOrderQRCode).Methods("GET")
	api.Handle("/orders/{id:[0-9]+}/cancel", customer(http.HandlerFunc(h.cancelOrder))).Methods("PATCH")

	api.Handle("/restaurant/orders", restaurant(http.HandlerFunc(h.getRestaurantOrders))).Methods("GET")
	api.Handle("/restaurant/orders/{id:[0-9]+}/status", restaurant(http.HandlerFunc(h.updateOrderStatus))).Methods("PATCH")

	api.Handle("/driver/orders", driver(http.HandlerFunc(h.getDriverOrders))).Methods("GET")
	api.Handle("/driver/orders/{id:[0-9]+}/status", driver(http.HandlerFunc(h.updateOrderStatus))).Methods("PATCH")

	api.Handle("/wallet", customer(http.HandlerFunc(h.getWallet))).Methods("GET")
	api.Handle("/wallet/check-balance", customer(http.HandlerFunc(h.checkBalance))).Methods("GET")
	api.Handle("/wallet/topup", customer(http.HandlerFunc(h.topUp))).Methods("POST")
	api.Handle("/wallet/transactions", customer(http.HandlerFunc(h.getTransactions))).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "market-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	session, err := h.Accounts.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	session, err := h.Accounts.Refresh(r.Context(), claimsOf(r).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	session, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func claimsOf(r *http.Request) *auth.Claims {
	claims, _ := auth.FromContext(r.Context())
	return claims
}
