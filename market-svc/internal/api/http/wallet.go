package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func (h *Handler) getWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.Wallets.Get(r.Context(), claimsOf(r).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *Handler) checkBalance(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount query parameter must be a number")
		return
	}
	check, err := h.Wallets.CheckBalance(r.Context(), claimsOf(r).UserID, amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (h *Handler) topUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	wallet, err := h.Wallets.TopUp(r.Context(), claimsOf(r).UserID, req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *Handler) getTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.Wallets.Transactions(r.Context(), claimsOf(r).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}
