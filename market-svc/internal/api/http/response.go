package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"food-delivery/market-svc/internal/domain"
	"food-delivery/market-svc/internal/service"
	"food-delivery/orderstatus"
	"food-delivery/wallet"
)

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

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidAccount),
		errors.Is(err, orderstatus.ErrUnknownStatus),
		errors.Is(err, wallet.ErrUnknownPaymentMethod):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orderstatus.ErrInvalidTransition),
		errors.Is(err, domain.ErrStatusConflict),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, service.ErrRestaurantClosed),
		errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, service.ErrPriceMismatch),
		errors.Is(err, service.ErrDuplicateSubmission):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[market-svc] %s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, status, "Internal server error")
		return
	}
	writeError(w, status, err.Error())
}
