package httpapi

import (
	"net/http"

	"food-delivery/config"

	"github.com/gorilla/mux"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(config.LogRequests("analytics-svc"))
	handler.RegisterRoutes(r)
	return config.CORS().Handler(r)
}
