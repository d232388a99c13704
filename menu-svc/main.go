package main

import (
	"time"

	"food-delivery/auth"
	"food-delivery/config"
	httpapi "food-delivery/menu-svc/internal/api/http"
	"food-delivery/menu-svc/internal/service"
	"food-delivery/menu-svc/internal/storage"
)

func main() {
	config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	issuer := auth.NewIssuer(config.JWTSecret(), config.GetEnvDuration("JWT_TTL", 24*time.Hour))

	handler := httpapi.NewHandler(
		service.NewRestaurantService(repo),
		service.NewMenuService(repo, repo),
		issuer,
	)

	port := config.GetEnv("PORT", "8081")
	config.Serve("menu-svc", ":"+port, httpapi.NewRouter(handler))
}
