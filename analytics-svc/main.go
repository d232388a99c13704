package main

import (
	"time"

	httpapi "food-delivery/analytics-svc/internal/api/http"
	"food-delivery/analytics-svc/internal/service"
	"food-delivery/auth"
	"food-delivery/config"
)

func main() {
	config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	svc := service.NewAnalyticsService(db, rdb)
	issuer := auth.NewIssuer(config.JWTSecret(), config.GetEnvDuration("JWT_TTL", 24*time.Hour))

	port := config.GetEnv("PORT", "8083")
	config.Serve("analytics-svc", ":"+port, httpapi.NewRouter(httpapi.NewHandler(svc, issuer)))
}
