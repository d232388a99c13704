package main

import (
	"time"

	"food-delivery/auth"
	"food-delivery/config"
	httpapi "food-delivery/market-svc/internal/api/http"
	"food-delivery/market-svc/internal/service"
	"food-delivery/market-svc/internal/storage"

	"github.com/gorilla/mux"
)

func main() {
	config.Load()

	db := config.MustInitPostgres()
	defer db.Close()
	config.MustMigrate(db)

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.GetEnv("ORDERS_TOPIC", "orders"))
	defer writer.Close()

	repo := storage.NewPostgresRepository(db)
	cache := storage.NewRedisCache(rdb,
		config.GetEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		config.GetEnvDuration("STATUS_CACHE_TTL", time.Hour))
	publisher := storage.NewKafkaPublisher(writer)
	qr := service.PickupQRGenerator{BaseURL: config.GetEnv("PUBLIC_BASE_URL", "http://localhost")}

	issuer := auth.NewIssuer(config.JWTSecret(), config.GetEnvDuration("JWT_TTL", 24*time.Hour))

	handler := httpapi.NewHandler(
		service.NewOrderService(repo, cache, publisher, qr, config.GetEnvFloat("COMMISSION_RATE", 0.10)),
		service.NewWalletService(repo),
		service.NewAccountService(repo, issuer),
		issuer,
	)

	r := mux.NewRouter()
	r.Use(config.LogRequests("market-svc"))
	handler.RegisterRoutes(r)

	port := config.GetEnv("PORT", "8084")
	config.Serve("market-svc", ":"+port, config.CORS().Handler(r))
}
