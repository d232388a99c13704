package main

import (
	"time"

	"food-delivery/auth"
	"food-delivery/config"
	httpapi "food-delivery/rate-svc/internal/api/http"
	"food-delivery/rate-svc/internal/service"
	"food-delivery/rate-svc/internal/storage"

	"github.com/gorilla/mux"
)

func main() {
	config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.GetEnv("RATINGS_TOPIC", "ratings"))
	defer writer.Close()

	svc := service.NewRatingService(
		storage.NewPostgresRepository(db),
		storage.NewRatingMarkers(rdb, config.GetEnvDuration("RATING_MARKER_TTL", 30*24*time.Hour)),
		storage.NewKafkaPublisher(writer),
	)
	issuer := auth.NewIssuer(config.JWTSecret(), config.GetEnvDuration("JWT_TTL", 24*time.Hour))

	r := mux.NewRouter()
	r.Use(config.LogRequests("rate-svc"))
	httpapi.NewHandler(svc, issuer).RegisterRoutes(r)

	port := config.GetEnv("PORT", "8082")
	config.Serve("rate-svc", ":"+port, config.CORS().Handler(r))
}
