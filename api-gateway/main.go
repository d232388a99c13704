package main

import (
	"log"
	"net/http"
	"time"

	"food-delivery/api-gateway/internal/gateway"
	"food-delivery/config"
)

func main() {
	config.Load()

	gw := gateway.NewGateway(gateway.Config{
		MarketSvcURL:    config.GetEnv("MARKET_SVC_URL", "http://localhost:8084"),
		MenuSvcURL:      config.GetEnv("MENU_SVC_URL", "http://localhost:8081"),
		RateSvcURL:      config.GetEnv("RATE_SVC_URL", "http://localhost:8082"),
		AnalyticsSvcURL: config.GetEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
	}, &http.Client{Timeout: config.GetEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second)})

	limiter := gateway.NewRateLimiter(
		config.GetEnvFloat("RATE_LIMIT_RPS", 20),
		int(config.GetEnvFloat("RATE_LIMIT_BURST", 40)),
	)
	go func() {
		for range time.Tick(5 * time.Minute) {
			if n := limiter.Sweep(30 * time.Minute); n > 0 {
				log.Printf("[api-gateway] dropped %d idle rate limiters", n)
			}
		}
	}()

	handler := config.CORS().Handler(limiter.Middleware(gw.SetupRoutes()))

	port := config.GetEnv("PORT", "8080")
	config.Serve("api-gateway", ":"+port, handler)
}
