package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"food-delivery/agg-svc/internal/service"
	"food-delivery/agg-svc/internal/storage"
	"food-delivery/config"
)

func main() {
	config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	groupID := config.GetEnv("KAFKA_GROUP_ID", "agg-svc")
	ordersReader := config.NewKafkaReader(config.GetEnv("ORDERS_TOPIC", "orders"), groupID)
	defer ordersReader.Close()
	ratingsReader := config.NewKafkaReader(config.GetEnv("RATINGS_TOPIC", "ratings"), groupID)
	defer ratingsReader.Close()

	store := storage.NewStore(db, rdb)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for _, consumer := range []*service.Consumer{
		service.NewConsumer("orders", ordersReader, store),
		service.NewConsumer("ratings", ratingsReader, store),
	} {
		wg.Add(1)
		go func(c *service.Consumer) {
			defer wg.Done()
			c.Start(ctx)
		}(consumer)
	}

	log.Println("Aggregation Service running")
	wg.Wait()
}
