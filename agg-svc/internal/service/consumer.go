package service

import (
	"context"
	"encoding/json"
	"log"

	"food-delivery/agg-svc/internal/domain"
	"food-delivery/orderstatus"
)

type Consumer struct {
	Name   string
	Reader MessageReader
	Store  StoreInterface
}

func NewConsumer(name string, reader MessageReader, store StoreInterface) *Consumer {
	return &Consumer{
		Name:   name,
		Reader: reader,
		Store:  store,
	}
}

// Start reads until ctx is cancelled. Undecodable messages and failed
// updates are logged and skipped.
func (c *Consumer) Start(ctx context.Context) {
	log.Printf("[agg-svc] %s consumer started", c.Name)
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("[agg-svc] %s consumer stopped", c.Name)
				return
			}
			log.Printf("[agg-svc] %s: error reading message: %v", c.Name, err)
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("[agg-svc] %s: error unmarshaling message at offset %d: %v", c.Name, message.Offset, err)
			continue
		}

		if err := c.Process(ctx, event); err != nil {
			log.Printf("[agg-svc] %s: %s for order %d failed: %v", c.Name, event.Type, event.OrderID, err)
		}
	}
}

// Process applies one event to the aggregates.
func (c *Consumer) Process(ctx context.Context, event domain.Event) error {
	switch event.Type {
	case domain.EventOrderCreated:
		return c.Store.RecordOrder(ctx, event)
	case domain.EventOrderStatusChanged:
		if orderstatus.Status(event.Status) == orderstatus.Cancelled {
			return c.Store.RecordCancellation(ctx, event)
		}
	case domain.EventNewRating:
		switch event.TargetType {
		case domain.TargetRestaurant:
			return c.Store.UpdateRestaurantRating(ctx, event.TargetID)
		case domain.TargetDriver:
			return c.Store.UpdateDriverRating(ctx, event.TargetID)
		}
	}
	return nil
}
