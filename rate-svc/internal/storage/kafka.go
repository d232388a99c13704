package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"food-delivery/rate-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishRating keys messages by target so one target's ratings stay ordered.
func (p *KafkaPublisher) PublishRating(ctx context.Context, event domain.RatingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("%s:%d", event.TargetType, event.TargetID)),
		Value: payload,
	})
}
