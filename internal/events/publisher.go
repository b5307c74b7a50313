// Package events publishes completed cart and wishlist actions to Kafka so
// downstream consumers (recommendations, analytics) see them as they happen.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"shoestore-assistant/internal/common/logger"
)

// ActionEvent records one completed cart or wishlist mutation.
type ActionEvent struct {
	Target    string    `json:"target"`
	Action    string    `json:"action"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	Size      float64   `json:"size,omitempty"`
	At        time.Time `json:"at"`
}

// KafkaPublisher writes action events to a single topic, keyed by user so
// one user's actions stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    logger.Logger
}

func NewKafkaPublisher(broker, topic string, log logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
				log.Warn("kafka write error", map[string]interface{}{"detail": fmt.Sprintf(msg, args...)})
			}),
		},
		log: log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event ActionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
