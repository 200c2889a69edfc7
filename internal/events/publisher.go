// Package events publishes order lifecycle changes to a Kafka topic for
// downstream consumers (analytics, kitchen displays).
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/segmentio/kafka-go"
)

// OrderEvent describes one status change of an order.
type OrderEvent struct {
	OrderRef  string             `json:"order_ref"`
	OldStatus models.OrderStatus `json:"old_status"`
	NewStatus models.OrderStatus `json:"new_status"`
	At        time.Time          `json:"at"`
}

// Publisher writes order events keyed by order reference so per-order
// ordering is preserved within a partition.
type Publisher struct {
	Writer *kafka.Writer
}

// NewPublisher wraps an existing Kafka writer.
func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{Writer: writer}
}

// PublishStatusChange emits the event to the configured topic.
func (p *Publisher) PublishStatusChange(ctx context.Context, ev OrderEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderRef),
		Value: payload,
	})
}
