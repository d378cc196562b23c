// Package kafka publishes order domain events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = (*EventPublisher)(nil)

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// eventMessage is the wire form of every event. Item fields are empty for
// order level events.
type eventMessage struct {
	Name       string    `json:"name"`
	OrderID    string    `json:"orderId"`
	ItemID     string    `json:"itemId,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher writes one message per event, keyed by order id so the
// events of an order stay in one partition.
type EventPublisher struct {
	writer MessageWriter
}

func NewEventPublisher(writer MessageWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// NewWriter builds the writer used in production.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(toMessage(event))
		if err != nil {
			return fmt.Errorf("encode %s: %w", event.EventName(), err)
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.OrderID().String()),
			Value: value,
			Time:  event.OccurredAt(),
			Headers: []kafka.Header{
				{Key: "event", Value: []byte(event.EventName())},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d events: %w", len(msgs), err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(event order.DomainEvent) eventMessage {
	msg := eventMessage{
		Name:       event.EventName(),
		OrderID:    event.OrderID().String(),
		OccurredAt: event.OccurredAt().UTC(),
	}

	switch e := event.(type) {
	case order.ItemStatusChanged:
		msg.ItemID = e.ItemID.String()
		msg.From = e.From.String()
		msg.To = e.To.String()
		msg.Reason = e.Reason
	case order.ItemReturnRequested:
		msg.ItemID = e.ItemID.String()
	}

	return msg
}
