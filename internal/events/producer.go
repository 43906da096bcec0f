package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Topics published by the storefront.
const (
	TopicOrders = "order_events"
	TopicStock  = "stock_events"
	TopicCart   = "cart_events"
)

// Producer publishes storefront events to Kafka. All publishing is
// best-effort: a broker outage must never fail the business operation
// that triggered the event.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer returns nil (a valid no-op producer) when no brokers are
// configured.
func NewProducer(brokers []string) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Publish marshals the event and writes it asynchronously. Nil-safe.
func (p *Producer) Publish(topic, key string, event map[string]interface{}) {
	if p == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: marshal failed for topic %s: %v", topic, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := p.writer.WriteMessages(ctx, kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: data,
		})
		if err != nil {
			log.Printf("events: publish to %s failed: %v", topic, err)
		}
	}()
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("events: close writer: %w", err)
	}
	return nil
}
