package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderCreated is emitted after a checkout commits.
type OrderCreated struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	StoreID    int64     `json:"store_id"`
	Total      string    `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher emits order lifecycle events. Publishing is best-effort:
// checkout has already committed when events go out.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher writing to the given topic.
func NewKafkaPublisher(brokers []string, topic string) Publisher {
	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *kafkaPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: value,
	})
}

func (p *kafkaPublisher) Close() error { return p.writer.Close() }

type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards events. Used when
// no brokers are configured.
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) PublishOrderCreated(context.Context, OrderCreated) error { return nil }
func (nopPublisher) Close() error                                            { return nil }
