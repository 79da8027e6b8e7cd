// Package events publishes quote events for reporting and export consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/metrics"
)

// QuoteComputed is emitted after a quote was computed.
type QuoteComputed struct {
	QuoteID       string          `json:"quote_id"`
	RequestID     string          `json:"request_id,omitempty"`
	ComputedAt    time.Time       `json:"computed_at"`
	TariffVersion string          `json:"tariff_version"`
	Category      string          `json:"category"`
	TotalWeight   decimal.Decimal `json:"total_weight"`
	Density       decimal.Decimal `json:"density"`
	BoxCount      int             `json:"box_count"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	Cheapest      string          `json:"cheapest_method"`
	CheapestTotal decimal.Decimal `json:"cheapest_total_regular"`
}

// NewQuoteComputed builds the event for a stored quote record.
func NewQuoteComputed(record *model.QuoteRecord) QuoteComputed {
	cheapest := record.Result.Cheapest()
	return QuoteComputed{
		QuoteID:       record.ID,
		RequestID:     record.RequestID,
		ComputedAt:    record.CreatedAt,
		TariffVersion: record.TariffVersion,
		Category:      record.Result.General.Category,
		TotalWeight:   record.Result.General.TotalWeight,
		Density:       record.Result.General.Density,
		BoxCount:      record.Result.General.BoxCount,
		ExchangeRate:  record.Result.General.ExchangeRate,
		Cheapest:      string(cheapest.Method),
		CheapestTotal: cheapest.TotalRegular,
	}
}

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publishes events keyed by an identifier.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// KafkaPublisher writes JSON events to a single topic.
type KafkaPublisher struct {
	writer Writer
	topic  string
}

// NewKafkaPublisher creates a publisher for topic on a comma-separated broker list.
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, topic: topic}
}

// NewKafkaPublisherWithWriter wraps an existing writer.
func NewKafkaPublisherWithWriter(w Writer, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

// Publish marshals value to JSON and writes it under key.
func (p *KafkaPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		metrics.RecordEventPublish(p.topic, "error")
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{Key: []byte(key), Value: b, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.RecordEventPublish(p.topic, "error")
		log.Error().Err(err).Str("topic", p.topic).Str("key", key).Msg("kafka write failed")
		return err
	}
	metrics.RecordEventPublish(p.topic, "success")
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// Publish does nothing.
func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Close does nothing.
func (NoopPublisher) Close() error { return nil }
