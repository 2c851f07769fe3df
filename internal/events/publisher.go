package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/louis0604/auto-parts-inventory-sub000/pkg/logger"
)

// Publisher delivers inventory events to downstream consumers
type Publisher interface {
	PublishStockMoved(ctx context.Context, event StockMovedEvent) error
	PublishLowStock(ctx context.Context, event LowStockEvent) error
	PublishDocumentCreated(ctx context.Context, event DocumentCreatedEvent) error
	Close() error
}

// KafkaPublisher wraps a Kafka sync producer
type KafkaPublisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewProducerConfig returns the producer settings used for inventory events
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000
	return config
}

func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewKafkaPublisherWithProducer(producer, brokers), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, brokers []string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, brokers: brokers}
}

func (p *KafkaPublisher) PublishStockMoved(ctx context.Context, event StockMovedEvent) error {
	event.EventID = newEventID(event.EventID)
	event.EventType = EventTypeStockMoved
	event.Timestamp = time.Now()
	return p.send(ctx, TopicStockMoved, partKey(event.PartID), event.EventID, event.EventType, event)
}

func (p *KafkaPublisher) PublishLowStock(ctx context.Context, event LowStockEvent) error {
	event.EventID = newEventID(event.EventID)
	event.EventType = EventTypeLowStock
	event.Timestamp = time.Now()
	return p.send(ctx, TopicLowStock, partKey(event.PartID), event.EventID, event.EventType, event)
}

func (p *KafkaPublisher) PublishDocumentCreated(ctx context.Context, event DocumentCreatedEvent) error {
	event.EventID = newEventID(event.EventID)
	event.EventType = EventTypeDocumentCreated
	event.Timestamp = time.Now()
	return p.send(ctx, TopicDocuments, event.Kind+"_"+event.Number, event.EventID, event.EventType, event)
}

func (p *KafkaPublisher) send(ctx context.Context, topic, key, eventID, eventType string, event any) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(eventBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
			{Key: []byte("event_id"), Value: []byte(eventID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		logger.Error(ctx).
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	logger.Debug(ctx).
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
	return nil
}

// Close closes the Kafka producer
func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func partKey(partID int64) string {
	return fmt.Sprintf("part_%d", partID)
}

func newEventID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// NoopPublisher drops every event; used when no brokers are configured
type NoopPublisher struct{}

func (NoopPublisher) PublishStockMoved(context.Context, StockMovedEvent) error           { return nil }
func (NoopPublisher) PublishLowStock(context.Context, LowStockEvent) error               { return nil }
func (NoopPublisher) PublishDocumentCreated(context.Context, DocumentCreatedEvent) error { return nil }
func (NoopPublisher) Close() error                                                       { return nil }
