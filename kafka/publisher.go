package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/adilet-dev/campus-inventory/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishProductAssigned publishes a product assigned event with tracing.
// A nil publisher is a no-op so the API works without a broker.
func (p *Publisher) PublishProductAssigned(ctx context.Context, event ProductAssignedEvent) error {
	if p == nil {
		return nil
	}

	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.product_assigned",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicAssignments),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeProductAssigned),
			attribute.Int64("product.id", int64(event.ProductID)),
			attribute.Int64("student.id", int64(event.StudentID)),
			attribute.Int64("assignment.id", int64(event.AssignmentID)),
		),
	)
	defer span.End()

	event.EventType = EventTypeProductAssigned
	return p.publish(ctx, span, event.EventType, event.ProductID, &event.EventID, &event.Timestamp, &event)
}

// PublishProductReturned publishes a product returned event with tracing.
func (p *Publisher) PublishProductReturned(ctx context.Context, event ProductReturnedEvent) error {
	if p == nil {
		return nil
	}

	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.product_returned",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicAssignments),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeProductReturned),
			attribute.Int64("product.id", int64(event.ProductID)),
			attribute.Int64("student.id", int64(event.StudentID)),
		),
	)
	defer span.End()

	event.EventType = EventTypeProductReturned
	return p.publish(ctx, span, event.EventType, event.ProductID, &event.EventID, &event.Timestamp, &event)
}

// publish stamps event metadata, injects trace context into headers and sends.
func (p *Publisher) publish(ctx context.Context, span trace.Span, eventType string, productID uint, eventID *string, timestamp *time.Time, event interface{}) error {
	if *eventID == "" {
		*eventID = uuid.New().String()
	}
	*timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", *eventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(eventType),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(*eventID),
		},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   TopicAssignments,
		Key:     sarama.StringEncoder(fmt.Sprintf("product_%d", productID)),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", TopicAssignments).
			Str("event_type", eventType).
			Uint("product_id", productID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", *eventID).
		Str("event_type", eventType).
		Str("topic", TopicAssignments).
		Int32("partition", partition).
		Int64("offset", offset).
		Uint("product_id", productID).
		Msg("Assignment event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
