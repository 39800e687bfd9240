package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"inventory/internal/domain/service"
	"inventory/internal/errors"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaPublisher writes events keyed by product ID, so one product's events
// land on one partition in order.
type kafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) service.EventPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}, logger)
}

func newKafkaPublisher(writer messageWriter, logger *slog.Logger) *kafkaPublisher {
	return &kafkaPublisher{writer: writer, logger: logger}
}

func (p *kafkaPublisher) PublishProductEvent(ctx context.Context, event *service.ProductEvent) error {
	return p.PublishProductEvents(ctx, []*service.ProductEvent{event})
}

// PublishProductEvents hands the whole batch to the writer in one call, which
// groups the messages per partition into as few produce requests as possible.
func (p *kafkaPublisher) PublishProductEvents(ctx context.Context, events []*service.ProductEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := kafkaMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return errors.Wrap(err, "failed to write kafka messages")
	}

	p.logger.Debug("[Kafka] Events published",
		slog.String("event_type", string(events[0].Type)),
		slog.Int("count", len(events)),
	)

	return nil
}

func kafkaMessage(event *service.ProductEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, errors.WithStack(err)
	}

	attributes := eventAttributes(event)
	headers := make([]kafka.Header, 0, len(attributes))
	for key, value := range attributes {
		headers = append(headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	return kafka.Message{
		Key:     []byte(event.ProductID),
		Value:   data,
		Headers: headers,
		Time:    event.OccurredAt,
	}, nil
}

// Close flushes buffered messages.
func (p *kafkaPublisher) Close() error {
	return errors.WithStack(p.writer.Close())
}
