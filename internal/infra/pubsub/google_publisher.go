package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"inventory/internal/domain/service"
	"inventory/internal/errors"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
)

// googlePubSubPublisher implements EventPublisher using Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher connects to the project and fails fast when the topic is missing.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	return &googlePubSubPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

// PublishProductEvent blocks until the server acknowledges the message.
func (p *googlePubSubPublisher) PublishProductEvent(ctx context.Context, event *service.ProductEvent) error {
	return p.PublishProductEvents(ctx, []*service.ProductEvent{event})
}

// PublishProductEvents queues every event before waiting on any result, so
// the client bundles them instead of paying one round trip per event.
func (p *googlePubSubPublisher) PublishProductEvents(ctx context.Context, events []*service.ProductEvent) error {
	results := make([]*pubsub.PublishResult, 0, len(events))
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			return errors.WithStack(err)
		}

		results = append(results, p.publisher.Publish(ctx, &pubsub.Message{
			Data:       data,
			Attributes: eventAttributes(event),
		}))
	}

	var firstErr error
	for i, result := range results {
		serverID, err := result.Get(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "failed to publish event for product %s", events[i].ProductID)
			}

			continue
		}

		p.logger.Debug("[GooglePubSub] Event published",
			slog.String("event_type", string(events[i].Type)),
			slog.String("product_id", events[i].ProductID),
			slog.String("server_id", serverID),
		)
	}

	return firstErr
}

// Close flushes pending messages and releases the client.
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}
