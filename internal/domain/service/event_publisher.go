package service

import (
	"context"
	"time"
)

// ProductEventType names a product lifecycle transition.
type ProductEventType string

const (
	ProductCreated     ProductEventType = "product.created"
	ProductUpdated     ProductEventType = "product.updated"
	ProductDeactivated ProductEventType = "product.deactivated"
)

// ProductEvent is emitted after a product write has been committed.
type ProductEvent struct {
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       ProductEventType `json:"type"`
	ProductID  string           `json:"product_id"`
	OwnerID    string           `json:"owner_id"`
	Handle     string           `json:"handle"`
	State      string           `json:"state"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishProductEvent publishes a product lifecycle event
	PublishProductEvent(ctx context.Context, event *ProductEvent) error

	// PublishProductEvents publishes a batch of events in as few broker
	// round trips as the transport allows. The first failure is returned.
	PublishProductEvents(ctx context.Context, events []*ProductEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
