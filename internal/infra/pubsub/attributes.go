package pubsub

import "inventory/internal/domain/service"

// eventAttributes are the routing keys every transport attaches to a message.
func eventAttributes(event *service.ProductEvent) map[string]string {
	attributes := map[string]string{
		"event_type": string(event.Type),
		"product_id": event.ProductID,
		"owner_id":   event.OwnerID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
