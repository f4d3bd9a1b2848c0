package events

import (
	"context"
	"time"
)

const (
	TopicProducts = "product_events"
	TopicOrders   = "order_events"
	TopicUsers    = "user_events"
)

const (
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
	ReviewAdded    = "review_added"

	OrderCreated       = "order_created"
	OrderStatusUpdated = "order_status_updated"
	OrderDeleted       = "order_deleted"

	UserRegistered = "user_registered"
	UserDeleted    = "user_deleted"
)

// Event is the JSON envelope written to every topic.
type Event struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

func New(typ, id string, data any) Event {
	return Event{Type: typ, ID: id, At: time.Now().UTC(), Data: data}
}

type Noop struct{}

func (Noop) PublishEvent(context.Context, string, string, any) error { return nil }

func (Noop) Close() error { return nil }
