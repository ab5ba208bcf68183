package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TopicCart    = "cart_events"
	TopicProduct = "product_events"
)

const (
	CartCreated     = "cart_created"
	CartItemAdded   = "cart_item_added"
	CartItemUpdated = "cart_item_updated"
	CartItemRemoved = "cart_item_removed"
	ProductCreated  = "product_created"
)

// Publisher delivers domain events. Key selects the partition, so every event
// of one cart or product keeps its order.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

type CartEvent struct {
	Type      string     `json:"type"`
	CartID    uuid.UUID  `json:"cartID"`
	ItemID    *uuid.UUID `json:"itemID,omitempty"`
	ProductID *uuid.UUID `json:"productID,omitempty"`
	Quantity  int        `json:"quantity"`
	Subtotal  int64      `json:"subtotal"`
	Total     int64      `json:"total"`
	At        time.Time  `json:"at"`
}

type ProductEvent struct {
	Type      string    `json:"type"`
	ProductID uuid.UUID `json:"productID"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	At        time.Time `json:"at"`
}

type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }

func (Nop) Close() error { return nil }
