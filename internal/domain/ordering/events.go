package ordering

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/backoffice/server/internal/domain/shared"
)

// AggregateTypeOrder is the aggregate type for orders
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated = "OrderCreated"
	EventTypeOrderUpdated = "OrderUpdated"
)

// OrderCreatedEvent is published when a new order is created.
// The notification path subscribes to this event.
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    primitive.ObjectID `json:"order_id"`
	Date       time.Time          `json:"date"`
	ProductIDs []string           `json:"product_ids"`
	Total      decimal.Decimal    `json:"total"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		Date:            order.Date,
		ProductIDs:      order.ProductIDs,
		Total:           order.Total,
	}
}

// OrderUpdatedEvent is published when an order is updated
type OrderUpdatedEvent struct {
	shared.BaseDomainEvent
	OrderID primitive.ObjectID `json:"order_id"`
	Total   decimal.Decimal    `json:"total"`
}

// NewOrderUpdatedEvent creates a new OrderUpdatedEvent
func NewOrderUpdatedEvent(order *Order) *OrderUpdatedEvent {
	return &OrderUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderUpdated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		Total:           order.Total,
	}
}
