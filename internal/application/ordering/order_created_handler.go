package ordering

import (
	"context"

	"go.uber.org/zap"

	"github.com/backoffice/server/internal/domain/ordering"
	"github.com/backoffice/server/internal/domain/shared"
)

// OrderCreatedHandler reacts to order creation. It records the order for
// operational visibility; the heavier notification work is the scheduled
// sales report's job.
type OrderCreatedHandler struct {
	logger *zap.Logger
}

// NewOrderCreatedHandler creates a new OrderCreatedHandler
func NewOrderCreatedHandler(logger *zap.Logger) *OrderCreatedHandler {
	return &OrderCreatedHandler{logger: logger}
}

// Handle processes an OrderCreated event
func (h *OrderCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*ordering.OrderCreatedEvent)
	if !ok {
		return nil
	}

	h.logger.Info("order created",
		zap.String("order_id", created.OrderID.Hex()),
		zap.Time("date", created.Date),
		zap.Int("lines", len(created.ProductIDs)),
		zap.String("total", created.Total.String()),
	)
	return nil
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderCreatedHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderCreated}
}
