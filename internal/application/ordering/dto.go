package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/server/internal/domain/ordering"
)

// CreateOrderRequest represents a request to create a new order.
// ProductIDs is an ordered sequence; a repeated id means multiple units.
type CreateOrderRequest struct {
	Date       time.Time       `json:"date" binding:"required"`
	ProductIDs []string        `json:"product_ids" binding:"required,min=1,dive,objectid"`
	Total      decimal.Decimal `json:"total" binding:"required"`
}

// UpdateOrderRequest represents a request to update an order
type UpdateOrderRequest struct {
	Date       time.Time       `json:"date" binding:"required"`
	ProductIDs []string        `json:"product_ids" binding:"required,min=1,dive,objectid"`
	Total      decimal.Decimal `json:"total" binding:"required"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	ProductIDs []string  `json:"product_ids"`
	Total      float64   `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToOrderResponse converts an order to its API representation
func ToOrderResponse(order *ordering.Order) OrderResponse {
	total, _ := order.Total.Float64()
	return OrderResponse{
		ID:         order.ID.Hex(),
		Date:       order.Date,
		ProductIDs: order.ProductIDs,
		Total:      total,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
