package ordering

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/server/internal/domain/shared"
)

// Order represents a customer order.
// ProductIDs is an ordered sequence of product identifiers; a repeated id
// means multiple units of that product. Entries are kept as raw strings so
// that dangling or malformed references survive load and are handled by the
// reporting layer's defensive filter.
type Order struct {
	shared.BaseAggregateRoot `bson:",inline"`
	Date                     time.Time       `bson:"date"`
	ProductIDs               []string        `bson:"product_ids"`
	Total                    decimal.Decimal `bson:"total"`
}

// NewOrder creates a new order
func NewOrder(date time.Time, productIDs []string, total decimal.Decimal) (*Order, error) {
	if err := validateOrderTotal(total); err != nil {
		return nil, err
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              date,
		ProductIDs:        productIDs,
		Total:             total,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// Update replaces the order's date, product lines and total
func (o *Order) Update(date time.Time, productIDs []string, total decimal.Decimal) error {
	if err := validateOrderTotal(total); err != nil {
		return err
	}

	o.Date = date
	o.ProductIDs = productIDs
	o.Total = total
	o.Touch()

	o.AddDomainEvent(NewOrderUpdatedEvent(o))

	return nil
}

// LineCount returns the number of product line entries on the order
func (o *Order) LineCount() int {
	return len(o.ProductIDs)
}

func validateOrderTotal(total decimal.Decimal) error {
	if total.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_ORDER_TOTAL", "Order total must be positive")
	}
	return nil
}
