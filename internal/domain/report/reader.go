package report

import (
	"context"
	"time"

	"github.com/backoffice/server/internal/domain/ordering"
)

// OrderReader is the read-only order access the reporting engines need
type OrderReader interface {
	// FindByPredicate returns all orders matching the predicate, ordered by
	// ascending order date
	FindByPredicate(ctx context.Context, predicate OrderPredicate) ([]ordering.Order, error)

	// FindSince returns all orders with date >= since, ordered by ascending
	// order date
	FindSince(ctx context.Context, since time.Time) ([]ordering.Order, error)
}

// Publisher hands a finished sales report to the notification channel.
// The transport behind it is opaque to the reporting engine; a publish
// failure is reported once and never retried here.
type Publisher interface {
	Publish(ctx context.Context, report *SalesReport) error
}
