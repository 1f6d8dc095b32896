package report

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardFilter carries the recognized dashboard filter fields. Every
// field is optional; CategoryID and ProductID are raw 24-hex identifier
// strings validated during resolution.
type DashboardFilter struct {
	CategoryID  string
	ProductID   string
	StartDate   *time.Time
	EndDate     *time.Time
	Granularity Granularity
}

// OrderPredicate is the order-level match criteria produced by filter
// resolution and consumed by the order store.
type OrderPredicate struct {
	// ProductID matches orders whose line sequence contains this product
	ProductID *primitive.ObjectID
	// ProductIDs matches orders containing any of these products; set when
	// a category filter has been resolved to its member products
	ProductIDs []primitive.ObjectID
	// StartDate/EndDate bound the order date inclusively; both are set or
	// neither is
	StartDate *time.Time
	EndDate   *time.Time
}

// ResolvedFilter is the outcome of filter resolution. Empty signals that
// the filters can match nothing (a category with no products) and the
// aggregation must yield no buckets without querying the order store.
type ResolvedFilter struct {
	Empty     bool
	Predicate OrderPredicate
}
