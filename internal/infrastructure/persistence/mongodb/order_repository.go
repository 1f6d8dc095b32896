package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice/server/internal/domain/ordering"
	"github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/domain/shared"
)

// OrderRepository is the MongoDB implementation of ordering.OrderRepository
// and report.OrderReader
type OrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{collection: db.Collection(CollectionOrders)}
}

// FindByID finds an order by its ID
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*ordering.Order, error) {
	var order ordering.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter. Orders have no textual
// fields, so search matches against the product line id hex strings.
func (r *OrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	opts := options.Find().
		SetSort(SortSpec(filter)).
		SetSkip(filter.Offset()).
		SetLimit(int64(filter.PageSize))

	cursor, err := r.collection.Find(ctx, ListFilter(filter, "product_ids"), opts)
	if err != nil {
		return nil, err
	}

	var orders []ordering.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByPredicate returns all orders matching the predicate, ascending by date
func (r *OrderRepository) FindByPredicate(ctx context.Context, predicate report.OrderPredicate) ([]ordering.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, OrderFilter(predicate), opts)
	if err != nil {
		return nil, err
	}

	var orders []ordering.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// FindSince returns all orders with date >= since, ascending by date
func (r *OrderRepository) FindSince(ctx context.Context, since time.Time) ([]ordering.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"date": bson.M{"$gte": since}}, opts)
	if err != nil {
		return nil, err
	}

	var orders []ordering.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order
func (r *OrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order, opts)
	return err
}

// Delete deletes an order
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts orders matching the same filter document FindAll uses,
// so paginated listings report a total consistent with their pages.
func (r *OrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.collection.CountDocuments(ctx, ListFilter(filter, "product_ids"))
}
