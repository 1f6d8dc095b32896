package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice/server/internal/domain/catalog"
	"github.com/backoffice/server/internal/domain/shared"
)

// ProductRepository is the MongoDB implementation of catalog.ProductRepository
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{collection: db.Collection(CollectionProducts)}
}

// FindByID finds a product by its ID
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Product, error) {
	var product catalog.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *ProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	opts := options.Find().
		SetSort(SortSpec(filter)).
		SetSkip(filter.Offset()).
		SetLimit(int64(filter.PageSize))

	cursor, err := r.collection.Find(ctx, ListFilter(filter, "name"), opts)
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs finds multiple products by their IDs
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategory finds all products that belong to the category
func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]catalog.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"category_ids": categoryID})
	if err != nil {
		return nil, err
	}

	var products []catalog.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *ProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, product, opts)
	return err
}

// Delete deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *ProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.collection.CountDocuments(ctx, ListFilter(filter, "name"))
}
