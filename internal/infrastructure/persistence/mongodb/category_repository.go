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

// CategoryRepository is the MongoDB implementation of catalog.CategoryRepository
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{collection: db.Collection(CollectionCategories)}
}

// FindByID finds a category by its ID
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Category, error) {
	var category catalog.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories matching the filter
func (r *CategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	opts := options.Find().
		SetSort(SortSpec(filter)).
		SetSkip(filter.Offset()).
		SetLimit(int64(filter.PageSize))

	cursor, err := r.collection.Find(ctx, ListFilter(filter, "name"), opts)
	if err != nil {
		return nil, err
	}

	var categories []catalog.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *CategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": category.ID}, category, opts)
	return err
}

// Delete deletes a category
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *CategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.collection.CountDocuments(ctx, ListFilter(filter, "name"))
}
