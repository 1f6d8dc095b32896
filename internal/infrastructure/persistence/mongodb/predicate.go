package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/domain/shared"
)

// OrderFilter translates an order predicate into a MongoDB filter document.
// Order line ids are stored as raw hex strings, so id predicates compare
// against the hex form.
func OrderFilter(predicate report.OrderPredicate) bson.M {
	var conditions []bson.M

	if predicate.ProductID != nil {
		conditions = append(conditions, bson.M{"product_ids": predicate.ProductID.Hex()})
	}
	if len(predicate.ProductIDs) > 0 {
		conditions = append(conditions, bson.M{"product_ids": bson.M{"$in": hexIDs(predicate.ProductIDs)}})
	}
	if predicate.StartDate != nil && predicate.EndDate != nil {
		conditions = append(conditions, bson.M{"date": bson.M{
			"$gte": *predicate.StartDate,
			"$lte": *predicate.EndDate,
		}})
	}

	switch len(conditions) {
	case 0:
		return bson.M{}
	case 1:
		return conditions[0]
	default:
		return bson.M{"$and": conditions}
	}
}

// ListFilter translates the generic list filter into a MongoDB filter on
// the given searchable field
func ListFilter(filter shared.Filter, searchField string) bson.M {
	if filter.Search == "" || searchField == "" {
		return bson.M{}
	}
	return bson.M{searchField: bson.M{"$regex": filter.Search, "$options": "i"}}
}

// SortSpec translates the generic list ordering into a MongoDB sort document
func SortSpec(filter shared.Filter) bson.D {
	field := filter.OrderBy
	if field == "" {
		field = "created_at"
	}
	direction := -1
	if filter.OrderDir == "asc" {
		direction = 1
	}
	return bson.D{{Key: field, Value: direction}}
}

func hexIDs(ids []primitive.ObjectID) []string {
	hex := make([]string, 0, len(ids))
	for _, id := range ids {
		hex = append(hex, id.Hex())
	}
	return hex
}
