package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/backoffice/server/internal/domain/shared"
)

// MaxProductNameLength is the maximum length of a product name
const MaxProductNameLength = 200

// Product represents a sellable product in the catalog.
// A product may belong to any number of categories.
type Product struct {
	shared.BaseAggregateRoot `bson:",inline"`
	Name                     string               `bson:"name"`
	Description              string               `bson:"description,omitempty"`
	Price                    decimal.Decimal      `bson:"price"`
	CategoryIDs              []primitive.ObjectID `bson:"category_ids"`
}

// NewProduct creates a new product
func NewProduct(name string, price decimal.Decimal, categoryIDs []primitive.ObjectID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateProductPrice(price); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Price:             price,
		CategoryIDs:       categoryIDs,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string, price decimal.Decimal) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateProductPrice(price); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Price = price
	p.Touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// AssignCategories replaces the product's category membership
func (p *Product) AssignCategories(categoryIDs []primitive.ObjectID) {
	p.CategoryIDs = categoryIDs
	p.Touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// BelongsToCategory reports whether the product is a member of the category
func (p *Product) BelongsToCategory(categoryID primitive.ObjectID) bool {
	for _, id := range p.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name is required")
	}
	if len(name) > MaxProductNameLength {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name is too long")
	}
	return nil
}

func validateProductPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRODUCT_PRICE", "Product price must be positive")
	}
	return nil
}
