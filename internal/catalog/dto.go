package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrimartlabs/agrimart-backend/pkg/enums"
)

// ProductFilters describe the inputs supported by the product list.
type ProductFilters struct {
	Category   *enums.ProductCategory
	Query      string
	ActiveOnly bool
}

// Availability reports the current price and stock for a single product.
type Availability struct {
	ProductID uuid.UUID       `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
}

// ProductSummary exposes the fields returned in the product list.
type ProductSummary struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Category  enums.ProductCategory `json:"category"`
	UnitPrice decimal.Decimal       `json:"unit_price"`
	ImageURL  *string               `json:"image_url,omitempty"`
	Stock     int                   `json:"stock"`
	CreatedAt time.Time             `json:"created_at"`
}

// ProductList wraps the paginated products plus the next page cursor.
type ProductList struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// CreateProductInput carries the admin inputs for a new listing.
type CreateProductInput struct {
	Name        string
	Description *string
	Category    enums.ProductCategory
	UnitPrice   decimal.Decimal
	ImageURL    *string
	Keywords    []string
	Stock       int
}

// UpdateProductInput carries the admin inputs for a partial update. Nil fields
// are left untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *enums.ProductCategory
	UnitPrice   *decimal.Decimal
	ImageURL    *string
	Keywords    []string
	IsActive    *bool
	Stock       *int
}
