package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is a cart line priced at the current catalog rate.
type Line struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}

// View is the cart as returned to clients. The subtotal is a display value
// computed from current prices; checkout snapshots its own totals.
type View struct {
	Items    []Line          `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
