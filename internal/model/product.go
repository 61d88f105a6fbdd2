package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the storefront catalogue.
type Product struct {
	ID        int64           `json:"id_producto" db:"id"`
	Name      string          `json:"nombre" db:"name"`
	UnitPrice decimal.Decimal `json:"valor_u" db:"unit_price"`
	Stock     int             `json:"stock" db:"stock"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// ProductInput is the payload for creating or updating a product.
// Stock is a pointer so a missing value can be told apart from zero.
type ProductInput struct {
	Name      string          `json:"nombre"`
	UnitPrice decimal.Decimal `json:"valor_u"`
	Stock     *int            `json:"stock"`
}

// Column limits of the products, invoices and invoice_lines tables.
const (
	MaxNameLength = 255
	MaxStock      = math.MaxInt32
	MaxQuantity   = math.MaxInt32
	PriceScale    = 2
)

// MaxUnitPrice is the largest value NUMERIC(12,2) holds.
var MaxUnitPrice = decimal.RequireFromString("9999999999.99")
