package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access operations.
type ProductRepository interface {
	// GetAll retrieves every product ordered by id.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a product and fills in its generated ID and creation time.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites name, price and stock of an existing product.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product together with the invoice lines that reference it.
	// It returns the number of invoice lines removed.
	Delete(ctx context.Context, id int64) (int64, error)

	// GetForUpdate locks the given product rows within tx, in ascending id order.
	// Missing ids are simply absent from the result.
	GetForUpdate(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error)

	// DecrementStock subtracts quantity from a product's stock within tx.
	// It reports false when the stock could not cover the quantity.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error)
}

// InvoiceRepository defines the interface for invoice data access operations.
type InvoiceRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateInvoice inserts an invoice header within the provided transaction.
	CreateInvoice(ctx context.Context, tx pgx.Tx, invoice *model.Invoice) error

	// CreateInvoiceLines inserts invoice lines within the provided transaction.
	CreateInvoiceLines(ctx context.Context, tx pgx.Tx, lines []model.InvoiceLine) error

	// GetByID retrieves an invoice header. Returns nil, nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Invoice, error)

	// GetReportLines retrieves the report rows of an invoice ordered by line id.
	GetReportLines(ctx context.Context, invoiceID int64) ([]model.InvoiceReportLine, error)
}
