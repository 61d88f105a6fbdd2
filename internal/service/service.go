package service

import (
	"context"

	"storefront/internal/model"
)

// ProductService defines the catalogue operations.
type ProductService interface {
	// List retrieves every product ordered by id.
	List(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create validates the input and stores a new product.
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)

	// Update validates the input and overwrites an existing product.
	Update(ctx context.Context, id int64, input *model.ProductInput) (*model.Product, error)

	// Delete removes a product and every invoice line that references it.
	Delete(ctx context.Context, id int64) error
}

// InvoiceService defines the invoice operations.
type InvoiceService interface {
	// CreateInvoice records an invoice and decrements stock in one transaction.
	CreateInvoice(ctx context.Context, req *model.InvoiceRequest) (*model.InvoiceCreated, error)

	// GetReport retrieves an invoice with its line rows and computed total.
	GetReport(ctx context.Context, id int64) (*model.InvoiceReport, error)
}
