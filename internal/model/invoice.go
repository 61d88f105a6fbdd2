package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the header of a sale. It is written once and never updated.
type Invoice struct {
	ID           int64     `json:"id_factura" db:"id"`
	CustomerName string    `json:"nombre_cliente" db:"customer_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// InvoiceLine is one product/quantity/price entry of an invoice.
type InvoiceLine struct {
	ID        int64           `json:"id_detalle" db:"id"`
	InvoiceID int64           `json:"id_factura" db:"invoice_id"`
	ProductID int64           `json:"id_producto" db:"product_id"`
	Quantity  int             `json:"cantidad" db:"quantity"`
	UnitPrice decimal.Decimal `json:"valor_u" db:"unit_price"`
	LineTotal decimal.Decimal `json:"valor_t" db:"line_total"`
}

// NewInvoiceLine prices a line from the catalogue record, never from client input.
func NewInvoiceLine(invoiceID int64, product Product, quantity int) InvoiceLine {
	return InvoiceLine{
		InvoiceID: invoiceID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.UnitPrice,
		LineTotal: product.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// InvoiceRequest represents the request payload for creating an invoice.
type InvoiceRequest struct {
	CustomerName string               `json:"nombre_cliente"`
	Lines        []InvoiceLineRequest `json:"productos"`
}

// InvoiceLineRequest represents a single line in an invoice request.
// Any price sent by the client is ignored.
type InvoiceLineRequest struct {
	ProductID int64 `json:"id_producto"`
	Quantity  int   `json:"cantidad"`
}

// InvoiceCreated is returned after a successful invoice transaction.
type InvoiceCreated struct {
	ID int64 `json:"id_factura"`
}

// InvoiceReportLine is one row handed to the report formatter.
type InvoiceReportLine struct {
	ProductName string          `json:"nombre"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"valor_u"`
	LineTotal   decimal.Decimal `json:"valor_t"`
}

// InvoiceReport is the read-only view of an invoice used by the PDF/Excel formatter.
type InvoiceReport struct {
	Invoice
	Lines []InvoiceReportLine `json:"detalles"`
	Total decimal.Decimal     `json:"total"`
}

// SumLineTotals returns the invoice total. It is computed on demand and never stored.
func SumLineTotals(lines []InvoiceReportLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}
