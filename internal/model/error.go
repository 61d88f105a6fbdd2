package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
	ProductID     int64  `json:"id_producto,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeInvalidID         = "INVALID_ID"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeFieldTooLong      = "FIELD_TOO_LONG"
	ErrCodeInvalidPrice      = "INVALID_PRICE"
	ErrCodeInvalidStock      = "INVALID_STOCK"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeEmptyInvoice      = "EMPTY_INVOICE"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeInvoiceNotFound   = "INVOICE_NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
)

// DomainError is a business-rule failure that is safe to show to the client.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so a
// parameterised error still matches its sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNameRequired  = NewDomainError(KindValidation, ErrCodeMissingField, "Product name is required")
	ErrStockRequired        = NewDomainError(KindValidation, ErrCodeMissingField, "Stock is required")
	ErrCustomerNameRequired = NewDomainError(KindValidation, ErrCodeMissingField, "Customer name is required")
	ErrProductNameTooLong   = NewDomainError(KindValidation, ErrCodeFieldTooLong, "Product name cannot exceed 255 characters")
	ErrCustomerNameTooLong  = NewDomainError(KindValidation, ErrCodeFieldTooLong, "Customer name cannot exceed 255 characters")
	ErrInvalidPrice         = NewDomainError(KindValidation, ErrCodeInvalidPrice, "Unit price must be greater than zero")
	ErrPriceTooLarge        = NewDomainError(KindValidation, ErrCodeInvalidPrice, "Unit price cannot exceed 9999999999.99")
	ErrPricePrecision       = NewDomainError(KindValidation, ErrCodeInvalidPrice, "Unit price cannot have more than 2 decimal places")
	ErrInvalidStock         = NewDomainError(KindValidation, ErrCodeInvalidStock, "Stock cannot be negative")
	ErrStockTooLarge        = NewDomainError(KindValidation, ErrCodeInvalidStock, "Stock cannot exceed 2147483647")
	ErrInvalidQuantity      = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrQuantityTooLarge     = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity per product cannot exceed 2147483647")
	ErrInvalidProductID     = NewDomainError(KindValidation, ErrCodeInvalidID, "Product ID must be a positive integer")
	ErrEmptyInvoice         = NewDomainError(KindValidation, ErrCodeEmptyInvoice, "Invoice must contain at least one line")
	ErrProductNotFound      = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrInvoiceNotFound      = NewDomainError(KindNotFound, ErrCodeInvoiceNotFound, "Invoice not found")
	ErrInsufficientStock    = NewDomainError(KindConflict, ErrCodeInsufficientStock, "Insufficient stock")
)

// NewProductNotFoundError names the missing product.
func NewProductNotFoundError(id int64) *DomainError {
	return NewDomainError(KindNotFound, ErrCodeProductNotFound, fmt.Sprintf("Product %d not found", id))
}

// NewInvoiceNotFoundError names the missing invoice.
func NewInvoiceNotFoundError(id int64) *DomainError {
	return NewDomainError(KindNotFound, ErrCodeInvoiceNotFound, fmt.Sprintf("Invoice %d not found", id))
}

// InsufficientStockError identifies the product whose stock cannot cover
// the requested quantity.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName == "" {
		return fmt.Sprintf("Insufficient stock for product %d: requested %d", e.ProductID, e.Requested)
	}
	return fmt.Sprintf("Insufficient stock for product %d (%s): requested %d, available %d",
		e.ProductID, e.ProductName, e.Requested, e.Available)
}

// Is makes errors.Is(err, ErrInsufficientStock) hold.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
