package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// invoiceService implements InvoiceService.
type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "invoice").Logger(),
	}
}

// CreateInvoice records the invoice header, its lines and the stock decrements
// in a single transaction. Product rows are locked in ascending id order and
// every price comes from the locked row.
func (s *invoiceService) CreateInvoice(ctx context.Context, req *model.InvoiceRequest) (created *model.InvoiceCreated, err error) {
	if err = s.validateInvoiceRequest(req); err != nil {
		return nil, err
	}

	quantities, ids, err := aggregateQuantities(req.Lines)
	if err != nil {
		s.logger.Warn().Msg("aggregated quantity out of range")
		return nil, err
	}

	tx, err := s.invoiceRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	locked, err := s.productRepo.GetForUpdate(ctx, tx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(ids)).Msg("failed to lock products")
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	products := make(map[int64]model.Product, len(locked))
	for _, p := range locked {
		products[p.ID] = p
	}

	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			s.logger.Warn().Int64("product_id", id).Msg("invoice references unknown product")
			return nil, model.NewProductNotFoundError(id)
		}
		if quantities[id] > p.Stock {
			s.logger.Warn().
				Int64("product_id", id).
				Int("requested", quantities[id]).
				Int("available", p.Stock).
				Msg("insufficient stock")
			return nil, &model.InsufficientStockError{
				ProductID:   id,
				ProductName: p.Name,
				Requested:   quantities[id],
				Available:   p.Stock,
			}
		}
	}

	invoice := &model.Invoice{CustomerName: strings.TrimSpace(req.CustomerName)}
	if err = s.invoiceRepo.CreateInvoice(ctx, tx, invoice); err != nil {
		s.logger.Error().Err(err).Msg("failed to create invoice header")
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	lines := make([]model.InvoiceLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = model.NewInvoiceLine(invoice.ID, products[l.ProductID], l.Quantity)
	}

	if err = s.invoiceRepo.CreateInvoiceLines(ctx, tx, lines); err != nil {
		s.logger.Error().
			Err(err).
			Int64("invoice_id", invoice.ID).
			Int("line_count", len(lines)).
			Msg("failed to create invoice lines")
		return nil, fmt.Errorf("failed to create invoice lines: %w", err)
	}

	for _, id := range ids {
		var decremented bool
		decremented, err = s.productRepo.DecrementStock(ctx, tx, id, quantities[id])
		if err != nil {
			s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to decrement stock")
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}
		if !decremented {
			return nil, &model.InsufficientStockError{
				ProductID:   id,
				ProductName: products[id].Name,
				Requested:   quantities[id],
				Available:   products[id].Stock,
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("invoice_id", invoice.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info().
		Int64("invoice_id", invoice.ID).
		Int("line_count", len(lines)).
		Msg("invoice created successfully")

	return &model.InvoiceCreated{ID: invoice.ID}, nil
}

// GetReport retrieves an invoice with its line rows and computed total.
func (s *invoiceService) GetReport(ctx context.Context, id int64) (*model.InvoiceReport, error) {
	if id <= 0 {
		return nil, model.NewDomainError(model.KindValidation, model.ErrCodeInvalidID, "Invoice ID must be a positive integer")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("invoice_id", id).Msg("failed to get invoice")
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice == nil {
		s.logger.Debug().Int64("invoice_id", id).Msg("invoice not found")
		return nil, model.NewInvoiceNotFoundError(id)
	}

	lines, err := s.invoiceRepo.GetReportLines(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("invoice_id", id).Msg("failed to get invoice lines")
		return nil, fmt.Errorf("failed to get invoice lines: %w", err)
	}

	return &model.InvoiceReport{
		Invoice: *invoice,
		Lines:   lines,
		Total:   model.SumLineTotals(lines),
	}, nil
}

// validateInvoiceRequest validates the invoice request.
func (s *invoiceService) validateInvoiceRequest(req *model.InvoiceRequest) error {
	if req == nil || strings.TrimSpace(req.CustomerName) == "" {
		return model.ErrCustomerNameRequired
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.CustomerName)) > model.MaxNameLength {
		return model.ErrCustomerNameTooLong
	}

	if len(req.Lines) == 0 {
		return model.ErrEmptyInvoice
	}

	for i, line := range req.Lines {
		if line.ProductID <= 0 {
			s.logger.Warn().Int("line_index", i).Int64("product_id", line.ProductID).Msg("invalid product id")
			return model.ErrInvalidProductID
		}

		if line.Quantity <= 0 {
			s.logger.Warn().
				Int("line_index", i).
				Int64("product_id", line.ProductID).
				Int("quantity", line.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
		if line.Quantity > model.MaxQuantity {
			s.logger.Warn().Int("line_index", i).Int("quantity", line.Quantity).Msg("quantity too large")
			return model.ErrQuantityTooLarge
		}
	}

	return nil
}

// aggregateQuantities sums the requested quantity per product and returns the
// product ids in ascending order. Each line must already be in
// (0, MaxQuantity]; a per-product sum above MaxQuantity is rejected.
func aggregateQuantities(lines []model.InvoiceLineRequest) (map[int64]int, []int64, error) {
	quantities := make(map[int64]int, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		current, seen := quantities[l.ProductID]
		if !seen {
			ids = append(ids, l.ProductID)
		}
		if l.Quantity > model.MaxQuantity-current {
			return nil, nil, model.ErrQuantityTooLarge
		}
		quantities[l.ProductID] = current + l.Quantity
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return quantities, ids, nil
}

// isDomainError reports whether err is a client-facing business error.
func isDomainError(err error) bool {
	var domainErr *model.DomainError
	var stockErr *model.InsufficientStockError
	return errors.As(err, &domainErr) || errors.As(err, &stockErr)
}
