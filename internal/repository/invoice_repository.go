package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// invoiceRepository implements the InvoiceRepository interface using PostgreSQL.
type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInvoiceRepository creates a new PostgreSQL-backed invoice repository.
func NewInvoiceRepository(pool *pgxpool.Pool, logger zerolog.Logger) InvoiceRepository {
	return &invoiceRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "invoice").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *invoiceRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateInvoice inserts an invoice header and fills in its ID and creation time.
func (r *invoiceRepository) CreateInvoice(ctx context.Context, tx pgx.Tx, invoice *model.Invoice) error {
	query := `
		INSERT INTO invoices (customer_name)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, invoice.CustomerName).Scan(&invoice.ID, &invoice.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_name", invoice.CustomerName).
			Msg("failed to create invoice")
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	r.logger.Debug().
		Int64("invoice_id", invoice.ID).
		Msg("invoice created successfully")

	return nil
}

// CreateInvoiceLines inserts invoice lines in one batch and fills in their IDs.
func (r *invoiceRepository) CreateInvoiceLines(ctx context.Context, tx pgx.Tx, lines []model.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO invoice_lines (invoice_id, product_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, line.InvoiceID, line.ProductID, line.Quantity, line.UnitPrice, line.LineTotal)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range lines {
		if err := results.QueryRow().Scan(&lines[i].ID); err != nil {
			r.logger.Error().
				Err(err).
				Int64("invoice_id", lines[i].InvoiceID).
				Int64("product_id", lines[i].ProductID).
				Msg("failed to create invoice line")
			return fmt.Errorf("failed to create invoice line: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(lines)).
		Msg("invoice lines created successfully")

	return nil
}

// GetByID retrieves an invoice header by its ID.
func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	query := `
		SELECT id, customer_name, created_at
		FROM invoices
		WHERE id = $1
	`

	var invoice model.Invoice
	err := r.pool.QueryRow(ctx, query, id).Scan(&invoice.ID, &invoice.CustomerName, &invoice.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("invoice_id", id).Msg("invoice not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("invoice_id", id).Msg("failed to query invoice")
		return nil, fmt.Errorf("failed to query invoice: %w", err)
	}

	return &invoice, nil
}

// GetReportLines retrieves the report rows of an invoice ordered by line id.
func (r *invoiceRepository) GetReportLines(ctx context.Context, invoiceID int64) ([]model.InvoiceReportLine, error) {
	query := `
		SELECT p.name, l.quantity, l.unit_price, l.line_total
		FROM invoice_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.invoice_id = $1
		ORDER BY l.id
	`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("invoice_id", invoiceID).
			Msg("failed to query invoice lines")
		return nil, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	defer rows.Close()

	lines := []model.InvoiceReportLine{}
	for rows.Next() {
		var line model.InvoiceReportLine
		if err := rows.Scan(&line.ProductName, &line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan invoice line row")
			return nil, fmt.Errorf("failed to scan invoice line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating invoice line rows")
		return nil, fmt.Errorf("error iterating invoice lines: %w", err)
	}

	return lines, nil
}
