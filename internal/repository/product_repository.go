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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves every product ordered by id.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, unit_price, stock, created_at
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read product rows")
		return nil, err
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, name, unit_price, stock, created_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a product and fills in its generated ID and creation time.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, unit_price, stock)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, product.Name, product.UnitPrice, product.Stock).
		Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product created successfully")

	return nil
}

// Update overwrites name, price and stock of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, unit_price = $3, stock = $4
		WHERE id = $1
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query, product.ID, product.Name, product.UnitPrice, product.Stock).
		Scan(&product.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", product.ID).Msg("product to update not found")
			return model.NewProductNotFoundError(product.ID)
		}
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product updated successfully")

	return nil
}

// Delete removes a product together with the invoice lines that reference it.
// The product row is locked first so a concurrent invoice cannot add lines
// between the two deletes.
func (r *productRepository) Delete(ctx context.Context, id int64) (removedLines int64, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var lockedID int64
	err = tx.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product to delete not found")
			return 0, model.NewProductNotFoundError(id)
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to lock product")
		return 0, fmt.Errorf("failed to lock product: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE product_id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete invoice lines")
		return 0, fmt.Errorf("failed to delete invoice lines: %w", err)
	}
	removedLines = tag.RowsAffected()

	if _, err = tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to commit product deletion")
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if removedLines > 0 {
		r.logger.Warn().
			Int64("product_id", id).
			Int64("removed_invoice_lines", removedLines).
			Msg("product deleted together with its invoice history")
	}

	return removedLines, nil
}

// GetForUpdate locks the given product rows within tx, in ascending id order.
func (r *productRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT id, name, unit_price, stock, created_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to lock products")
		return nil, fmt.Errorf("failed to lock products: %w", err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read locked product rows")
		return nil, err
	}

	return products, nil
}

// DecrementStock subtracts quantity from a product's stock within tx.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Int("quantity", quantity).Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Int64("product_id", id).Int("quantity", quantity).Msg("stock could not cover quantity")
		return false, nil
	}

	return true, nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
