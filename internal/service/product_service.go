package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves every product ordered by id.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, model.ErrInvalidProductID
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.NewProductNotFoundError(id)
	}

	return product, nil
}

// Create validates the input and stores a new product.
func (s *productService) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	product, err := s.buildProduct(input)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// Update validates the input and overwrites an existing product.
// Lines already invoiced keep the price they were sold at.
func (s *productService) Update(ctx context.Context, id int64, input *model.ProductInput) (*model.Product, error) {
	if id <= 0 {
		return nil, model.ErrInvalidProductID
	}

	product, err := s.buildProduct(input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.productRepo.Update(ctx, product); err != nil {
		if isDomainError(err) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	return product, nil
}

// Delete removes a product and every invoice line that references it.
func (s *productService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrInvalidProductID
	}

	removed, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		if isDomainError(err) {
			return err
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().
		Int64("product_id", id).
		Int64("removed_invoice_lines", removed).
		Msg("product deleted")

	return nil
}

// buildProduct validates a product payload and normalises it.
func (s *productService) buildProduct(input *model.ProductInput) (*model.Product, error) {
	if input == nil {
		return nil, model.ErrProductNameRequired
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.ErrProductNameRequired
	}
	if utf8.RuneCountInString(name) > model.MaxNameLength {
		s.logger.Warn().Int("length", utf8.RuneCountInString(name)).Msg("product name too long")
		return nil, model.ErrProductNameTooLong
	}

	// Prices are stored in cents; extra digits are rejected, not rounded.
	price := input.UnitPrice
	if !price.IsPositive() {
		s.logger.Warn().Str("name", name).Str("unit_price", price.String()).Msg("invalid unit price")
		return nil, model.ErrInvalidPrice
	}
	if !price.Equal(price.Round(model.PriceScale)) {
		s.logger.Warn().Str("name", name).Str("unit_price", price.String()).Msg("unit price has too many decimals")
		return nil, model.ErrPricePrecision
	}
	if price.GreaterThan(model.MaxUnitPrice) {
		s.logger.Warn().Str("name", name).Str("unit_price", price.String()).Msg("unit price too large")
		return nil, model.ErrPriceTooLarge
	}
	price = price.Round(model.PriceScale)

	if input.Stock == nil {
		return nil, model.ErrStockRequired
	}
	if *input.Stock < 0 {
		s.logger.Warn().Str("name", name).Int("stock", *input.Stock).Msg("invalid stock")
		return nil, model.ErrInvalidStock
	}
	if *input.Stock > model.MaxStock {
		s.logger.Warn().Str("name", name).Int("stock", *input.Stock).Msg("stock too large")
		return nil, model.ErrStockTooLarge
	}

	return &model.Product{
		Name:      name,
		UnitPrice: price,
		Stock:     *input.Stock,
	}, nil
}
