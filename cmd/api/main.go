package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/catalogimport"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	// Repositories
	productRepo := repository.NewProductRepository(pool, logger)
	invoiceRepo := repository.NewInvoiceRepository(pool, logger)

	// Services
	productService := service.NewProductService(productRepo, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, logger)

	if cfg.Import.Enabled {
		if err := importCatalog(ctx, cfg, productService, logger); err != nil {
			return fmt.Errorf("failed to import catalog: %w", err)
		}
	}

	// HTTP
	productHandler := handler.NewProductHandler(productService, logger)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, logger)
	mux := router.New(
		productHandler,
		invoiceHandler,
		handler.Health(pool, logger),
		cfg.CORS.AllowedOrigin,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// importCatalog seeds products from gzipped CSV files, reading from S3 when
// enabled and from the local file system otherwise.
func importCatalog(ctx context.Context, cfg *config.Config, products service.ProductService, logger zerolog.Logger) error {
	fileLoader := catalogimport.NewFileLoader(logger)

	var s3Loader catalogimport.Loader
	if cfg.S3.Enabled {
		l, err := catalogimport.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	} else {
		logger.Info().Msg("using local file system for catalog files (S3 disabled)")
	}

	loader := catalogimport.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
	_, err := catalogimport.NewImporter(loader, products, logger).Import(ctx, cfg.Import.Files)
	return err
}
