package catalogimport

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Importer loads catalogue files concurrently and creates their products
// through the catalogue service, so imported rows get the same validation as
// API writes.
type Importer struct {
	loader  Loader
	creator ProductCreator
	logger  zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(loader Loader, creator ProductCreator, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:  loader,
		creator: creator,
		logger:  logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads every file, then creates products in file order. Rows that fail
// validation are skipped; any other error stops the run and is returned with
// the partial summary.
func (i *Importer) Import(ctx context.Context, files []string) (*Summary, error) {
	summary := &Summary{Files: len(files)}
	if len(files) == 0 {
		return summary, nil
	}

	batches := make([]*Batch, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for idx, path := range files {
		g.Go(func() error {
			batch, err := i.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			batches[idx] = batch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		i.logger.Error().Err(err).Msg("catalog import aborted while loading files")
		return summary, err
	}

	for _, batch := range batches {
		summary.Rows += len(batch.Records) + batch.Invalid
		summary.Skipped += batch.Invalid

		for _, rec := range batch.Records {
			input := rec.Input
			if _, err := i.creator.Create(ctx, &input); err != nil {
				var domainErr *model.DomainError
				if errors.As(err, &domainErr) && domainErr.Kind == model.KindValidation {
					i.logger.Warn().
						Str("source", batch.Source).
						Int("line", rec.Line).
						Str("reason", domainErr.Message).
						Msg("skipping invalid catalog row")
					summary.Skipped++
					continue
				}
				i.logger.Error().Err(err).Str("source", batch.Source).Int("line", rec.Line).Msg("catalog import aborted")
				return summary, fmt.Errorf("failed to import %s line %d: %w", batch.Source, rec.Line, err)
			}
			summary.Created++
		}
	}

	i.logger.Info().
		Int("files", summary.Files).
		Int("rows", summary.Rows).
		Int("created", summary.Created).
		Int("skipped", summary.Skipped).
		Msg("catalog import finished")

	return summary, nil
}
