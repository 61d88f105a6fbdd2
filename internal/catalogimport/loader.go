package catalogimport

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// fileLoader implements Loader for reading gzipped catalogue files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped catalogue file from disk.
func (l *fileLoader) Load(ctx context.Context, path string) (*Batch, error) {
	l.logger.Info().Str("file", path).Msg("loading catalog file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer file.Close()

	batch, err := parseGzipCSV(ctx, file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalog file")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("records", len(batch.Records)).
		Int("invalid", batch.Invalid).
		Msg("catalog file loaded successfully")

	return batch, nil
}

const ctxCheckEvery = 10_000

// parseGzipCSV decodes "name,price,stock" rows from a gzip stream.
func parseGzipCSV(ctx context.Context, r io.Reader, source string) (*Batch, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
	}
	defer gzipReader.Close()

	reader := csv.NewReader(gzipReader)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	batch := &Batch{Source: source}
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				batch.Invalid++
				continue
			}
			return nil, fmt.Errorf("error reading catalog file %s: %w", source, err)
		}

		if n == 0 && isHeader(fields) {
			continue
		}

		record, ok := parseRecord(fields)
		if !ok {
			batch.Invalid++
			continue
		}
		record.Line, _ = reader.FieldPos(0)
		batch.Records = append(batch.Records, record)
	}

	return batch, nil
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "name")
}

func parseRecord(fields []string) (Record, bool) {
	if len(fields) != 3 {
		return Record{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
	if err != nil {
		return Record{}, false
	}

	stock, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Record{}, false
	}

	var rec Record
	rec.Input.Name = strings.TrimSpace(fields[0])
	rec.Input.UnitPrice = price
	rec.Input.Stock = &stock
	return rec, true
}
