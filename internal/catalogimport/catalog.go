// Package catalogimport bulk-loads products from gzipped CSV files kept on the
// local file system or in S3.
//
// Each non-comment line is "name,price,stock". Lines starting with '#' and
// blank lines are ignored; an optional "name,price,stock" header is skipped.
package catalogimport

import (
	"context"

	"storefront/internal/model"
)

// Record is one parsed catalogue row.
type Record struct {
	Line  int
	Input model.ProductInput
}

// Batch is the parsed content of one import file.
type Batch struct {
	Source  string
	Records []Record
	// Invalid counts lines that could not be parsed.
	Invalid int
}

// Loader defines the interface for loading catalogue files.
type Loader interface {
	// Load reads a gzipped catalogue file and returns its parsed rows.
	Load(ctx context.Context, path string) (*Batch, error)
}

// ProductCreator stores a validated product. service.ProductService satisfies it.
type ProductCreator interface {
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)
}

// Summary reports the outcome of an import run.
type Summary struct {
	Files   int
	Rows    int
	Created int
	Skipped int
}
