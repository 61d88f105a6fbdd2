// Command gencatalog writes sample gzipped catalogue files for the startup
// import.
package main

import (
	"compress/gzip"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

type sampleProduct struct {
	name  string
	price string
	stock int
}

// Each file carries a header row, a comment and one row the importer
// rejects, so a run exercises the skip path too.
var catalogs = map[string][]sampleProduct{
	"stationery.csv.gz": {
		{"Pencil HB", "0.80", 500},
		{"Ballpoint pen blue", "1.20", 300},
		{"A4 notebook", "3.50", 120},
		{"Eraser", "0.45", 250},
		{"Promotional sticker", "0", 1000}, // rejected: price must be positive
	},
	"office.csv.gz": {
		{"Stapler", "7.90", 40},
		{"Staples box 1000", "1.60", 200},
		{"Paper ream A4", "5.25", 80},
		{"Desk lamp", "24.99", 15},
		{"Broken chair", "35.00", -1}, // rejected: stock cannot be negative
	},
}

func main() {
	dataDir := flag.String("dir", "data/catalog", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	for filename, products := range catalogs {
		filePath := filepath.Join(*dataDir, filename)

		if err := writeCatalogFile(filePath, products); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d rows\n", filePath, len(products))
	}

	fmt.Printf("\nSet CATALOG_IMPORT_ENABLED=true and CATALOG_IMPORT_FILES=%s,%s to import them.\n",
		filepath.Join(*dataDir, "stationery.csv.gz"),
		filepath.Join(*dataDir, "office.csv.gz"))
}

func writeCatalogFile(filePath string, products []sampleProduct) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if _, err := fmt.Fprintln(gzipWriter, "# name,price,stock"); err != nil {
		return fmt.Errorf("failed to write comment: %w", err)
	}

	w := csv.NewWriter(gzipWriter)
	if err := w.Write([]string{"name", "price", "stock"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range products {
		if err := w.Write([]string{p.name, p.price, strconv.Itoa(p.stock)}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush rows: %w", err)
	}

	return gzipWriter.Close()
}
