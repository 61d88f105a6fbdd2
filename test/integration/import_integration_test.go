package integration

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/catalogimport"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGzipFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return path
}

func TestCatalogImport_Integration(t *testing.T) {
	env := SetupTestEnv(t)
	env.Reset(t)

	dir := t.TempDir()
	files := []string{
		writeGzipFile(t, dir, "a.csv.gz", "name,price,stock\nPencil,0.80,500\nFree,0,1\n"),
		writeGzipFile(t, dir, "b.csv.gz", "# office\nStapler,7.90,40\nBroken,x,1\n"),
	}

	loader := catalogimport.NewFallbackLoader(nil, catalogimport.NewFileLoader(zerolog.Nop()), "", zerolog.Nop())
	summary, err := catalogimport.NewImporter(loader, env.Products, zerolog.Nop()).
		Import(context.Background(), files)

	require.NoError(t, err)
	assert.Equal(t, &catalogimport.Summary{Files: 2, Rows: 4, Created: 2, Skipped: 2}, summary)

	products, err := env.Products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	names := []string{products[0].Name, products[1].Name}
	assert.ElementsMatch(t, []string{"Pencil", "Stapler"}, names)
	for _, p := range products {
		assert.True(t, p.UnitPrice.IsPositive())
	}
}
