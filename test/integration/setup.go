package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/database/databasetest"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestEnv is a running storefront API backed by a disposable database.
type TestEnv struct {
	Pool     *pgxpool.Pool
	Server   *httptest.Server
	Products service.ProductService
}

// SetupTestEnv wires the full application stack behind an httptest.Server.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	pool := databasetest.NewPool(t)
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(pool, logger)
	invoiceRepo := repository.NewInvoiceRepository(pool, logger)

	productService := service.NewProductService(productRepo, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, logger)

	mux := router.New(
		handler.NewProductHandler(productService, logger),
		handler.NewInvoiceHandler(invoiceService, logger),
		handler.Health(pool, logger),
		"*",
		logger,
	)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &TestEnv{Pool: pool, Server: server, Products: productService}
}

// Reset empties the database between subtests.
func (e *TestEnv) Reset(t *testing.T) {
	t.Helper()
	databasetest.Truncate(t, e.Pool)
}

// Do sends a JSON request and returns the response with its body read.
func (e *TestEnv) Do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, e.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// PostInvoice creates an invoice and returns only the status code. It does not
// touch testing.T, so it is safe to call from worker goroutines.
func (e *TestEnv) PostInvoice(body any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	resp, err := e.Server.Client().Post(e.Server.URL+"/facturas", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_, err = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, err
}

// CreateProduct adds a product through the API and returns it.
func (e *TestEnv) CreateProduct(t *testing.T, name, price string, stock int) model.Product {
	t.Helper()

	resp, body := e.Do(t, http.MethodPost, "/productos", map[string]any{
		"nombre":  name,
		"valor_u": price,
		"stock":   stock,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var product model.Product
	require.NoError(t, json.Unmarshal(body, &product))
	return product
}

// Stock reads a product's stock straight from the database.
func (e *TestEnv) Stock(t *testing.T, productID int64) int {
	t.Helper()

	var stock int
	err := e.Pool.QueryRow(context.Background(),
		`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

// CountRows counts rows in table.
func (e *TestEnv) CountRows(t *testing.T, table string) int {
	t.Helper()

	var n int
	err := e.Pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n)
	require.NoError(t, err)
	return n
}

func invoiceBody(customer string, lines ...model.InvoiceLineRequest) model.InvoiceRequest {
	return model.InvoiceRequest{CustomerName: customer, Lines: lines}
}

func line(productID int64, qty int) model.InvoiceLineRequest {
	return model.InvoiceLineRequest{ProductID: productID, Quantity: qty}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
