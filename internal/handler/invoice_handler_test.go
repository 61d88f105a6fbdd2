package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvoiceService is a mock implementation of InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, req *model.InvoiceRequest) (*model.InvoiceCreated, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceCreated), args.Error(1)
}

func (m *MockInvoiceService) GetReport(ctx context.Context, id int64) (*model.InvoiceReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InvoiceReport), args.Error(1)
}

func TestInvoiceHandler_Create(t *testing.T) {
	validBody := `{"nombre_cliente":"Ana","productos":[{"id_producto":1,"cantidad":3,"valor_u":0.01}]}`

	tests := []struct {
		name              string
		body              string
		mockReturn        *model.InvoiceCreated
		mockError         error
		expectService     bool
		expectedStatus    int
		expectedCode      string
		expectedProductID int64
	}{
		{
			name:           "Success",
			body:           validBody,
			mockReturn:     &model.InvoiceCreated{ID: 12},
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty invoice",
			body:           `{"nombre_cliente":"Ana","productos":[]}`,
			mockError:      model.ErrEmptyInvoice,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeEmptyInvoice,
		},
		{
			name:           "Unknown product",
			body:           validBody,
			mockError:      model.NewProductNotFoundError(1),
			expectService:  true,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeProductNotFound,
		},
		{
			name: "Insufficient stock",
			body: validBody,
			mockError: &model.InsufficientStockError{
				ProductID: 1, ProductName: "Pencil", Requested: 3, Available: 2,
			},
			expectService:     true,
			expectedStatus:    http.StatusConflict,
			expectedCode:      model.ErrCodeInsufficientStock,
			expectedProductID: 1,
		},
		{
			name:           "Wrapped store failure",
			body:           validBody,
			mockError:      errors.New("failed to create invoice: connection reset"),
			expectService:  true,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
		{
			name:           "Malformed JSON",
			body:           `{"nombre_cliente":"Ana","productos":[{`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Quantity as text",
			body:           `{"nombre_cliente":"Ana","productos":[{"id_producto":1,"cantidad":"three"}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockInvoiceService)
			handler := NewInvoiceHandler(mockService, zerolog.Nop())

			if tt.expectService {
				if tt.mockError != nil {
					mockService.On("CreateInvoice", mock.Anything, mock.AnythingOfType("*model.InvoiceRequest")).Return(nil, tt.mockError)
				} else {
					mockService.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(req *model.InvoiceRequest) bool {
						return req.CustomerName == "Ana" && len(req.Lines) == 1 &&
							req.Lines[0].ProductID == 1 && req.Lines[0].Quantity == 3
					})).Return(tt.mockReturn, nil)
				}
			}

			w := httptest.NewRecorder()
			handler.Create(w, newRequest(http.MethodPost, "/facturas", "", []byte(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode == "" {
				var created map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
				assert.Equal(t, float64(12), created["id_factura"])
			} else {
				resp := decodeError(t, w)
				assert.Equal(t, tt.expectedCode, resp.Error)
				assert.Equal(t, tt.expectedProductID, resp.ProductID)
			}

			if tt.expectService {
				mockService.AssertExpectations(t)
			} else {
				mockService.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestInvoiceHandler_GetReport(t *testing.T) {
	report := &model.InvoiceReport{
		Invoice: model.Invoice{ID: 5, CustomerName: "Ana", CreatedAt: time.Now()},
		Lines: []model.InvoiceReportLine{
			{ProductName: "Pencil", Quantity: 3, UnitPrice: decimal.RequireFromString("10.00"), LineTotal: decimal.RequireFromString("30.00")},
		},
		Total: decimal.RequireFromString("30.00"),
	}

	tests := []struct {
		name           string
		id             string
		mockReturn     *model.InvoiceReport
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Success",
			id:             "5",
			mockReturn:     report,
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			id:             "6",
			mockError:      model.NewInvoiceNotFoundError(6),
			expectService:  true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid id",
			id:             "five",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockInvoiceService)
			handler := NewInvoiceHandler(mockService, zerolog.Nop())
			if tt.expectService {
				if tt.mockError != nil {
					mockService.On("GetReport", mock.Anything, mock.AnythingOfType("int64")).Return(nil, tt.mockError)
				} else {
					mockService.On("GetReport", mock.Anything, int64(5)).Return(tt.mockReturn, nil)
				}
			}

			w := httptest.NewRecorder()
			handler.GetReport(w, newRequest(http.MethodGet, "/facturas/"+tt.id, tt.id, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got model.InvoiceReport
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, "Ana", got.CustomerName)
				assert.Len(t, got.Lines, 1)
				assert.True(t, decimal.RequireFromString("30").Equal(got.Total))
			}
			mockService.AssertExpectations(t)
		})
	}
}
