package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// InvoiceHandler handles invoice HTTP requests.
type InvoiceHandler struct {
	service service.InvoiceService
	logger  zerolog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(service service.InvoiceService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger.With().Str("handler", "invoice").Logger(),
	}
}

// Create handles POST /facturas.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.InvoiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeInvalidJSON(w, r, h.logger)
		return
	}

	created, err := h.service.CreateInvoice(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetReport handles GET /facturas/{id}.
func (h *InvoiceHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeInvalidID(w, r, h.logger)
		return
	}

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
