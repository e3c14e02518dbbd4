package server

import (
	"bytes"
	"context"

	"github.com/rezonia/ifirma/internal/model"
)

// Invoicer is the subset of the iFirma client the gateway exposes
type Invoicer interface {
	CreateInvoice(ctx context.Context, inv *model.Invoice) (int64, error)
	CreateProforma(ctx context.Context, inv *model.Invoice) (int64, error)
	CreateInvoiceFromProforma(ctx context.Context, proformaID int64) (int64, error)
	GetInvoicePDF(ctx context.Context, invoiceID int64) (*bytes.Reader, error)
	GetProformaPDF(ctx context.Context, proformaID int64) (*bytes.Reader, error)
	GetInvoiceDetails(ctx context.Context, invoiceID int64) (map[string]any, error)
	GetProformaDetails(ctx context.Context, proformaID int64) (map[string]any, error)
	AdvanceBillingMonth(ctx context.Context) error
}

// CreatedResponse is the response for document creation endpoints
type CreatedResponse struct {
	ID    int64  `json:"id"`
	Total string `json:"total,omitempty"`
	From  *int64 `json:"from_proforma,omitempty"`
}

// StatusResponse is the response for endpoints without a payload
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Code      *int   `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
