// Package ifirmalib provides a public API for issuing invoices through iFirma.
//
// This package exposes the domain types, the error taxonomy and a client
// constructor for the iFirma invoicing service.
//
// Example usage:
//
//	client, err := ifirmalib.NewClient(ifirmalib.Options{
//	    Username:   "demo254343",
//	    InvoiceKey: os.Getenv("IFIRMA_INVOICE_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buyer := ifirmalib.NewClientData("Dariusz", "1111111111", ifirmalib.NewAddress("Warszawa", "03-185"))
//	inv := ifirmalib.NewInvoice(buyer, ifirmalib.NewPosition(ifirmalib.VAT23, qty, price, "Usługa", "szt."))
//	id, err := client.CreateInvoice(ctx, inv)
package ifirmalib

import (
	"github.com/rezonia/ifirma/internal/ifirma"
	"github.com/rezonia/ifirma/internal/model"
	"github.com/rezonia/ifirma/internal/signature"
)

// Re-export core types for public API
type (
	Invoice       = model.Invoice
	Position      = model.Position
	Address       = model.Address
	ClientData    = model.Client
	InvoiceInput  = model.InvoiceInput
	VATType       = model.VATType
	PaymentMethod = model.PaymentMethod
)

// Re-export VAT types
const (
	VATTypePercentage = model.VATTypePercentage
	VATTypeExempt     = model.VATTypeExempt
)

// Re-export VAT rates
var (
	VAT0  = model.VAT0
	VAT5  = model.VAT5
	VAT8  = model.VAT8
	VAT23 = model.VAT23
)

// Re-export payment methods
const (
	PaymentElectronic = model.PaymentElectronic
	PaymentTransfer   = model.PaymentTransfer
	PaymentCash       = model.PaymentCash
	PaymentCard       = model.PaymentCard
	PaymentOnDelivery = model.PaymentOnDelivery
)

// Re-export error types
type (
	APIError        = ifirma.APIError
	ErrorKind       = ifirma.ErrorKind
	ValidationError = model.ValidationError
	KeyError        = signature.KeyError
)

// Re-export error sentinels
var (
	ErrBadRequestParameters = ifirma.ErrBadRequestParameters
	ErrBadRequestStructure  = ifirma.ErrBadRequestStructure
	ErrUnknown              = ifirma.ErrUnknown
	ErrMissingUserKey       = ifirma.ErrMissingUserKey
	ErrInvalidKeyFormat     = signature.ErrInvalidKeyFormat
	ErrMissingKey           = signature.ErrMissingKey
)

// Value object constructors
var (
	NewAddress    = model.NewAddress
	NewClientData = model.NewClient
	NewPosition   = model.NewPosition
	NewInvoice    = model.NewInvoice
)
