package ifirma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rezonia/ifirma/internal/model"
)

const (
	pathInvoice           = "/iapi/fakturakraj.json"
	pathInvoiceDocument   = "/iapi/fakturakraj/%d.%s"
	pathProforma          = "/iapi/fakturaproformakraj.json"
	pathProformaDocument  = "/iapi/fakturaproformakraj/%d.%s"
	pathProformaToInvoice = "/iapi/fakturaproformakraj/add/%d.json"
)

// CreateInvoice issues a domestic invoice and returns its vendor id
func (c *Client) CreateInvoice(ctx context.Context, inv *model.Invoice) (int64, error) {
	return c.create(ctx, pathInvoice, inv)
}

// CreateProforma issues a domestic pro forma invoice and returns its vendor id
func (c *Client) CreateProforma(ctx context.Context, inv *model.Invoice) (int64, error) {
	return c.create(ctx, pathProforma, inv)
}

// CreateInvoiceFromProforma turns an existing pro forma into an invoice
func (c *Client) CreateInvoiceFromProforma(ctx context.Context, proformaID int64) (int64, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf(pathProformaToInvoice, proformaID),
		accept: mimeJSON,
		signer: c.invoiceSigner,
	})
	if err != nil {
		return 0, err
	}
	return parseIdentifier(resp.body)
}

// GetInvoicePDF downloads the invoice document. The reader is positioned at 0.
func (c *Client) GetInvoicePDF(ctx context.Context, invoiceID int64) (*bytes.Reader, error) {
	return c.getPDF(ctx, fmt.Sprintf(pathInvoiceDocument, invoiceID, "pdf"))
}

// GetProformaPDF downloads the pro forma document. The reader is positioned at 0.
func (c *Client) GetProformaPDF(ctx context.Context, proformaID int64) (*bytes.Reader, error) {
	return c.getPDF(ctx, fmt.Sprintf(pathProformaDocument, proformaID, "pdf"))
}

// GetInvoiceDetails returns the vendor's JSON envelope for an invoice as is
func (c *Client) GetInvoiceDetails(ctx context.Context, invoiceID int64) (map[string]any, error) {
	return c.getJSON(ctx, fmt.Sprintf(pathInvoiceDocument, invoiceID, "json"))
}

// GetProformaDetails returns the vendor's JSON envelope for a pro forma as is
func (c *Client) GetProformaDetails(ctx context.Context, proformaID int64) (map[string]any, error) {
	return c.getJSON(ctx, fmt.Sprintf(pathProformaDocument, proformaID, "json"))
}

// create posts inv and, once, corrects a billing-month mismatch before
// retrying. The retry's outcome is returned as is.
func (c *Client) create(ctx context.Context, path string, inv *model.Invoice) (int64, error) {
	if inv == nil {
		return 0, model.NewValidationError("invoice", nil, model.RuleRequired, "must not be nil")
	}
	if err := inv.Validate(); err != nil {
		return 0, err
	}

	id, err := c.postInvoice(ctx, path, inv)
	if err == nil || !isBillingMonthMismatch(err) || !c.HasUserKey() {
		return id, err
	}

	c.logger.Warn("issue date outside accounting month, advancing billing month",
		"path", path,
		"issue_date", inv.IssueDate.Format(model.DateLayout),
	)
	if advErr := c.AdvanceBillingMonth(ctx); advErr != nil {
		return 0, fmt.Errorf("advance billing month after %q: %w", err.Error(), advErr)
	}

	return c.postInvoice(ctx, path, inv)
}

func (c *Client) postInvoice(ctx context.Context, path string, inv *model.Invoice) (int64, error) {
	body, err := inv.RequestBody()
	if err != nil {
		return 0, fmt.Errorf("encode invoice: %w", err)
	}

	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		body:   body,
		accept: mimeJSON,
		signer: c.invoiceSigner,
	})
	if err != nil {
		return 0, err
	}
	return parseIdentifier(resp.body)
}

func (c *Client) getPDF(ctx context.Context, path string) (*bytes.Reader, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		accept: mimePDF,
		signer: c.invoiceSigner,
	})
	if err != nil {
		return nil, err
	}

	// the vendor answers with a JSON envelope when it cannot render the document
	if strings.Contains(resp.contentType, "json") || looksLikeJSON(resp.body) {
		if _, err := checkStatus(resp.body); err != nil {
			return nil, err
		}
		return nil, unknownError("expected a PDF document, got JSON", nil)
	}
	if len(resp.body) == 0 {
		return nil, unknownError("empty document", nil)
	}

	return bytes.NewReader(resp.body), nil
}

func (c *Client) getJSON(ctx context.Context, path string) (map[string]any, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		accept: mimeJSON,
		signer: c.invoiceSigner,
	})
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(resp.body))
	dec.UseNumber()

	var details map[string]any
	if err := dec.Decode(&details); err != nil {
		return nil, unknownError("malformed response", err)
	}
	return details, nil
}
