package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ifirma/internal/ifirma"
	"github.com/rezonia/ifirma/internal/model"
	"github.com/rezonia/ifirma/internal/server"
)

// fakeInvoicer records calls and returns canned results
type fakeInvoicer struct {
	id       int64
	err      error
	pdf      []byte
	details  map[string]any
	issued   []*model.Invoice
	advanced int
	lastID   int64
}

func (f *fakeInvoicer) CreateInvoice(_ context.Context, inv *model.Invoice) (int64, error) {
	f.issued = append(f.issued, inv)
	return f.id, f.err
}

func (f *fakeInvoicer) CreateProforma(_ context.Context, inv *model.Invoice) (int64, error) {
	f.issued = append(f.issued, inv)
	return f.id, f.err
}

func (f *fakeInvoicer) CreateInvoiceFromProforma(_ context.Context, proformaID int64) (int64, error) {
	f.lastID = proformaID
	return f.id, f.err
}

func (f *fakeInvoicer) GetInvoicePDF(_ context.Context, invoiceID int64) (*bytes.Reader, error) {
	f.lastID = invoiceID
	if f.err != nil {
		return nil, f.err
	}
	return bytes.NewReader(f.pdf), nil
}

func (f *fakeInvoicer) GetProformaPDF(ctx context.Context, proformaID int64) (*bytes.Reader, error) {
	return f.GetInvoicePDF(ctx, proformaID)
}

func (f *fakeInvoicer) GetInvoiceDetails(_ context.Context, invoiceID int64) (map[string]any, error) {
	f.lastID = invoiceID
	return f.details, f.err
}

func (f *fakeInvoicer) GetProformaDetails(ctx context.Context, proformaID int64) (map[string]any, error) {
	return f.GetInvoiceDetails(ctx, proformaID)
}

func (f *fakeInvoicer) AdvanceBillingMonth(context.Context) error {
	f.advanced++
	return f.err
}

func newTestServer(fake *fakeInvoicer) *server.Server {
	config := &server.Config{
		Address: ":8080",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return server.NewServer(config, fake, logger)
}

func serve(srv *server.Server, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

const invoiceBody = `{
	"client": {
		"name": "Dariusz",
		"tax_id": "1111111111",
		"address": {"city": "Warszawa", "zip_code": "03-185"}
	},
	"positions": [
		{"vat_rate": "0.23", "quantity": 1, "base_price": "10", "full_name": "Item", "unit": "szt."}
	],
	"issue_date": "2026-10-19"
}`

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeInvoicer{})

	w := serve(srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(&fakeInvoicer{})

	t.Run("generated", func(t *testing.T) {
		w := serve(srv, http.MethodGet, "/health", "")
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	fake := &fakeInvoicer{id: 42}
	srv := newTestServer(fake)

	w := serve(srv, http.MethodPost, "/api/v1/invoices", invoiceBody)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response server.CreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(42), response.ID)
	assert.Equal(t, "10.00", response.Total)

	require.Len(t, fake.issued, 1)
	assert.Equal(t, "Dariusz", fake.issued[0].Client.Name)
}

func TestCreateProformaEndpoint(t *testing.T) {
	fake := &fakeInvoicer{id: 7}
	srv := newTestServer(fake)

	w := serve(srv, http.MethodPost, "/api/v1/proformas", invoiceBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, fake.issued, 1)
}

func TestCreateInvoiceEndpoint_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"client":`},
		{"no positions", `{"client":{"name":"A","tax_id":"1","address":{"city":"B","zip_code":"00-001"}},"positions":[]}`},
		{"bad date", strings.Replace(invoiceBody, "2026-10-19", "19.10.2026", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInvoicer{id: 1}
			srv := newTestServer(fake)

			w := serve(srv, http.MethodPost, "/api/v1/invoices", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, fake.issued)

			var response server.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response.Error)
			assert.NotEmpty(t, response.RequestID)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		wantKind string
	}{
		{
			name:     "bad parameters",
			err:      &ifirma.APIError{Kind: ifirma.KindBadRequestParameters, Code: 201, Message: "Niepoprawny NIP"},
			status:   http.StatusUnprocessableEntity,
			wantKind: "BAD_REQUEST_PARAMETERS",
		},
		{
			name:     "bad structure",
			err:      &ifirma.APIError{Kind: ifirma.KindBadRequestStructure, Code: 400, Message: "Niepoprawna struktura"},
			status:   http.StatusBadRequest,
			wantKind: "BAD_REQUEST_STRUCTURE",
		},
		{
			name:     "unknown",
			err:      &ifirma.APIError{Kind: ifirma.KindUnknown, Code: -1, Message: "unexpected status 500"},
			status:   http.StatusBadGateway,
			wantKind: "UNKNOWN",
		},
		{
			name:     "wrapped",
			err:      fmt.Errorf("advance billing month: %w", &ifirma.APIError{Kind: ifirma.KindBadRequestParameters, Code: 201}),
			status:   http.StatusUnprocessableEntity,
			wantKind: "BAD_REQUEST_PARAMETERS",
		},
		{
			name:   "transport",
			err:    errors.New("connection refused"),
			status: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeInvoicer{err: tt.err})

			w := serve(srv, http.MethodPost, "/api/v1/invoices", invoiceBody)

			assert.Equal(t, tt.status, w.Code)

			var response server.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantKind, response.Kind)
			assert.NotEmpty(t, response.Error)
		})
	}
}

func TestConvertProformaEndpoint(t *testing.T) {
	fake := &fakeInvoicer{id: 99}
	srv := newTestServer(fake)

	w := serve(srv, http.MethodPost, "/api/v1/proformas/15/invoice", "")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(15), fake.lastID)

	var response server.CreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(99), response.ID)
	require.NotNil(t, response.From)
	assert.Equal(t, int64(15), *response.From)
}

func TestDocumentID_Invalid(t *testing.T) {
	srv := newTestServer(&fakeInvoicer{})

	for _, target := range []string{"/api/v1/invoices/abc", "/api/v1/invoices/0", "/api/v1/proformas/-3/pdf"} {
		w := serve(srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestDetailsEndpoint(t *testing.T) {
	fake := &fakeInvoicer{details: map[string]any{"response": map[string]any{"Kod": 0}}}
	srv := newTestServer(fake)

	w := serve(srv, http.MethodGet, "/api/v1/invoices/5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":{"Kod":0}}`, w.Body.String())
	assert.Equal(t, int64(5), fake.lastID)
}

func TestPDFEndpoint(t *testing.T) {
	content := []byte("%PDF-1.4 not really")
	fake := &fakeInvoicer{pdf: content}
	srv := newTestServer(fake)

	w := serve(srv, http.MethodGet, "/api/v1/invoices/8/pdf", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "faktura-8.pdf")
	assert.Equal(t, content, w.Body.Bytes())
}

func TestPDFEndpoint_CheckRejectsBrokenDocument(t *testing.T) {
	srv := newTestServer(&fakeInvoicer{pdf: []byte("<html>oops</html>")})

	w := serve(srv, http.MethodGet, "/api/v1/proformas/8/pdf?check=true", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get("X-Page-Count"))
}

func TestBillingMonthEndpoint(t *testing.T) {
	t.Run("advanced", func(t *testing.T) {
		fake := &fakeInvoicer{}
		srv := newTestServer(fake)

		w := serve(srv, http.MethodPut, "/api/v1/billing-month", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, fake.advanced)
	})

	t.Run("user key missing", func(t *testing.T) {
		srv := newTestServer(&fakeInvoicer{err: ifirma.ErrMissingUserKey})

		w := serve(srv, http.MethodPut, "/api/v1/billing-month", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

// twoPagePDF builds a minimal valid PDF 1.4 document with two empty pages
func twoPagePDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestPDFEndpoint_CheckReportsPageCount(t *testing.T) {
	content := twoPagePDF()
	srv := newTestServer(&fakeInvoicer{pdf: content})

	w := serve(srv, http.MethodGet, "/api/v1/invoices/8/pdf?check=true", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2", w.Header().Get("X-Page-Count"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestNewServer_LeavesConfigUntouched(t *testing.T) {
	config := &server.Config{Address: ":8080"}

	server.NewServer(config, &fakeInvoicer{}, nil)

	assert.Zero(t, config.RequestTimeout)
	assert.Equal(t, ":8080", config.Address)
}
