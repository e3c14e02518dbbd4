package ifirmalib_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ifirma/pkg/ifirmalib"
)

const testKey = "C501C88284462384"

func TestDefaultOptions(t *testing.T) {
	opts := ifirmalib.DefaultOptions()

	assert.Equal(t, "https://www.ifirma.pl", opts.BaseURL)
	assert.Equal(t, 30.0, opts.Timeout.Seconds())
	assert.Empty(t, opts.Username)
}

func TestNewClient(t *testing.T) {
	t.Run("invoice key only", func(t *testing.T) {
		client, err := ifirmalib.NewClient(ifirmalib.Options{Username: "u", InvoiceKey: testKey})
		require.NoError(t, err)
		assert.Equal(t, "u", client.Username())
		assert.False(t, client.HasUserKey())
	})

	t.Run("bad key", func(t *testing.T) {
		_, err := ifirmalib.NewClient(ifirmalib.Options{Username: "u", InvoiceKey: "zz"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ifirmalib.ErrInvalidKeyFormat)
	})

	t.Run("missing invoice key", func(t *testing.T) {
		_, err := ifirmalib.NewClient(ifirmalib.Options{Username: "u"})
		assert.ErrorIs(t, err, ifirmalib.ErrMissingKey)
	})
}

func TestNewClientFromConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{"Kod": 0, "Informacja": "ok", "Identyfikator": 321},
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "ifirma.yaml")
	content := "username: demo\ninvoice_key: " + testKey + "\nbase_url: " + srv.URL + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	client, err := ifirmalib.NewClientFromConfig(path)
	require.NoError(t, err)

	buyer := ifirmalib.NewClientData("Dariusz", "1111111111", ifirmalib.NewAddress("Warszawa", "03-185"))
	inv := ifirmalib.NewInvoice(buyer,
		ifirmalib.NewPosition(ifirmalib.VAT23, decimal.NewFromInt(1), decimal.NewFromInt(1000), "Usługa", "szt."),
	)

	id, err := client.CreateInvoice(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, int64(321), id)
}

func TestNewClientFromConfig_MissingCredentials(t *testing.T) {
	t.Setenv("IFIRMA_USERNAME", "")
	t.Setenv("IFIRMA_INVOICE_KEY", "")

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://localhost\n"), 0o600))

	_, err := ifirmalib.NewClientFromConfig(path)
	assert.Error(t, err)
}
