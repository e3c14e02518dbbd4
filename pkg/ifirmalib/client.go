package ifirmalib

import (
	"log/slog"
	"time"

	"github.com/rezonia/ifirma/internal/config"
	"github.com/rezonia/ifirma/internal/ifirma"
)

// Client is an authenticated iFirma API client
type Client = ifirma.Client

// Options configures the client
type Options struct {
	// Credentials
	Username   string // account login (env: IFIRMA_USERNAME)
	InvoiceKey string // hex "faktura" key (env: IFIRMA_INVOICE_KEY)
	UserKey    string // hex "abonent" key, optional (env: IFIRMA_USER_KEY)

	// Transport
	BaseURL string        // default: https://www.ifirma.pl
	Timeout time.Duration // default: 30s

	Logger *slog.Logger
}

// DefaultOptions returns default client options
func DefaultOptions() Options {
	return Options{
		BaseURL: ifirma.DefaultBaseURL,
		Timeout: ifirma.DefaultTimeout,
	}
}

// NewClient creates a client, decoding both keys up front
func NewClient(opts Options) (*Client, error) {
	var clientOpts []ifirma.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, ifirma.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, ifirma.WithTimeout(opts.Timeout))
	}
	if opts.Logger != nil {
		clientOpts = append(clientOpts, ifirma.WithLogger(opts.Logger))
	}

	return ifirma.NewClient(opts.Username, opts.InvoiceKey, opts.UserKey, clientOpts...)
}

// NewClientFromConfig builds a client from a YAML file and the IFIRMA_*
// environment. path may be empty.
func NewClientFromConfig(path string) (*Client, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewClient(Options{
		Username:   cfg.Username,
		InvoiceKey: cfg.InvoiceKey,
		UserKey:    cfg.UserKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
	})
}
