package ifirma

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rezonia/ifirma/internal/signature"
)

const (
	DefaultBaseURL = "https://www.ifirma.pl"
	DefaultTimeout = 30 * time.Second
)

const (
	mimeJSON = "application/json"
	mimePDF  = "application/pdf"
)

// Client talks to the iFirma API on behalf of one account. Credentials are
// fixed at construction; a Client is safe for concurrent use.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	logger        *slog.Logger
	username      string
	invoiceSigner *signature.Signer
	userSigner    *signature.Signer
}

// ClientOption configures the client
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// WithBaseURL sets a custom base URL
func WithBaseURL(url string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.baseURL = url
	}
}

// WithTimeout sets custom HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cfg *clientConfig) {
		cfg.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client; WithTimeout is then ignored
func WithHTTPClient(client *http.Client) ClientOption {
	return func(cfg *clientConfig) {
		cfg.httpClient = client
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// NewClient creates a client for username. Keys are the hex strings shown in
// the iFirma panel; userKeyHex may be empty when subscriber-scoped calls are
// not needed. Malformed keys are rejected here rather than on first use.
func NewClient(username, invoiceKeyHex, userKeyHex string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("ifirma: username is required")
	}

	invoiceKey, err := decodeKey(signature.KeyNameInvoice, invoiceKeyHex)
	if err != nil {
		return nil, err
	}
	if invoiceKey == nil {
		return nil, signature.ErrKeyNotConfigured(signature.KeyNameInvoice)
	}

	userKey, err := decodeKey(signature.KeyNameSubscriber, userKeyHex)
	if err != nil {
		return nil, err
	}

	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       strings.TrimSuffix(cfg.baseURL, "/"),
		logger:        logger,
		username:      username,
		invoiceSigner: signature.NewSigner(username, signature.KeyNameInvoice, invoiceKey),
		userSigner:    signature.NewSigner(username, signature.KeyNameSubscriber, userKey),
	}, nil
}

// decodeKey decodes a hex key and records which key failed
func decodeKey(keyName, hexText string) ([]byte, error) {
	key, err := signature.DecodeKey(hexText)
	var keyErr *signature.KeyError
	if errors.As(err, &keyErr) {
		keyErr.Field = keyName
	}
	return key, err
}

// Username returns the account the client signs for
func (c *Client) Username() string {
	return c.username
}

// HasUserKey reports whether subscriber-scoped calls can be signed
func (c *Client) HasUserKey() bool {
	return len(c.userSigner.Key) > 0
}

// request describes one signed call
type request struct {
	method string
	path   string
	body   []byte // nil for GET
	accept string
	signer *signature.Signer
}

// response is a fully read 2xx response
type response struct {
	status      int
	contentType string
	body        []byte
}

// do signs and sends r. Non-2xx answers become an APIError: the vendor
// kind when the body carries an envelope with a code, ErrUnknown otherwise.
func (c *Client) do(ctx context.Context, r request) (*response, error) {
	url := c.baseURL + r.path

	auth, err := r.signer.Sign(url, r.body)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, url, body)
	if err != nil {
		return nil, unknownError("failed to create request", err)
	}

	req.Header.Set("Accept", r.accept)
	req.Header.Set("Content-type", r.accept+"; charset=UTF-8")
	req.Header.Set("Authentication", auth)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("ifirma request failed", "method", r.method, "url", url, "error", err)
		return nil, unknownError("request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unknownError("failed to read response", err)
	}

	c.logger.Debug("ifirma request",
		"method", r.method,
		"url", url,
		"key", r.signer.KeyName,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if apiErr := envelopeError(data); apiErr != nil {
			return nil, apiErr
		}
		return nil, unknownError(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	return &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        data,
	}, nil
}
