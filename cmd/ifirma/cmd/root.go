package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/ifirma/internal/config"
	"github.com/rezonia/ifirma/internal/ifirma"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	configPath   string
	username     string
	invoiceKey   string
	userKey      string
	baseURL      string
	timeout      time.Duration

	// loaded in initConfig
	cfg = &config.Config{}
)

var rootCmd = &cobra.Command{
	Use:   "ifirma",
	Short: "Issue and fetch invoices through the iFirma API",
	Long: `ifirma is a CLI for the iFirma invoicing service.

Supports:
  - Domestic invoices and pro forma invoices
  - Converting a pro forma into an invoice
  - Downloading documents as PDF or JSON
  - Advancing the account's billing month
  - A local HTTP gateway over the same operations

Credentials come from flags, a YAML config file, .env or IFIRMA_* variables.

Examples:
  # Issue an invoice described by a JSON file
  ifirma create invoice.json --username demo --invoice-key <hex>

  # Download it as PDF
  ifirma pdf 12345 -o faktura.pdf

  # Issue a pro forma and convert it later
  ifirma create invoice.json --proforma
  ifirma convert 678`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "iFirma login (env: IFIRMA_USERNAME)")
	rootCmd.PersistentFlags().StringVar(&invoiceKey, "invoice-key", "", "Hex invoice (faktura) key (env: IFIRMA_INVOICE_KEY)")
	rootCmd.PersistentFlags().StringVar(&userKey, "user-key", "", "Hex user (abonent) key (env: IFIRMA_USER_KEY)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (env: IFIRMA_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", ifirma.DefaultTimeout, "HTTP timeout per request (env: IFIRMA_TIMEOUT)")
}

// initConfig merges config file and environment into cfg; flags win
func initConfig(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	if username != "" {
		cfg.Username = username
	}
	if invoiceKey != "" {
		cfg.InvoiceKey = invoiceKey
	}
	if userKey != "" {
		cfg.UserKey = userKey
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if cmd.Flags().Changed("timeout") || cfg.Timeout == 0 {
		cfg.Timeout = timeout
	}
	return nil
}

// newClient builds the API client from the merged configuration
func newClient() (*ifirma.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (use --username/--invoice-key or %s/%s)",
			err, config.EnvUsername, config.EnvInvoiceKey)
	}

	opts := []ifirma.ClientOption{
		ifirma.WithTimeout(cfg.Timeout),
		ifirma.WithLogger(newLogger()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ifirma.WithBaseURL(cfg.BaseURL))
	}

	printVerbose("Account: %s (user key: %t)\n", cfg.Username, cfg.UserKey != "")
	return ifirma.NewClient(cfg.Username, cfg.InvoiceKey, cfg.UserKey, opts...)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
