package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/ifirma/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API gateway",
	Long: `Start an HTTP gateway in front of the iFirma API.

The API provides endpoints for:
  - POST /api/v1/invoices               - Issue an invoice
  - POST /api/v1/proformas              - Issue a pro forma
  - POST /api/v1/proformas/:id/invoice  - Convert a pro forma
  - GET  /api/v1/invoices/:id           - Invoice details
  - GET  /api/v1/invoices/:id/pdf       - Invoice PDF (?check=true validates it)
  - GET  /api/v1/proformas/:id          - Pro forma details
  - GET  /api/v1/proformas/:id/pdf      - Pro forma PDF
  - PUT  /api/v1/billing-month          - Advance the billing month
  - GET  /health                        - Health check

Examples:
  # Start server on default port
  ifirma serve

  # Start on custom port with a config file
  ifirma serve --address :9090 --config ifirma.yaml

  # Start in debug mode
  ifirma serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address (env: IFIRMA_SERVER_ADDRESS)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	config := &server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug || cfg.Server.Debug,
	}
	if !cmd.Flags().Changed("address") && cfg.Server.Address != "" {
		config.Address = cfg.Server.Address
	}
	if !cmd.Flags().Changed("read-timeout") && cfg.Server.ReadTimeout > 0 {
		config.ReadTimeout = cfg.Server.ReadTimeout
	}
	if !cmd.Flags().Changed("write-timeout") && cfg.Server.WriteTimeout > 0 {
		config.WriteTimeout = cfg.Server.WriteTimeout
	}

	srv := server.NewServer(config, client, newLogger())

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s for account %s\n", config.Address, cfg.Username)
	if !client.HasUserKey() {
		fmt.Println("User key not set: billing-month endpoint and automatic month correction disabled")
	}

	return srv.Run()
}
