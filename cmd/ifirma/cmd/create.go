package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/ifirma/internal/model"
)

var createProforma bool

var createCmd = &cobra.Command{
	Use:   "create <input.json>",
	Short: "Issue an invoice or pro forma",
	Long: `Issue a domestic invoice (or pro forma with --proforma) from a JSON file.

Use "-" to read the document from stdin. Input format:

  {
    "client": {
      "name": "Dariusz", "tax_id": "1111111111",
      "address": {"city": "Warszawa", "zip_code": "03-185"}
    },
    "positions": [
      {"vat_rate": "0.23", "quantity": 1, "base_price": "1000",
       "full_name": "Usługa", "unit": "szt."}
    ],
    "issue_date": "2026-10-19",
    "payment_method": "PRZ"
  }

Examples:
  ifirma create invoice.json
  ifirma create invoice.json --proforma -f table
  cat invoice.json | ifirma create -`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().BoolVar(&createProforma, "proforma", false, "Issue a pro forma instead of an invoice")
}

func runCreate(cmd *cobra.Command, args []string) error {
	inv, err := readInvoice(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	kind := "invoice"
	issue := client.CreateInvoice
	if createProforma {
		kind = "proforma"
		issue = client.CreateProforma
	}

	printVerbose("Issuing %s for %s (%d positions, total %s)\n",
		kind, inv.Client.Name, len(inv.Positions), inv.Total().StringFixed(2))

	id, err := issue(context.Background(), inv)
	if err != nil {
		return fmt.Errorf("create %s: %w", kind, err)
	}

	return printResult(cmd.OutOrStdout(), map[string]any{
		"id":    id,
		"type":  kind,
		"total": inv.Total().StringFixed(2),
	})
}

// readInvoice decodes and validates an InvoiceInput document
func readInvoice(path string) (*model.Invoice, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var input model.InvoiceInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	return input.Build()
}
