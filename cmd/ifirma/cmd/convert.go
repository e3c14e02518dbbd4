package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:     "convert <proforma-id>",
	Short:   "Issue an invoice from an existing pro forma",
	Example: `  ifirma convert 678`,
	Args:    cobra.ExactArgs(1),
	RunE:    runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	proformaID, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	id, err := client.CreateInvoiceFromProforma(context.Background(), proformaID)
	if err != nil {
		return fmt.Errorf("convert pro forma %d: %w", proformaID, err)
	}

	return printResult(cmd.OutOrStdout(), map[string]any{
		"id":            id,
		"type":          "invoice",
		"from_proforma": proformaID,
	})
}
