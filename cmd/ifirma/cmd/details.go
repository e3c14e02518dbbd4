package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var detailsProforma bool

var detailsCmd = &cobra.Command{
	Use:   "details <id>",
	Short: "Show an invoice or pro forma as returned by iFirma",
	Long: `Fetch the JSON representation of a document.

Examples:
  ifirma details 12345
  ifirma details 678 --proforma -f table`,
	Args: cobra.ExactArgs(1),
	RunE: runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)

	detailsCmd.Flags().BoolVar(&detailsProforma, "proforma", false, "Fetch a pro forma instead of an invoice")
}

func runDetails(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	fetch := client.GetInvoiceDetails
	if detailsProforma {
		fetch = client.GetProformaDetails
	}

	details, err := fetch(context.Background(), id)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), details)
}
