package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rezonia/ifirma/internal/document"
)

var (
	pdfOutput   string
	pdfProforma bool
	pdfCheck    bool
)

var pdfCmd = &cobra.Command{
	Use:   "pdf <id>",
	Short: "Download an invoice or pro forma as PDF",
	Long: `Download a document as PDF.

With --check the file is validated and its page count reported before it is
written.

Examples:
  ifirma pdf 12345 -o faktura.pdf
  ifirma pdf 678 --proforma --check -o proforma.pdf
  ifirma pdf 12345 > faktura.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func init() {
	rootCmd.AddCommand(pdfCmd)

	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "Output file (default: stdout)")
	pdfCmd.Flags().BoolVar(&pdfProforma, "proforma", false, "Fetch a pro forma instead of an invoice")
	pdfCmd.Flags().BoolVar(&pdfCheck, "check", false, "Validate the downloaded PDF")
}

func runPDF(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	fetch := client.GetInvoicePDF
	if pdfProforma {
		fetch = client.GetProformaPDF
	}

	doc, err := fetch(context.Background(), id)
	if err != nil {
		return err
	}

	if pdfCheck {
		info, err := document.Inspect(doc)
		if err != nil {
			return fmt.Errorf("document %d: %w", id, err)
		}
		printVerbose("PDF %s, %d pages, %d bytes\n", info.Version, info.Pages, info.Size)
	}

	var w io.Writer = cmd.OutOrStdout()
	if pdfOutput != "" {
		f, err := os.Create(pdfOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	n, err := io.Copy(w, doc)
	if err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	if pdfOutput != "" {
		printVerbose("Wrote %d bytes to %s\n", n, pdfOutput)
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid document id: %q", arg)
	}
	return id, nil
}
