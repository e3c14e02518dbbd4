package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var billingCmd = &cobra.Command{
	Use:   "billing-month",
	Short: "Manage the account's billing month",
}

var billingNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance the billing month by one",
	Long: `Move the account's billing month to the next one.

Requires the user (abonent) key.

Examples:
  ifirma billing-month next --user-key <hex>`,
	Args: cobra.NoArgs,
	RunE: runBillingNext,
}

func init() {
	rootCmd.AddCommand(billingCmd)
	billingCmd.AddCommand(billingNextCmd)
}

func runBillingNext(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.AdvanceBillingMonth(context.Background()); err != nil {
		return fmt.Errorf("advance billing month: %w", err)
	}

	return printResult(cmd.OutOrStdout(), map[string]any{"status": "advanced"})
}
