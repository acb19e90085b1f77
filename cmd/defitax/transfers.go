package main

import (
	"github.com/spf13/cobra"

	"github.com/dmagro/defitax/internal/output"
)

func transfersCmd() *cobra.Command {
	var (
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "transfers <address> <year>",
		Short: "List a wallet's ERC-20 transfers in a year",
		Long: `List every ERC-20 transfer into or out of a wallet during a UTC calendar year.

Examples:
  defitax transfers 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023
  defitax transfers 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023 --limit 0
  defitax transfers 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadYear(cmd, args, format)
			if err != nil {
				return err
			}

			report := &output.TransferReport{
				Wallet:    data.wallet,
				Year:      data.year,
				Transfers: data.transfers,
				Limit:     limit,
			}
			if format == formatJSON {
				return output.RenderTransfersJSON(cmd.OutOrStdout(), report)
			}
			output.RenderTransfersTerminal(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTerminal, "Output format: terminal|json")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum transfers to display (0 for all)")

	return cmd
}
