package main

import (
	"github.com/spf13/cobra"

	"github.com/dmagro/defitax/internal/output"
)

func gasCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "gas <address> <year>",
		Short: "Summarise gas used and fees paid by a wallet's transfers",
		Long: `Sum the gas used by a wallet's ERC-20 transfers in a year and the fees
paid for them in ETH.

Examples:
  defitax gas 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023
  defitax gas 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadYear(cmd, args, format)
			if err != nil {
				return err
			}

			report := output.NewGasReport(data.wallet, data.year, data.transfers)
			if format == formatJSON {
				return output.RenderGasJSON(cmd.OutOrStdout(), report)
			}
			output.RenderGasTerminal(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTerminal, "Output format: terminal|json")

	return cmd
}
