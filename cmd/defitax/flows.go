package main

import (
	"github.com/spf13/cobra"

	"github.com/dmagro/defitax/internal/output"
)

func flowsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "flows <address> <year>",
		Short: "Show per-token inbound and outbound totals",
		Long: `Group a wallet's ERC-20 transfers in a year by token and show how much
came in, went out and the net change.

Examples:
  defitax flows 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadYear(cmd, args, format)
			if err != nil {
				return err
			}

			flows, err := data.transfers.NetFlows(data.wallet)
			if err != nil {
				return err
			}

			report := &output.FlowReport{Wallet: data.wallet, Year: data.year, Flows: flows}
			if format == formatJSON {
				return output.RenderFlowsJSON(cmd.OutOrStdout(), report)
			}
			output.RenderFlowsTerminal(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTerminal, "Output format: terminal|json")

	return cmd
}
