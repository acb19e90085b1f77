package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmagro/defitax/internal/output"
	"github.com/dmagro/defitax/internal/pricing"
	"github.com/dmagro/defitax/internal/swap"
)

func swapsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "swaps <address> <year>",
		Short: "Detect token swaps and value them in the reference currency",
		Long: `Find transactions in which the wallet gave up one token and received
another, and value both sides using the price table in the config file.
Sides that cannot be priced are shown as "—".

Examples:
  defitax swaps 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023
  defitax swaps 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 2023 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadYear(cmd, args, format)
			if err != nil {
				return err
			}

			table, err := pricing.FromConfig(data.cfg.Pricing)
			if err != nil {
				return fmt.Errorf("invalid price table: %w", err)
			}

			swaps := swap.FromTransfers(data.wallet, data.transfers)
			swap.EnrichSwaps(cmd.Context(), table, swaps)
			data.log.Debug("priced swaps", zap.Int("swaps", len(swaps)), zap.Int("tokens", table.Len()))

			report := &output.SwapReport{
				Wallet:   data.wallet,
				Year:     data.year,
				Currency: table.Currency(),
				Swaps:    swaps,
			}
			if format == formatJSON {
				return output.RenderSwapsJSON(cmd.OutOrStdout(), report)
			}
			output.RenderSwapsTerminal(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTerminal, "Output format: terminal|json")

	return cmd
}
