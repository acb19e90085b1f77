package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmagro/defitax/internal/config"
	"github.com/dmagro/defitax/internal/etherscan"
	"github.com/dmagro/defitax/internal/logging"
	"github.com/dmagro/defitax/internal/output"
)

const (
	minYear = 2015 // first year with Ethereum blocks
	maxYear = 9999
)

const (
	formatTerminal = "terminal"
	formatJSON     = "json"
)

// yearData is what every report command starts from.
type yearData struct {
	cfg       *config.Config
	log       *zap.Logger
	wallet    common.Address
	year      int
	transfers etherscan.TokenTransferList // only those in year
}

func parseWallet(arg string) (common.Address, error) {
	addr, err := etherscan.ParseAddress(arg)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid address %q: expected 0x followed by 40 hex digits", arg)
	}
	return addr, nil
}

func parseYear(arg string) (int, error) {
	year, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", arg)
	}
	if year < minYear || year > maxYear {
		return 0, fmt.Errorf("invalid year %d: must be between %d and %d", year, minYear, maxYear)
	}
	return year, nil
}

func checkFormat(format string) error {
	switch format {
	case formatTerminal, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format %q (expected terminal or json)", format)
	}
}

func globalFlags(cmd *cobra.Command) (cfgPath string, verbose bool) {
	cfgPath, _ = cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath, _ = cmd.Root().PersistentFlags().GetString("config")
	}
	verbose, _ = cmd.Flags().GetBool("verbose")
	return cfgPath, verbose
}

func newFetcher(cfg *config.Config, log *zap.Logger) *etherscan.Fetcher {
	return etherscan.NewFetcher(etherscan.FetcherConfig{
		BaseURL: cfg.Explorer.BaseURL,
		APIKey:  cfg.Explorer.APIKey,
	}, etherscan.NewHTTPTransport(cfg.Explorer.Timeout), log)
}

// loadYear validates the <address> <year> arguments, loads config and fetches
// the wallet's transfers for that year.
func loadYear(cmd *cobra.Command, args []string, format string) (*yearData, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	wallet, err := parseWallet(args[0])
	if err != nil {
		return nil, err
	}
	year, err := parseYear(args[1])
	if err != nil {
		return nil, err
	}

	cfgPath, verbose := globalFlags(cmd)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(verbose)
	if err != nil {
		log = logging.Stderr()
	}

	list, err := newFetcher(cfg, log).FetchTokenTransfers(cmd.Context(), wallet)
	if err != nil {
		return nil, err
	}
	inYear := list.InYear(year)
	log.Debug("filtered transfers by year",
		zap.Int("year", year), zap.Int("total", list.Len()), zap.Int("in_year", inYear.Len()))

	if format == formatJSON || !output.IsTerminal(os.Stdout) {
		output.DisableColors()
	}

	return &yearData{cfg: cfg, log: log, wallet: wallet, year: year, transfers: inYear}, nil
}
