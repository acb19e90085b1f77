// Command defitax reports a wallet's ERC-20 token activity for a tax year,
// using an Etherscan-compatible explorer as the data source.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmagro/defitax/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "defitax",
		Short: "ERC-20 transfer history, gas and swap reports for tax years",
		Long: `defitax fetches a wallet's ERC-20 token transfers from Etherscan and
summarises them for a calendar (tax) year.

The API key is read from the config file, which usually takes it from
the DEFITAX_ETHERSCAN_API_KEY environment variable or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnv()
		},
	}

	root.PersistentFlags().String("config", config.DefaultPath, "Config file path")
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging on stderr")

	root.AddCommand(transfersCmd(), gasCmd(), flowsCmd(), swapsCmd())
	return root
}

// execute runs the command line in args and returns the exit code. A fatal
// error is reported on stderr as a single line.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "defitax: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
