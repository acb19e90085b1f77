// Package output renders command results for the terminal (colour and
// aligned tables) and as indented JSON.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/rodaine/table"
)

// Colors for amounts and status
var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// placeholder is shown for values that are unknown, such as a swap side that
// could not be priced.
const placeholder = "—"

func renderHeader(w io.Writer, title string, wallet common.Address, year int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold(fmt.Sprintf("%s · %d", title, year)))
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  %s  %s\n", cyan("Wallet:"), wallet.Hex())
	fmt.Fprintln(w)
}

func newTable(w io.Writer, columns ...interface{}) table.Table {
	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New(columns...)
	tbl.WithHeaderFormatter(headerFmt)
	tbl.WithWriter(w)
	return tbl
}

func formatDate(ts uint64) string {
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02 15:04")
}

func formatISO(ts uint64) string {
	return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
}

func truncateHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:6] + "..." + hash[len(hash)-4:]
}

func symbolOrUnknown(symbol string) string {
	if strings.TrimSpace(symbol) == "" {
		return dim("?")
	}
	return symbol
}

// DisableColors turns off color output (for non-TTY or JSON mode)
func DisableColors() {
	color.NoColor = true
}

// IsTerminal returns true if f is a terminal
func IsTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
