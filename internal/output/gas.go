package output

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/dmagro/defitax/internal/etherscan"
	"github.com/dmagro/defitax/internal/numeric"
)

// GasReport summarises the gas a wallet's transfers consumed in a year.
type GasReport struct {
	Wallet     common.Address
	Year       int
	Transfers  int
	TotalGas   uint64 // each value truncated to 64 bits, wrapping sum
	CheckedGas uint64
	CheckedErr error // set when a value or the sum does not fit in 64 bits
	TotalFees  *uint256.Int
	FeesErr    error
}

// NewGasReport computes every gas figure for list.
func NewGasReport(wallet common.Address, year int, list etherscan.TokenTransferList) *GasReport {
	r := &GasReport{
		Wallet:    wallet,
		Year:      year,
		Transfers: list.Len(),
		TotalGas:  list.TotalGasCost(),
	}
	r.CheckedGas, r.CheckedErr = list.TotalGasCostChecked()
	r.TotalFees, r.FeesErr = list.TotalFees()
	return r
}

// RenderGasTerminal prints the gas summary.
func RenderGasTerminal(w io.Writer, r *GasReport) {
	renderHeader(w, "Gas Summary", r.Wallet, r.Year)

	fmt.Fprintf(w, "  %s       %d\n", cyan("Transfers:"), r.Transfers)
	fmt.Fprintf(w, "  %s       %s\n", cyan("Total gas:"), numeric.FormatWithCommas(r.TotalGas))
	if r.CheckedErr != nil {
		fmt.Fprintf(w, "  %s     %s\n", cyan("Checked gas:"), red(r.CheckedErr.Error()))
	} else {
		fmt.Fprintf(w, "  %s     %s\n", cyan("Checked gas:"), green(numeric.FormatWithCommas(r.CheckedGas)))
	}
	if r.FeesErr != nil {
		fmt.Fprintf(w, "  %s      %s\n", cyan("Total fees:"), red(r.FeesErr.Error()))
	} else {
		fmt.Fprintf(w, "  %s      %s ETH\n", cyan("Total fees:"), bold(numeric.FormatEther(r.TotalFees)))
	}
	fmt.Fprintln(w)
}

// JSONGasReport is the machine-readable gas output.
type JSONGasReport struct {
	Metadata     JSONMetadata `json:"metadata"`
	Transfers    int          `json:"transfers"`
	TotalGas     uint64       `json:"totalGas"`
	CheckedGas   *uint64      `json:"checkedGas"`
	CheckedError string       `json:"checkedError,omitempty"`
	TotalFeesWei string       `json:"totalFeesWei,omitempty"`
	TotalFeesEth string       `json:"totalFeesEth,omitempty"`
	FeesError    string       `json:"feesError,omitempty"`
}

// RenderGasJSON writes the gas summary as JSON.
func RenderGasJSON(w io.Writer, r *GasReport) error {
	out := JSONGasReport{
		Metadata:  newMetadata(r.Wallet, r.Year),
		Transfers: r.Transfers,
		TotalGas:  r.TotalGas,
	}
	if r.CheckedErr != nil {
		out.CheckedError = r.CheckedErr.Error()
	} else {
		checked := r.CheckedGas
		out.CheckedGas = &checked
	}
	if r.FeesErr != nil {
		out.FeesError = r.FeesErr.Error()
	} else {
		out.TotalFeesWei = decString(r.TotalFees)
		out.TotalFeesEth = numeric.FormatEther(r.TotalFees)
	}
	return writeJSON(w, out)
}

func decString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
