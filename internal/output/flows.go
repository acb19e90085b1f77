package output

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dmagro/defitax/internal/etherscan"
	"github.com/dmagro/defitax/internal/numeric"
)

// FlowReport holds per-token movement for a wallet in one year.
type FlowReport struct {
	Wallet common.Address
	Year   int
	Flows  []etherscan.TokenFlow
}

// RenderFlowsTerminal prints inbound, outbound and net amounts per token.
func RenderFlowsTerminal(w io.Writer, r *FlowReport) {
	renderHeader(w, "Token Flows", r.Wallet, r.Year)

	if len(r.Flows) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dim("No token transfers in this year."))
		return
	}

	tbl := newTable(w, "Token", "Contract", "In", "Out", "Net", "Transfers")
	for _, f := range r.Flows {
		in := numeric.ToDecimal(f.In, f.Decimals)
		out := numeric.ToDecimal(f.Out, f.Decimals)
		net := in.Sub(out)

		netStr := net.String()
		switch {
		case net.IsPositive():
			netStr = green("+" + netStr)
		case net.IsNegative():
			netStr = red(netStr)
		}
		tbl.AddRow(symbolOrUnknown(f.Symbol), truncateHash(f.Contract.Hex()), in.String(), out.String(), netStr, f.Transfers)
	}
	tbl.Print()
	fmt.Fprintln(w)
}

// JSONFlow is one token's movement in JSON output.
type JSONFlow struct {
	Contract  string `json:"contract"`
	Symbol    string `json:"symbol"`
	Decimals  uint64 `json:"decimals"`
	InRaw     string `json:"inRaw"`
	OutRaw    string `json:"outRaw"`
	In        string `json:"in"`
	Out       string `json:"out"`
	Net       string `json:"net"`
	Transfers int    `json:"transfers"`
}

// JSONFlowReport is the machine-readable flows output.
type JSONFlowReport struct {
	Metadata JSONMetadata `json:"metadata"`
	Flows    []JSONFlow   `json:"flows"`
}

// RenderFlowsJSON writes the flows as JSON.
func RenderFlowsJSON(w io.Writer, r *FlowReport) error {
	out := JSONFlowReport{
		Metadata: newMetadata(r.Wallet, r.Year),
		Flows:    make([]JSONFlow, 0, len(r.Flows)),
	}
	for _, f := range r.Flows {
		in := numeric.ToDecimal(f.In, f.Decimals)
		outAmt := numeric.ToDecimal(f.Out, f.Decimals)
		out.Flows = append(out.Flows, JSONFlow{
			Contract:  etherscan.LowerHex(f.Contract),
			Symbol:    f.Symbol,
			Decimals:  f.Decimals,
			InRaw:     decString(f.In),
			OutRaw:    decString(f.Out),
			In:        in.String(),
			Out:       outAmt.String(),
			Net:       in.Sub(outAmt).String(),
			Transfers: f.Transfers,
		})
	}
	return writeJSON(w, out)
}
