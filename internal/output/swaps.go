package output

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/dmagro/defitax/internal/numeric"
	"github.com/dmagro/defitax/internal/swap"
)

// SwapReport holds a wallet's priced swaps for one year.
type SwapReport struct {
	Wallet   common.Address
	Year     int
	Currency string
	Swaps    []swap.TokenSwap
}

func (r *SwapReport) formatReference(v *decimal.Decimal) string {
	if v == nil {
		return dim(placeholder)
	}
	return v.String() + " " + r.Currency
}

// priced counts the swap sides that have a reference amount.
func (r *SwapReport) priced() (priced, total int) {
	for _, s := range r.Swaps {
		for _, q := range []swap.TokenQuantity{s.From, s.To} {
			total++
			if q.ReferenceAmount != nil {
				priced++
			}
		}
	}
	return priced, total
}

// RenderSwapsTerminal prints each swap with both sides and their values.
func RenderSwapsTerminal(w io.Writer, r *SwapReport) {
	renderHeader(w, "Token Swaps", r.Wallet, r.Year)

	if len(r.Swaps) == 0 {
		fmt.Fprintf(w, "  %s\n\n", dim("No swaps in this year."))
		return
	}

	tbl := newTable(w, "Date", "Sold", "Value", "Bought", "Value", "Tx")
	for _, s := range r.Swaps {
		tbl.AddRow(
			formatDate(s.Timestamp),
			red(s.From.String()),
			r.formatReference(s.From.ReferenceAmount),
			green(s.To.String()),
			r.formatReference(s.To.ReferenceAmount),
			truncateHash(s.TxHash.Hex()),
		)
	}
	tbl.Print()

	priced, total := r.priced()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %d\n", cyan("Swaps:"), len(r.Swaps))
	status := green(fmt.Sprintf("%d/%d", priced, total))
	if priced < total {
		status = yellow(fmt.Sprintf("%d/%d", priced, total))
	}
	fmt.Fprintf(w, "  %s %s sides priced in %s\n", cyan("Priced:"), status, r.Currency)
	fmt.Fprintln(w)
}

// JSONQuantity is one swap side in JSON output. Reference is null when the
// side could not be priced.
type JSONQuantity struct {
	Ticker    string  `json:"ticker"`
	Raw       string  `json:"raw"`
	Amount    string  `json:"amount"`
	Decimals  uint64  `json:"decimals"`
	Reference *string `json:"reference"`
}

// JSONSwap is one swap in JSON output.
type JSONSwap struct {
	TxHash       string       `json:"txHash"`
	Timestamp    uint64       `json:"timestamp"`
	TimestampISO string       `json:"timestampISO"`
	From         JSONQuantity `json:"from"`
	To           JSONQuantity `json:"to"`
}

// JSONSwapReport is the machine-readable swaps output.
type JSONSwapReport struct {
	Metadata JSONMetadata `json:"metadata"`
	Currency string       `json:"currency"`
	Swaps    []JSONSwap   `json:"swaps"`
}

func toJSONQuantity(q swap.TokenQuantity) JSONQuantity {
	out := JSONQuantity{
		Ticker:   q.Ticker,
		Raw:      decString(q.Amount),
		Amount:   numeric.FormatUnits(q.Amount, q.Decimals),
		Decimals: q.Decimals,
	}
	if q.ReferenceAmount != nil {
		s := q.ReferenceAmount.String()
		out.Reference = &s
	}
	return out
}

// RenderSwapsJSON writes the swaps as JSON.
func RenderSwapsJSON(w io.Writer, r *SwapReport) error {
	out := JSONSwapReport{
		Metadata: newMetadata(r.Wallet, r.Year),
		Currency: r.Currency,
		Swaps:    make([]JSONSwap, 0, len(r.Swaps)),
	}
	for _, s := range r.Swaps {
		out.Swaps = append(out.Swaps, JSONSwap{
			TxHash:       s.TxHash.Hex(),
			Timestamp:    s.Timestamp,
			TimestampISO: formatISO(s.Timestamp),
			From:         toJSONQuantity(s.From),
			To:           toJSONQuantity(s.To),
		})
	}
	return writeJSON(w, out)
}
