package output

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dmagro/defitax/internal/etherscan"
	"github.com/dmagro/defitax/internal/numeric"
)

// TransferReport holds a wallet's transfers for one tax year.
type TransferReport struct {
	Wallet    common.Address
	Year      int
	Transfers etherscan.TokenTransferList
	Limit     int // 0 shows all
}

// Direction of a transfer relative to the wallet.
const (
	DirectionIn   = "in"
	DirectionOut  = "out"
	DirectionSelf = "self"
)

// TransferDirection classifies tx relative to wallet.
func TransferDirection(wallet common.Address, tx etherscan.TokenTransfer) string {
	switch {
	case tx.From == wallet && tx.To == wallet:
		return DirectionSelf
	case tx.From == wallet:
		return DirectionOut
	default:
		return DirectionIn
	}
}

func (r *TransferReport) shown() []etherscan.TokenTransfer {
	records := r.Transfers.Records()
	if r.Limit > 0 && len(records) > r.Limit {
		return records[:r.Limit]
	}
	return records
}

// RenderTransfersTerminal prints the transfers as a table followed by totals.
func RenderTransfersTerminal(w io.Writer, r *TransferReport) {
	renderHeader(w, "Token Transfers", r.Wallet, r.Year)

	if r.Transfers.Len() == 0 {
		fmt.Fprintf(w, "  %s\n\n", dim("No token transfers in this year."))
		return
	}

	tbl := newTable(w, "Date", "Token", "Amount", "Dir", "Gas Used", "Gas Price", "Tx")
	for _, tx := range r.shown() {
		dir := TransferDirection(r.Wallet, tx)
		amount := numeric.FormatUnits(tx.Value, tx.TokenDecimal)
		switch dir {
		case DirectionIn:
			amount = green("+" + amount)
		case DirectionOut:
			amount = red("-" + amount)
		default:
			amount = yellow(amount)
		}
		gasUsed := placeholder
		if tx.GasUsed != nil && tx.GasUsed.IsUint64() {
			gasUsed = numeric.FormatWithCommas(tx.GasUsed.Uint64())
		}
		tbl.AddRow(formatDate(tx.Timestamp), symbolOrUnknown(tx.TokenSymbol), amount, dir, gasUsed, numeric.FormatGwei(tx.GasPrice), truncateHash(tx.Hash.Hex()))
	}
	tbl.Print()

	fmt.Fprintln(w)
	if shown := len(r.shown()); shown < r.Transfers.Len() {
		fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("Showing %d of %d transfers (use --limit 0 for all)", shown, r.Transfers.Len())))
	}
	fmt.Fprintf(w, "  %s      %d\n", cyan("Transfers:"), r.Transfers.Len())
	fmt.Fprintf(w, "  %s      %s\n", cyan("Total gas:"), numeric.FormatWithCommas(r.Transfers.TotalGasCost()))
	fmt.Fprintln(w)
}

// JSONTransfer is one transfer in JSON output. Integer quantities that may
// exceed 64 bits are strings.
type JSONTransfer struct {
	Hash         string `json:"hash"`
	BlockNumber  uint64 `json:"blockNumber"`
	Timestamp    uint64 `json:"timestamp"`
	TimestampISO string `json:"timestampISO"`
	From         string `json:"from"`
	To           string `json:"to"`
	Contract     string `json:"contract"`
	Symbol       string `json:"symbol"`
	Decimals     uint64 `json:"decimals"`
	Value        string `json:"value"`
	Amount       string `json:"amount"`
	Direction    string `json:"direction"`
	GasUsed      string `json:"gasUsed"`
	GasPrice     string `json:"gasPrice"`
}

// JSONTransferReport is the machine-readable transfers output.
type JSONTransferReport struct {
	Metadata  JSONMetadata   `json:"metadata"`
	Count     int            `json:"count"`
	TotalGas  uint64         `json:"totalGas"`
	Transfers []JSONTransfer `json:"transfers"`
}

// RenderTransfersJSON writes the transfers as JSON.
func RenderTransfersJSON(w io.Writer, r *TransferReport) error {
	shown := r.shown()
	out := JSONTransferReport{
		Metadata:  newMetadata(r.Wallet, r.Year),
		Count:     r.Transfers.Len(),
		TotalGas:  r.Transfers.TotalGasCost(),
		Transfers: make([]JSONTransfer, 0, len(shown)),
	}
	for _, tx := range shown {
		out.Transfers = append(out.Transfers, JSONTransfer{
			Hash:         tx.Hash.Hex(),
			BlockNumber:  tx.BlockNumber,
			Timestamp:    tx.Timestamp,
			TimestampISO: formatISO(tx.Timestamp),
			From:         etherscan.LowerHex(tx.From),
			To:           etherscan.LowerHex(tx.To),
			Contract:     etherscan.LowerHex(tx.ContractAddress),
			Symbol:       tx.TokenSymbol,
			Decimals:     tx.TokenDecimal,
			Value:        decString(tx.Value),
			Amount:       numeric.FormatUnits(tx.Value, tx.TokenDecimal),
			Direction:    TransferDirection(r.Wallet, tx),
			GasUsed:      decString(tx.GasUsed),
			GasPrice:     decString(tx.GasPrice),
		})
	}
	return writeJSON(w, out)
}
