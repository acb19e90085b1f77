package swap

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/dmagro/defitax/internal/etherscan"
)

// FromTransfers finds the swaps in a wallet's transfer history. A transaction
// counts as a swap when the wallet sent exactly one token and received exactly
// one different token in it. Swaps are returned in the order their
// transactions first appear in list. Self-transfers are ignored.
func FromTransfers(wallet common.Address, list etherscan.TokenTransferList) []TokenSwap {
	type legs struct {
		sent     []etherscan.TokenTransfer
		received []etherscan.TokenTransfer
	}

	var order []common.Hash
	byTx := make(map[common.Hash]*legs)
	for _, tx := range list.Records() {
		out := tx.From == wallet && tx.To != wallet
		in := tx.To == wallet && tx.From != wallet
		if !out && !in {
			continue
		}

		l, ok := byTx[tx.Hash]
		if !ok {
			l = &legs{}
			byTx[tx.Hash] = l
			order = append(order, tx.Hash)
		}
		if out {
			l.sent = append(l.sent, tx)
		} else {
			l.received = append(l.received, tx)
		}
	}

	var swaps []TokenSwap
	for _, hash := range order {
		l := byTx[hash]
		if len(l.sent) != 1 || len(l.received) != 1 {
			continue
		}
		sent, received := l.sent[0], l.received[0]
		if sent.ContractAddress == received.ContractAddress {
			continue
		}
		swaps = append(swaps, TokenSwap{
			TxHash:    hash,
			Timestamp: sent.Timestamp,
			From:      quantityOf(sent),
			To:        quantityOf(received),
		})
	}
	return swaps
}

func quantityOf(tx etherscan.TokenTransfer) TokenQuantity {
	return TokenQuantity{
		Ticker:   tx.TokenSymbol,
		Amount:   tx.Value,
		Decimals: tx.TokenDecimal,
	}
}
