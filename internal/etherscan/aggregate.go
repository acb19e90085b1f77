package etherscan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/dmagro/defitax/internal/numeric"
)

// TotalGasCost sums GasUsed over the list.
//
// Each 256-bit value is truncated to its low 64 bits and the sum wraps on
// overflow. Real gas figures are far below 2^64, but the result must not be
// trusted for adversarial input; use TotalGasCostChecked there.
func (l TokenTransferList) TotalGasCost() uint64 {
	var total uint64
	for _, tx := range l.records {
		if tx.GasUsed != nil {
			total += tx.GasUsed.Uint64()
		}
	}
	return total
}

// TotalGasCostChecked is TotalGasCost without the silent truncation: it fails
// with numeric.ErrOverflow if any value or the running sum exceeds 64 bits.
func (l TokenTransferList) TotalGasCostChecked() (uint64, error) {
	var total uint64
	for i, tx := range l.records {
		if tx.GasUsed == nil {
			continue
		}
		if !tx.GasUsed.IsUint64() {
			return 0, fmt.Errorf("transfer %d: gas used %s: %w", i, tx.GasUsed.Dec(), numeric.ErrOverflow)
		}
		sum, err := numeric.AddUint64Checked(total, tx.GasUsed.Uint64())
		if err != nil {
			return 0, fmt.Errorf("transfer %d: %w", i, err)
		}
		total = sum
	}
	return total, nil
}

// TotalFees returns the sum of GasUsed * GasPrice in wei. Explorers list one
// row per Transfer event, so a transaction moving several tokens is charged
// once.
func (l TokenTransferList) TotalFees() (*uint256.Int, error) {
	total := new(uint256.Int)
	seen := make(map[common.Hash]struct{}, len(l.records))
	for _, tx := range l.records {
		if _, dup := seen[tx.Hash]; dup {
			continue
		}
		seen[tx.Hash] = struct{}{}
		if tx.GasUsed == nil || tx.GasPrice == nil {
			continue
		}

		fee, overflow := new(uint256.Int).MulOverflow(tx.GasUsed, tx.GasPrice)
		if overflow {
			return nil, fmt.Errorf("fee of %s: %w", tx.Hash.Hex(), numeric.ErrOverflow)
		}
		if _, overflow := total.AddOverflow(total, fee); overflow {
			return nil, fmt.Errorf("total fees: %w", numeric.ErrOverflow)
		}
	}
	return total, nil
}

// TokenFlow is the movement of one token into and out of a wallet.
type TokenFlow struct {
	Contract  common.Address
	Symbol    string
	Decimals  uint64
	In        *uint256.Int
	Out       *uint256.Int
	Transfers int
}

// NetFlows groups the wallet's transfers by token contract. A transfer from
// the wallet to itself counts on both sides. Results are ordered by symbol,
// then contract address.
func (l TokenTransferList) NetFlows(wallet common.Address) ([]TokenFlow, error) {
	flows := make(map[common.Address]*TokenFlow)
	for _, tx := range l.records {
		in, out := tx.To == wallet, tx.From == wallet
		if !in && !out {
			continue
		}

		f, ok := flows[tx.ContractAddress]
		if !ok {
			f = &TokenFlow{
				Contract: tx.ContractAddress,
				Symbol:   tx.TokenSymbol,
				Decimals: tx.TokenDecimal,
				In:       new(uint256.Int),
				Out:      new(uint256.Int),
			}
			flows[tx.ContractAddress] = f
		}
		f.Transfers++

		value := tx.Value
		if value == nil {
			continue
		}
		if in {
			if _, overflow := f.In.AddOverflow(f.In, value); overflow {
				return nil, fmt.Errorf("inbound %s: %w", f.Symbol, numeric.ErrOverflow)
			}
		}
		if out {
			if _, overflow := f.Out.AddOverflow(f.Out, value); overflow {
				return nil, fmt.Errorf("outbound %s: %w", f.Symbol, numeric.ErrOverflow)
			}
		}
	}

	result := make([]TokenFlow, 0, len(flows))
	for _, f := range flows {
		result = append(result, *f)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Symbol != result[j].Symbol {
			return result[i].Symbol < result[j].Symbol
		}
		return strings.Compare(result[i].Contract.Hex(), result[j].Contract.Hex()) < 0
	})
	return result, nil
}
