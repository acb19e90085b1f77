// Package swap models token swaps and attaches reference-currency values to
// token quantities.
package swap

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/dmagro/defitax/internal/numeric"
)

// PriceLookup values a raw token amount in the reference currency.
type PriceLookup interface {
	ReferencePrice(ctx context.Context, ticker string, amount *uint256.Int) (decimal.Decimal, error)
}

// TokenQuantity is one side of a swap or transfer. Amount is in the token's
// smallest unit. ReferenceAmount is nil until AssignReferencePrice succeeds.
type TokenQuantity struct {
	Ticker          string
	Amount          *uint256.Int
	Decimals        uint64
	ReferenceAmount *decimal.Decimal
}

// AssignReferencePrice sets ReferenceAmount from lookup. Any lookup failure,
// including a negative value, leaves ReferenceAmount nil and is not reported:
// afterwards a nil ReferenceAmount cannot be told apart from one that was
// never looked up.
func (q *TokenQuantity) AssignReferencePrice(ctx context.Context, lookup PriceLookup) {
	q.ReferenceAmount = nil
	if lookup == nil {
		return
	}

	v, err := lookup.ReferencePrice(ctx, q.Ticker, q.Amount)
	if err != nil || v.IsNegative() {
		return
	}
	q.ReferenceAmount = &v
}

// ScaleTokenAmount converts a raw amount to whole tokens by floor division by
// 10^decimals.
func ScaleTokenAmount(amount *uint256.Int, decimals uint64) (*uint256.Int, error) {
	return numeric.ScaleByDecimals(amount, decimals)
}

// Whole returns the amount in whole tokens, discarding the fraction.
func (q TokenQuantity) Whole() (*uint256.Int, error) {
	return ScaleTokenAmount(q.Amount, q.Decimals)
}

// String renders the amount with its decimals applied, e.g. "1.5 USDC".
func (q TokenQuantity) String() string {
	return numeric.FormatUnits(q.Amount, q.Decimals) + " " + q.Ticker
}

// TokenSwap pairs what the wallet gave up with what it received in one
// transaction.
type TokenSwap struct {
	TxHash    common.Hash
	Timestamp uint64
	From      TokenQuantity
	To        TokenQuantity
}
