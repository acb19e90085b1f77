// Package pricing values token amounts in a reference currency using a fixed
// per-token price table.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/dmagro/defitax/internal/config"
	"github.com/dmagro/defitax/internal/numeric"
)

// ErrUnknownTicker is returned for a ticker the table has no price for.
var ErrUnknownTicker = errors.New("unknown ticker")

// Token is one priced entry. Price is per whole token.
type Token struct {
	Symbol   string
	Decimals uint64
	Price    decimal.Decimal
}

// Table is a static price table. It is safe for concurrent use once built.
type Table struct {
	currency  string
	precision int32
	tokens    map[string]Token
}

// NewTable builds a table. Symbols are matched case-insensitively and must be
// unique. Results are truncated to precision decimal places.
func NewTable(currency string, precision int32, tokens []Token) (*Table, error) {
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}
	if precision < 0 {
		return nil, fmt.Errorf("precision must be >= 0")
	}

	t := &Table{
		currency:  strings.ToUpper(currency),
		precision: precision,
		tokens:    make(map[string]Token, len(tokens)),
	}
	for _, tok := range tokens {
		key := strings.ToUpper(strings.TrimSpace(tok.Symbol))
		if key == "" {
			return nil, fmt.Errorf("token symbol is required")
		}
		if tok.Decimals > numeric.MaxScaleDecimals {
			return nil, fmt.Errorf("token %s: decimals %d exceeds %d", tok.Symbol, tok.Decimals, numeric.MaxScaleDecimals)
		}
		if tok.Price.IsNegative() {
			return nil, fmt.Errorf("token %s: price must be >= 0", tok.Symbol)
		}
		if _, dup := t.tokens[key]; dup {
			return nil, fmt.Errorf("token %s listed twice", tok.Symbol)
		}
		t.tokens[key] = tok
	}
	return t, nil
}

// FromConfig builds a table from the pricing section of the config file.
func FromConfig(p config.Pricing) (*Table, error) {
	tokens := make([]Token, 0, len(p.Tokens))
	for _, tc := range p.Tokens {
		price, err := decimal.NewFromString(tc.Price)
		if err != nil {
			return nil, fmt.Errorf("token %s: invalid price %q: %w", tc.Symbol, tc.Price, err)
		}
		tokens = append(tokens, Token{Symbol: tc.Symbol, Decimals: tc.Decimals, Price: price})
	}
	return NewTable(p.Currency, p.Precision, tokens)
}

// Currency returns the reference currency code, upper-cased.
func (t *Table) Currency() string { return t.currency }

// Len returns the number of priced tokens.
func (t *Table) Len() int { return len(t.tokens) }

// ReferencePrice values amount, given in the token's smallest unit, in the
// table's currency.
func (t *Table) ReferencePrice(ctx context.Context, ticker string, amount *uint256.Int) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	tok, ok := t.tokens[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
	}
	return numeric.ToDecimal(amount, tok.Decimals).Mul(tok.Price).Truncate(t.precision), nil
}
