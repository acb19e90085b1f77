// Package etherscan ingests ERC-20 token transfer history from an
// Etherscan-compatible block explorer API.
//
// The explorer returns every quantity as a JSON string and spells some keys in
// camelCase. This package turns that loosely typed payload into TokenTransfer
// values with fixed-width integers, addresses and hashes, and rejects the whole
// response if any record is malformed.
package etherscan

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/dmagro/defitax/internal/numeric"
)

// TokenTransfer is one ERC-20 Transfer event as reported by the explorer.
//
// Value is in the token's smallest unit; divide by 10^TokenDecimal (see
// numeric.ScaleByDecimals) before treating it as a token quantity. Values are
// only produced by decoding and are not modified afterwards.
type TokenTransfer struct {
	BlockNumber       uint64
	Timestamp         uint64 // seconds since the Unix epoch
	Hash              common.Hash
	Nonce             uint64
	BlockHash         common.Hash
	From              common.Address
	ContractAddress   common.Address // token contract
	To                common.Address
	Value             *uint256.Int
	TokenName         string
	TokenSymbol       string
	TokenDecimal      uint64
	TransactionIndex  uint64
	Gas               *uint256.Int // gas limit
	GasPrice          *uint256.Int // wei
	GasUsed           *uint256.Int
	CumulativeGasUsed *uint256.Int
	Input             string // deprecated by the explorer, kept verbatim
	Confirmations     uint64
}

// transferField describes how one field is located and decoded. Keys are
// tried in order; exactly one of them must be present.
type transferField struct {
	name   string
	keys   []string
	decode func(t *TokenTransfer, s string) error
}

func uint64Field(name string, keys []string, dst func(t *TokenTransfer) *uint64) transferField {
	return transferField{name: name, keys: keys, decode: func(t *TokenTransfer, s string) error {
		v, err := numeric.ParseUint64(s)
		if err != nil {
			return err
		}
		*dst(t) = v
		return nil
	}}
}

func uint256Field(name string, keys []string, dst func(t *TokenTransfer) **uint256.Int) transferField {
	return transferField{name: name, keys: keys, decode: func(t *TokenTransfer, s string) error {
		v, err := numeric.ParseUint256(s)
		if err != nil {
			return err
		}
		*dst(t) = v
		return nil
	}}
}

func addressField(name string, keys []string, dst func(t *TokenTransfer) *common.Address) transferField {
	return transferField{name: name, keys: keys, decode: func(t *TokenTransfer, s string) error {
		v, err := ParseAddress(s)
		if err != nil {
			return err
		}
		*dst(t) = v
		return nil
	}}
}

func hashField(name string, keys []string, dst func(t *TokenTransfer) *common.Hash) transferField {
	return transferField{name: name, keys: keys, decode: func(t *TokenTransfer, s string) error {
		v, err := ParseHash(s)
		if err != nil {
			return err
		}
		*dst(t) = v
		return nil
	}}
}

func textField(name string, keys []string, dst func(t *TokenTransfer) *string) transferField {
	return transferField{name: name, keys: keys, decode: func(t *TokenTransfer, s string) error {
		*dst(t) = s
		return nil
	}}
}

// transferFields lists every field of a transfer object in declaration order.
// The canonical snake_case name comes first, then the explorer's camelCase key.
var transferFields = []transferField{
	uint64Field("block_number", []string{"block_number", "blockNumber"}, func(t *TokenTransfer) *uint64 { return &t.BlockNumber }),
	uint64Field("timestamp", []string{"timestamp", "timeStamp"}, func(t *TokenTransfer) *uint64 { return &t.Timestamp }),
	hashField("hash", []string{"hash"}, func(t *TokenTransfer) *common.Hash { return &t.Hash }),
	uint64Field("nonce", []string{"nonce"}, func(t *TokenTransfer) *uint64 { return &t.Nonce }),
	hashField("block_hash", []string{"block_hash", "blockHash"}, func(t *TokenTransfer) *common.Hash { return &t.BlockHash }),
	addressField("from", []string{"from"}, func(t *TokenTransfer) *common.Address { return &t.From }),
	addressField("contract_address", []string{"contract_address", "contractAddress"}, func(t *TokenTransfer) *common.Address { return &t.ContractAddress }),
	addressField("to", []string{"to"}, func(t *TokenTransfer) *common.Address { return &t.To }),
	uint256Field("value", []string{"value"}, func(t *TokenTransfer) **uint256.Int { return &t.Value }),
	textField("token_name", []string{"token_name", "tokenName"}, func(t *TokenTransfer) *string { return &t.TokenName }),
	textField("token_symbol", []string{"token_symbol", "tokenSymbol"}, func(t *TokenTransfer) *string { return &t.TokenSymbol }),
	uint64Field("token_decimal", []string{"token_decimal", "tokenDecimal"}, func(t *TokenTransfer) *uint64 { return &t.TokenDecimal }),
	uint64Field("transaction_index", []string{"transaction_index", "transactionIndex"}, func(t *TokenTransfer) *uint64 { return &t.TransactionIndex }),
	uint256Field("gas", []string{"gas"}, func(t *TokenTransfer) **uint256.Int { return &t.Gas }),
	uint256Field("gas_price", []string{"gas_price", "gasPrice"}, func(t *TokenTransfer) **uint256.Int { return &t.GasPrice }),
	uint256Field("gas_used", []string{"gas_used", "gasUsed"}, func(t *TokenTransfer) **uint256.Int { return &t.GasUsed }),
	uint256Field("cumulative_gas_used", []string{"cumulative_gas_used", "cumulativeGasUsed"}, func(t *TokenTransfer) **uint256.Int { return &t.CumulativeGasUsed }),
	textField("input", []string{"input"}, func(t *TokenTransfer) *string { return &t.Input }),
	uint64Field("confirmations", []string{"confirmations"}, func(t *TokenTransfer) *uint64 { return &t.Confirmations }),
}

// UnmarshalJSON decodes one explorer transfer object. On error the receiver is
// left untouched and the error is a *RecordParseError naming the field.
func (t *TokenTransfer) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return &RecordParseError{Field: "(record)", Err: err}
	}
	if obj == nil {
		return &RecordParseError{Field: "(record)", Err: fmt.Errorf("%w: record is null", ErrNotText)}
	}

	var decoded TokenTransfer
	for _, f := range transferFields {
		s, err := lookupText(obj, f.keys)
		if err == nil {
			err = f.decode(&decoded, s)
		}
		if err != nil {
			return &RecordParseError{Field: f.name, Err: err}
		}
	}

	*t = decoded
	return nil
}

// lookupText finds the single present key among keys and returns its string
// value.
func lookupText(obj map[string]json.RawMessage, keys []string) (string, error) {
	var (
		found string
		raw   json.RawMessage
	)
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		if found != "" {
			return "", fmt.Errorf("%w: both %q and %q present", ErrDuplicateField, found, k)
		}
		found, raw = k, v
	}
	if found == "" {
		return "", ErrMissingField
	}
	return decodeText(raw)
}

func decodeText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", fmt.Errorf("%w, got %s", ErrNotText, truncateRaw(raw))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func truncateRaw(raw json.RawMessage) string {
	const max = 32
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}
