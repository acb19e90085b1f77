// Package numeric converts the text-encoded integers used by block explorer APIs
// into fixed-width Go values.
//
// Explorer responses carry every quantity as a string. Counters and indices
// (block number, nonce, decimals) fit in a uint64; monetary and gas fields are
// 256-bit and are held as *uint256.Int.
package numeric

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
)

// ErrMalformedNumber is returned when a string is not a plain unsigned decimal
// integer or does not fit in the target width.
var ErrMalformedNumber = errors.New("malformed number")

// ErrOverflow is returned by the checked aggregate helpers when a result does
// not fit in its target width.
var ErrOverflow = errors.New("numeric overflow")

// ParseUint64 parses an ASCII decimal string (no sign, no grouping, no
// whitespace) into a uint64. Leading zeros are accepted.
func ParseUint64(s string) (uint64, error) {
	if err := checkDigits(s); err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q overflows 64 bits", ErrMalformedNumber, s)
	}
	return v, nil
}

// ParseUint256 parses an ASCII decimal string into a 256-bit unsigned integer.
// The same input rules as ParseUint64 apply.
func ParseUint256(s string) (*uint256.Int, error) {
	if err := checkDigits(s); err != nil {
		return nil, err
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, s, err)
	}
	return v, nil
}

// checkDigits rejects everything but [0-9]+. uint256.FromDecimal tolerates a
// leading '+', which explorer fields never carry.
func checkDigits(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty string", ErrMalformedNumber)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%w: %q contains non-digit %q", ErrMalformedNumber, s, s[i])
		}
	}
	return nil
}
