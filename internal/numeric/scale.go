package numeric

import (
	"fmt"
	"math/bits"

	"github.com/holiman/uint256"
)

// MaxScaleDecimals is the largest exponent e for which 10^e fits in 256 bits.
const MaxScaleDecimals = 77

// ScaleByDecimals returns amount / 10^decimals using integer floor division.
//
// The result is lossy: the fractional part is discarded, so 1.9 tokens scale
// to 1. Use FormatUnits when the fraction matters for display. Exponents above
// MaxScaleDecimals fail with ErrMalformedNumber instead of wrapping.
func ScaleByDecimals(amount *uint256.Int, decimals uint64) (*uint256.Int, error) {
	if decimals > MaxScaleDecimals {
		return nil, fmt.Errorf("%w: 10^%d does not fit in 256 bits", ErrMalformedNumber, decimals)
	}
	if amount == nil {
		return new(uint256.Int), nil
	}
	denominator := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(decimals))
	return new(uint256.Int).Div(amount, denominator), nil
}

// AddUint64Checked adds b to a and reports ErrOverflow when the sum wraps.
func AddUint64Checked(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d exceeds 64 bits", ErrOverflow, a, b)
	}
	return sum, nil
}
