package numeric

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// weiPerEther is the scale between wei and ether.
const weiPerEther = 18

// ToDecimal converts a raw integer amount into a decimal with the token's
// decimals applied. Unlike ScaleByDecimals this keeps the fraction and accepts
// any decimals up to math.MaxInt32, the largest exponent a decimal holds.
func ToDecimal(amount *uint256.Int, decimals uint64) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	if decimals > math.MaxInt32 {
		decimals = math.MaxInt32
	}
	return decimal.NewFromBigInt(amount.ToBig(), -int32(decimals))
}

// FormatUnits renders amount/10^decimals in full precision, e.g.
// FormatUnits(1500000, 6) == "1.5".
func FormatUnits(amount *uint256.Int, decimals uint64) string {
	return ToDecimal(amount, decimals).String()
}

// FormatEther renders a wei amount in ether.
func FormatEther(wei *uint256.Int) string {
	return FormatUnits(wei, weiPerEther)
}

// FormatGwei renders a wei price in gwei with two decimals.
func FormatGwei(wei *uint256.Int) string {
	if wei == nil {
		return "—"
	}
	return ToDecimal(wei, 9).StringFixed(2) + " gwei"
}

// FormatWithCommas inserts thousands separators: 1234567 -> "1,234,567".
func FormatWithCommas(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}
