package etherscan

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseAddress decodes a 0x-prefixed 20-byte address. Mixed (checksummed)
// case is accepted; the checksum is not verified.
func ParseAddress(s string) (common.Address, error) {
	b, err := decodeFixedHex(s, common.AddressLength)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(b), nil
}

// ParseHash decodes a 0x-prefixed 32-byte hash.
func ParseHash(s string) (common.Hash, error) {
	b, err := decodeFixedHex(s, common.HashLength)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

// LowerHex renders an address the way the explorer query expects it:
// lower-case with a 0x prefix.
func LowerHex(addr common.Address) string {
	return hexutil.Encode(addr.Bytes())
}

func decodeFixedHex(s string, size int) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedHex, s, err)
	}
	if len(b) != size {
		return nil, fmt.Errorf("%w: %q is %d bytes, want %d", ErrMalformedHex, s, len(b), size)
	}
	return b, nil
}
