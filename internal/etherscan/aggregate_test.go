package etherscan

import (
	"math"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmagro/defitax/internal/numeric"
)

var (
	wallet  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	other   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	usdc    = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	weth    = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	hashOne = common.HexToHash("0x01")
	hashTwo = common.HexToHash("0x02")
)

func transfer(hash common.Hash, from, to, token common.Address, symbol string, value, gasUsed, gasPrice uint64) TokenTransfer {
	return TokenTransfer{
		Hash:            hash,
		From:            from,
		To:              to,
		ContractAddress: token,
		TokenSymbol:     symbol,
		TokenDecimal:    6,
		Value:           uint256.NewInt(value),
		GasUsed:         uint256.NewInt(gasUsed),
		GasPrice:        uint256.NewInt(gasPrice),
	}
}

func TestTotalGasCostEmpty(t *testing.T) {
	assert.Zero(t, TokenTransferList{}.TotalGasCost())

	total, err := TokenTransferList{}.TotalGasCostChecked()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTotalGasCostIsOrderIndependent(t *testing.T) {
	records := []TokenTransfer{
		transfer(hashOne, wallet, other, usdc, "USDC", 1, 21000, 1),
		transfer(hashTwo, other, wallet, weth, "WETH", 1, 65000, 1),
		transfer(common.HexToHash("0x03"), wallet, other, usdc, "USDC", 1, 120000, 1),
	}
	reversed := []TokenTransfer{records[2], records[1], records[0]}

	forward := NewTokenTransferList(records).TotalGasCost()
	backward := NewTokenTransferList(reversed).TotalGasCost()
	assert.Equal(t, uint64(206000), forward)
	assert.Equal(t, forward, backward)
}

func TestTotalGasCostTruncatesAndWraps(t *testing.T) {
	huge := transfer(hashOne, wallet, other, usdc, "USDC", 1, 0, 1)
	// 2^64 + 5 truncates to 5.
	huge.GasUsed = new(uint256.Int).Add(new(uint256.Int).Lsh(uint256.NewInt(1), 64), uint256.NewInt(5))
	maxed := transfer(hashTwo, wallet, other, usdc, "USDC", 1, math.MaxUint64, 1)

	list := NewTokenTransferList([]TokenTransfer{huge, maxed})
	assert.Equal(t, uint64(4), list.TotalGasCost())

	_, err := list.TotalGasCostChecked()
	assert.ErrorIs(t, err, numeric.ErrOverflow)

	_, err = NewTokenTransferList([]TokenTransfer{maxed, maxed}).TotalGasCostChecked()
	assert.ErrorIs(t, err, numeric.ErrOverflow)
}

func TestTotalFeesCountsEachTransactionOnce(t *testing.T) {
	list := NewTokenTransferList([]TokenTransfer{
		transfer(hashOne, wallet, other, usdc, "USDC", 1, 21000, 2),
		transfer(hashOne, other, wallet, weth, "WETH", 1, 21000, 2),
		transfer(hashTwo, wallet, other, usdc, "USDC", 1, 50000, 3),
	})

	fees, err := list.TotalFees()
	require.NoError(t, err)
	assert.Equal(t, uint64(21000*2+50000*3), fees.Uint64())
}

func TestTotalFeesOverflow(t *testing.T) {
	tx := transfer(hashOne, wallet, other, usdc, "USDC", 1, 0, 0)
	tx.GasUsed = new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	tx.GasPrice = new(uint256.Int).Lsh(uint256.NewInt(1), 100)

	_, err := NewTokenTransferList([]TokenTransfer{tx}).TotalFees()
	assert.ErrorIs(t, err, numeric.ErrOverflow)
}

func TestNetFlows(t *testing.T) {
	list := NewTokenTransferList([]TokenTransfer{
		transfer(hashOne, other, wallet, usdc, "USDC", 500, 1, 1),
		transfer(hashTwo, wallet, other, usdc, "USDC", 200, 1, 1),
		transfer(common.HexToHash("0x03"), wallet, other, weth, "WETH", 7, 1, 1),
		transfer(common.HexToHash("0x04"), other, other, weth, "WETH", 9, 1, 1),
		transfer(common.HexToHash("0x05"), wallet, wallet, weth, "WETH", 3, 1, 1),
	})

	flows, err := list.NetFlows(wallet)
	require.NoError(t, err)
	require.Len(t, flows, 2)

	assert.Equal(t, "USDC", flows[0].Symbol)
	assert.Equal(t, uint64(500), flows[0].In.Uint64())
	assert.Equal(t, uint64(200), flows[0].Out.Uint64())
	assert.Equal(t, 2, flows[0].Transfers)

	assert.Equal(t, "WETH", flows[1].Symbol)
	assert.Equal(t, uint64(3), flows[1].In.Uint64())
	assert.Equal(t, uint64(10), flows[1].Out.Uint64())
	assert.Equal(t, 2, flows[1].Transfers)
}

func TestInYear(t *testing.T) {
	at := func(ts string) TokenTransfer {
		parsed, err := time.Parse(time.RFC3339, ts)
		require.NoError(t, err)
		tx := transfer(hashOne, wallet, other, usdc, "USDC", 1, 1, 1)
		tx.Timestamp = uint64(parsed.Unix())
		return tx
	}

	list := NewTokenTransferList([]TokenTransfer{
		at("2020-12-31T23:59:59Z"),
		at("2021-01-01T00:00:00Z"),
		at("2021-12-31T23:59:59Z"),
		at("2022-01-01T00:00:00Z"),
	})

	year := list.InYear(2021)
	require.Equal(t, 2, year.Len())
	assert.Equal(t, list.At(1).Timestamp, year.At(0).Timestamp)
	assert.Equal(t, list.At(2).Timestamp, year.At(1).Timestamp)
	assert.Zero(t, list.InYear(2019).Len())
}

func TestListIsNotAliasedByCaller(t *testing.T) {
	records := []TokenTransfer{transfer(hashOne, wallet, other, usdc, "USDC", 1, 21000, 1)}
	list := NewTokenTransferList(records)
	records[0].TokenSymbol = "CHANGED"

	assert.Equal(t, "USDC", list.At(0).TokenSymbol)

	copied := list.Records()
	copied[0].TokenSymbol = "CHANGED"
	assert.Equal(t, "USDC", list.At(0).TokenSymbol)
}
