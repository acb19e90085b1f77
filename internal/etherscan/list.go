package etherscan

import (
	"math"
	"time"
)

// TokenTransferList holds the transfers of one fetch in explorer order
// (ascending block). It is read-only once built; aggregates are computed on
// demand.
type TokenTransferList struct {
	records []TokenTransfer
}

// NewTokenTransferList copies records into a new list.
func NewTokenTransferList(records []TokenTransfer) TokenTransferList {
	owned := make([]TokenTransfer, len(records))
	copy(owned, records)
	return TokenTransferList{records: owned}
}

// Len returns the number of transfers.
func (l TokenTransferList) Len() int { return len(l.records) }

// At returns the i-th transfer.
func (l TokenTransferList) At(i int) TokenTransfer { return l.records[i] }

// Records returns a copy of the transfers.
func (l TokenTransferList) Records() []TokenTransfer {
	out := make([]TokenTransfer, len(l.records))
	copy(out, l.records)
	return out
}

// InYear keeps the transfers whose timestamp falls inside the given UTC
// calendar year, preserving order.
func (l TokenTransferList) InYear(year int) TokenTransferList {
	var kept []TokenTransfer
	for _, tx := range l.records {
		if tx.Timestamp > math.MaxInt64 {
			continue
		}
		if time.Unix(int64(tx.Timestamp), 0).UTC().Year() == year {
			kept = append(kept, tx)
		}
	}
	return TokenTransferList{records: kept}
}
