package output

import (
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common"
)

// JSONMetadata identifies what a JSON report covers.
type JSONMetadata struct {
	Wallet  string `json:"wallet"`
	Year    int    `json:"year"`
	Version string `json:"version"`
}

// Version is reported in JSON metadata.
var Version = "dev"

func newMetadata(wallet common.Address, year int) JSONMetadata {
	return JSONMetadata{Wallet: wallet.Hex(), Year: year, Version: Version}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
