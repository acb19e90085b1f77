package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmagro/defitax/internal/etherscan"
	"github.com/dmagro/defitax/internal/output"
)

const testWallet = "0x00000000000000000000000000000000000000aa"

// One USDC -> WETH swap in 2023 and one USDC receipt in 2022.
const explorerBody = `{"status":"1","message":"OK","result":[` +
	`{"blockNumber":"1","timeStamp":"1656633600","hash":"0x0000000000000000000000000000000000000000000000000000000000000001",` +
	`"nonce":"0","blockHash":"0x0000000000000000000000000000000000000000000000000000000000000010",` +
	`"from":"0x00000000000000000000000000000000000000bb","contractAddress":"0x00000000000000000000000000000000000000c1",` +
	`"to":"0x00000000000000000000000000000000000000aa","value":"5000000","tokenName":"USD Coin","tokenSymbol":"USDC",` +
	`"tokenDecimal":"6","transactionIndex":"0","gas":"60000","gasPrice":"1000000000","gasUsed":"50000",` +
	`"cumulativeGasUsed":"50000","input":"deprecated","confirmations":"100"},` +
	`{"blockNumber":"2","timeStamp":"1688169600","hash":"0x0000000000000000000000000000000000000000000000000000000000000002",` +
	`"nonce":"1","blockHash":"0x0000000000000000000000000000000000000000000000000000000000000020",` +
	`"from":"0x00000000000000000000000000000000000000aa","contractAddress":"0x00000000000000000000000000000000000000c1",` +
	`"to":"0x00000000000000000000000000000000000000bb","value":"3000000000","tokenName":"USD Coin","tokenSymbol":"USDC",` +
	`"tokenDecimal":"6","transactionIndex":"0","gas":"200000","gasPrice":"2000000000","gasUsed":"150000",` +
	`"cumulativeGasUsed":"150000","input":"deprecated","confirmations":"50"},` +
	`{"blockNumber":"2","timeStamp":"1688169600","hash":"0x0000000000000000000000000000000000000000000000000000000000000002",` +
	`"nonce":"1","blockHash":"0x0000000000000000000000000000000000000000000000000000000000000020",` +
	`"from":"0x00000000000000000000000000000000000000bb","contractAddress":"0x00000000000000000000000000000000000000c2",` +
	`"to":"0x00000000000000000000000000000000000000aa","value":"1000000000000000000","tokenName":"Wrapped Ether","tokenSymbol":"WETH",` +
	`"tokenDecimal":"18","transactionIndex":"0","gas":"200000","gasPrice":"2000000000","gasUsed":"150000",` +
	`"cumulativeGasUsed":"150000","input":"deprecated","confirmations":"50"}]}`

func newExplorer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tokentx", r.URL.Query().Get("action"))
		assert.Equal(t, testWallet, r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, baseURL, apiKey string) string {
	t.Helper()
	body := fmt.Sprintf(`explorer:
  base_url: %s/api
  api_key: "%s"
  timeout: 5s
pricing:
  currency: USD
  precision: 2
  tokens:
    - symbol: USDC
      decimals: 6
      price: "1.00"
`, baseURL, apiKey)
	path := filepath.Join(t.TempDir(), "defitax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	output.DisableColors()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTransfersJSON(t *testing.T) {
	srv := newExplorer(t, explorerBody)
	cfg := writeConfig(t, srv.URL, "KEY")

	out, err := run(t, "transfers", testWallet, "2023", "--format", "json", "--config", cfg)
	require.NoError(t, err)

	var got output.JSONTransferReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2023, got.Metadata.Year)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, uint64(300000), got.TotalGas)
}

func TestTransfersTerminal(t *testing.T) {
	srv := newExplorer(t, explorerBody)
	cfg := writeConfig(t, srv.URL, "KEY")

	out, err := run(t, "transfers", testWallet, "2022", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Token Transfers · 2022")
	assert.Contains(t, out, "+5")
	assert.Contains(t, out, "50,000")
}

func TestGasJSON(t *testing.T) {
	srv := newExplorer(t, explorerBody)
	cfg := writeConfig(t, srv.URL, "KEY")

	out, err := run(t, "gas", testWallet, "2023", "--format", "json", "--config", cfg)
	require.NoError(t, err)

	var got output.JSONGasReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, uint64(300000), got.TotalGas)
	// both rows share a transaction, so the fee is charged once
	assert.Equal(t, "300000000000000", got.TotalFeesWei)
}

func TestFlowsJSON(t *testing.T) {
	srv := newExplorer(t, explorerBody)
	cfg := writeConfig(t, srv.URL, "KEY")

	out, err := run(t, "flows", testWallet, "2023", "--format", "json", "--config", cfg)
	require.NoError(t, err)

	var got output.JSONFlowReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Flows, 2)
	assert.Equal(t, "USDC", got.Flows[0].Symbol)
	assert.Equal(t, "-3000", got.Flows[0].Net)
	assert.Equal(t, "WETH", got.Flows[1].Symbol)
	assert.Equal(t, "1", got.Flows[1].Net)
}

func TestSwapsJSON(t *testing.T) {
	srv := newExplorer(t, explorerBody)
	cfg := writeConfig(t, srv.URL, "KEY")

	out, err := run(t, "swaps", testWallet, "2023", "--format", "json", "--config", cfg)
	require.NoError(t, err)

	var got output.JSONSwapReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "USD", got.Currency)
	require.Len(t, got.Swaps, 1)
	s := got.Swaps[0]
	assert.Equal(t, "USDC", s.From.Ticker)
	require.NotNil(t, s.From.Reference)
	assert.Equal(t, "3000", *s.From.Reference)
	assert.Equal(t, "WETH", s.To.Ticker)
	assert.Nil(t, s.To.Reference, "WETH is not in the price table")
}

func TestMissingAPIKey(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { requests++ }))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL, "")

	_, err := run(t, "gas", testWallet, "2023", "--config", cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, etherscan.ErrConfigMissing)
	assert.Equal(t, etherscan.FailureConfigMissing, etherscan.KindOf(err))
	assert.Zero(t, requests)
}

// captureStderr runs fn with os.Stderr redirected and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()
	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestMissingAPIKeyPrintsOneLine(t *testing.T) {
	srv := newExplorer(t, explorerBody)
	cfg := writeConfig(t, srv.URL, "")
	output.DisableColors()

	var code int
	stderr := captureStderr(t, func() {
		code = execute(context.Background(), []string{"gas", testWallet, "2023", "--config", cfg}, io.Discard, os.Stderr)
	})

	assert.Equal(t, 1, code)
	lines := strings.Split(strings.TrimRight(stderr, "\n"), "\n")
	require.Len(t, lines, 1, "stderr was %q", stderr)
	assert.Equal(t, "defitax: configuration: explorer API key is not set", lines[0])
}

func TestExecuteSuccess(t *testing.T) {
	srv := newExplorer(t, explorerBody)
	cfg := writeConfig(t, srv.URL, "KEY")

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{"gas", testWallet, "2023", "--format", "json", "--config", cfg}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	assert.Contains(t, stdout.String(), `"totalGas": 300000`)
}

func TestMalformedResponse(t *testing.T) {
	srv := newExplorer(t, `{"status":"1","message":"OK","result":[{"blockNumber":"x"}]}`)
	cfg := writeConfig(t, srv.URL, "KEY")

	_, err := run(t, "transfers", testWallet, "2023", "--config", cfg)
	assert.Equal(t, etherscan.FailureParse, etherscan.KindOf(err))
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad address", []string{"transfers", "0x1234", "2023"}, "invalid address"},
		{"year not a number", []string{"gas", testWallet, "twenty"}, "invalid year"},
		{"year too early", []string{"gas", testWallet, "2014"}, "between 2015 and 9999"},
		{"bad format", []string{"flows", testWallet, "2023", "--format", "csv"}, "invalid format"},
		{"missing year", []string{"swaps", testWallet}, "accepts 2 arg(s)"},
		{"missing config", []string{"gas", testWallet, "2023", "--config", "does-not-exist.yaml"}, "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
