package etherscan

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Ethereum mainnet Etherscan endpoint.
	DefaultBaseURL = "https://api.etherscan.io/api"

	startBlock = 0
	endBlock   = 999999999
)

// FetchState is a step of a token transfer fetch.
type FetchState int

const (
	StateRequesting FetchState = iota
	StateParsingEnvelope
	StateDone
	StateFailed
)

func (s FetchState) String() string {
	switch s {
	case StateRequesting:
		return "requesting"
	case StateParsingEnvelope:
		return "parsing_envelope"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("FetchState(%d)", int(s))
	}
}

// FetcherConfig holds what a Fetcher needs from configuration. APIKey is
// passed in explicitly; the fetcher never reads the environment.
type FetcherConfig struct {
	BaseURL string
	APIKey  string
}

// Fetcher retrieves a wallet's full ERC-20 transfer history with one request.
// It holds no mutable state, so one Fetcher can serve concurrent fetches.
type Fetcher struct {
	baseURL   string
	apiKey    string
	transport Transport
	logger    *zap.Logger
}

// NewFetcher builds a Fetcher. An empty BaseURL selects DefaultBaseURL and a
// nil logger discards log output.
func NewFetcher(cfg FetcherConfig, transport Transport, logger *zap.Logger) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		baseURL:   strings.TrimRight(cfg.BaseURL, "?"),
		apiKey:    cfg.APIKey,
		transport: transport,
		logger:    logger,
	}
}

// RequestURL builds the tokentx query for address: every block from genesis,
// ascending.
func (f *Fetcher) RequestURL(address common.Address) string {
	return f.requestURL(address, url.QueryEscape(f.apiKey))
}

func (f *Fetcher) requestURL(address common.Address, apiKey string) string {
	return fmt.Sprintf("%s?module=account&action=tokentx&address=%s&startBlock=%d&endBlock=%d&sort=asc&apiKey=%s",
		f.baseURL, LowerHex(address), startBlock, endBlock, apiKey)
}

// FetchTokenTransfers runs Requesting -> ParsingEnvelope -> Done. Any failure
// is a *FetchError and no partial list is returned. There is exactly one
// transport call and no retry; cancelling ctx aborts it.
func (f *Fetcher) FetchTokenTransfers(ctx context.Context, address common.Address) (TokenTransferList, error) {
	log := f.logger.With(zap.String("address", LowerHex(address)))

	state := StateRequesting
	log.Debug("fetch state", zap.Stringer("state", state))

	if f.apiKey == "" {
		return TokenTransferList{}, f.fail(log, state, FailureConfigMissing, ErrConfigMissing)
	}
	if f.transport == nil {
		return TokenTransferList{}, f.fail(log, state, FailureTransport, ErrNoTransport)
	}

	log.Debug("requesting token transfers", zap.String("url", f.requestURL(address, "REDACTED")))
	body, err := f.transport.FetchText(ctx, f.RequestURL(address))
	if err != nil {
		return TokenTransferList{}, f.fail(log, state, FailureTransport, err)
	}

	state = StateParsingEnvelope
	log.Debug("fetch state", zap.Stringer("state", state), zap.Int("bytes", len(body)))

	resp, err := ParseResponse([]byte(body))
	if err != nil {
		return TokenTransferList{}, f.fail(log, state, FailureParse, err)
	}
	if resp.Status != StatusOK {
		log.Warn("explorer returned non-success status",
			zap.Uint64("status", resp.Status),
			zap.String("message", resp.Message),
			zap.Int("records", len(resp.Result)))
	}

	state = StateDone
	log.Debug("fetch state", zap.Stringer("state", state), zap.Int("records", len(resp.Result)))

	return TokenTransferList{records: resp.Result}, nil
}

func (f *Fetcher) fail(log *zap.Logger, from FetchState, kind FailureKind, err error) error {
	log.Debug("fetch state",
		zap.Stringer("state", StateFailed),
		zap.Stringer("from", from),
		zap.String("kind", string(kind)),
		zap.Error(err))
	return &FetchError{Kind: kind, State: from, Err: err}
}
