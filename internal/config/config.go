// Package config provides YAML configuration file loading and validation.
// It handles environment variable expansion and .env loading, and checks
// that every required field is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// maxDecimals is the largest token decimals value whose power of ten fits in
// 256 bits.
const maxDecimals = 77

// maxPrecision bounds pricing.precision.
const maxPrecision = 18

// DefaultPath is where commands look for the config file when --config is
// not given.
const DefaultPath = "config/defitax.yaml"

// Config represents the root configuration structure loaded from YAML.
type Config struct {
	Explorer Explorer `yaml:"explorer"` // Block explorer API settings
	Pricing  Pricing  `yaml:"pricing"`  // Reference-currency price table
}

// Explorer describes the Etherscan-compatible API endpoint.
type Explorer struct {
	BaseURL string        `yaml:"base_url"` // e.g. https://api.etherscan.io/api
	APIKey  string        `yaml:"api_key"`  // supports ${VAR} env expansion; may be empty
	Timeout time.Duration `yaml:"timeout"`  // HTTP request timeout (e.g. "15s")
}

// Pricing holds the static price table used to value swaps.
type Pricing struct {
	Currency  string       `yaml:"currency"`  // Reference currency code, e.g. "USD"
	Precision int32        `yaml:"precision"` // Decimal places kept in valuations
	Tokens    []TokenPrice `yaml:"tokens"`
}

// TokenPrice is one priced token. Price is a decimal string per whole token
// so YAML float parsing never rounds it.
type TokenPrice struct {
	Symbol   string `yaml:"symbol"`
	Decimals uint64 `yaml:"decimals"`
	Price    string `yaml:"price"`
}

// Validate checks the configuration. It may emit warnings (to stderr) for
// suspicious timeouts but does not fail on warnings. An empty API key is
// allowed and not warned about here; fetching reports it.
func (c *Config) Validate() error {
	if c.Explorer.BaseURL == "" {
		return fmt.Errorf("explorer.base_url is required")
	}
	u, err := url.Parse(c.Explorer.BaseURL)
	if err != nil {
		return fmt.Errorf("explorer.base_url: invalid url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("explorer.base_url: invalid url (missing scheme or host)")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("explorer.base_url: invalid url scheme %q (expected http or https)", u.Scheme)
	}

	if c.Explorer.Timeout == 0 {
		return fmt.Errorf("explorer.timeout is required")
	}
	const low = 500 * time.Millisecond
	const high = 2 * time.Minute
	if c.Explorer.Timeout < low {
		fmt.Fprintf(os.Stderr, "Warning: explorer timeout is very low (%s); requests may fail under normal network jitter\n", c.Explorer.Timeout)
	}
	if c.Explorer.Timeout > high {
		fmt.Fprintf(os.Stderr, "Warning: explorer timeout is very high (%s); failures may take a long time to surface\n", c.Explorer.Timeout)
	}

	if c.Pricing.Currency == "" {
		return fmt.Errorf("pricing.currency is required")
	}
	if c.Pricing.Precision < 0 || c.Pricing.Precision > maxPrecision {
		return fmt.Errorf("pricing.precision must be between 0 and %d", maxPrecision)
	}
	seen := make(map[string]bool, len(c.Pricing.Tokens))
	for i, tok := range c.Pricing.Tokens {
		if tok.Symbol == "" {
			return fmt.Errorf("pricing.tokens[%d]: symbol is required", i)
		}
		key := strings.ToUpper(tok.Symbol)
		if seen[key] {
			return fmt.Errorf("pricing.tokens[%d]: duplicate symbol %s", i, tok.Symbol)
		}
		seen[key] = true
		if tok.Decimals > maxDecimals {
			return fmt.Errorf("pricing.tokens[%d] (%s): decimals must be <= %d", i, tok.Symbol, maxDecimals)
		}
		if tok.Price == "" {
			return fmt.Errorf("pricing.tokens[%d] (%s): price is required", i, tok.Symbol)
		}
		price, err := decimal.NewFromString(tok.Price)
		if err != nil {
			return fmt.Errorf("pricing.tokens[%d] (%s): invalid price %q", i, tok.Symbol, tok.Price)
		}
		if price.IsNegative() {
			return fmt.Errorf("pricing.tokens[%d] (%s): price must be >= 0", i, tok.Symbol)
		}
	}

	return nil
}

// Load reads and parses a YAML configuration file, expanding environment
// variables (${VAR}) before parsing, then validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv loads variables from the given .env files (".env" when none are
// named). Variables already set in the process environment win. Missing
// files are skipped so the tool also works from the system environment alone.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
