// Package config loads server configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// BSC constants. These contracts are external and used as-is.
const (
	// PancakeRouterV2 is the PancakeSwap V2 router on BSC.
	PancakeRouterV2 = "0x10ED43C718714eb63d5aA57B78B54704E256024E"

	// WBNB is the wrapped BNB token on BSC.
	WBNB = "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c"

	// FourMemeFactory is the FourMeme token factory; Bitquery queries filter
	// DEX trades by this owner address.
	FourMemeFactory = "0x5c952063c7fc8610ffdb798152d69f0b9550762b"

	// BSCChainID is the BNB Smart Chain mainnet chain ID, used for
	// transaction signing.
	BSCChainID = 56
)

// Defaults for optional settings.
const (
	DefaultBitqueryURL = "https://streaming.bitquery.io/graphql"
	DefaultRPCURL      = "https://bsc-dataseed.binance.org/"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultJournalPath = "fourmeme-trades.db"
)

// Config holds connection settings for Bitquery and the BSC RPC endpoint.
type Config struct {
	// BitqueryURL is the Bitquery v2 streaming GraphQL endpoint.
	BitqueryURL string

	// BitqueryToken is the bearer token for Bitquery (required for query tools).
	BitqueryToken string

	// RPCURL is the BSC JSON-RPC endpoint.
	RPCURL string

	// WalletPrivateKey is the hex-encoded key used to sign swap transactions.
	// Trading tools return a wallet-not-configured error when empty.
	WalletPrivateKey string

	// MetricsAddr enables the Prometheus /metrics listener when non-empty
	// (e.g. ":9090").
	MetricsAddr string

	// Timeout for upstream requests and receipt waits.
	Timeout time.Duration

	// MaxRetries for failed Bitquery requests.
	MaxRetries int

	// JournalPath is the bbolt file recording executed trades.
	JournalPath string
}

// Load reads configuration from the environment. A .env file is honored when
// present, matching how the server is run during development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BitqueryURL:      getenv("BITQUERY_URL", DefaultBitqueryURL),
		BitqueryToken:    os.Getenv("BITQUERY_TOKEN"),
		RPCURL:           getenv("BSC_RPC_URL", DefaultRPCURL),
		WalletPrivateKey: os.Getenv("WALLET_PRIVATE_KEY"),
		MetricsAddr:      os.Getenv("METRICS_ADDR"),
		Timeout:          DefaultTimeout,
		MaxRetries:       DefaultMaxRetries,
		JournalPath:      getenv("JOURNAL_PATH", DefaultJournalPath),
	}

	if t := os.Getenv("TRADER_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if r := os.Getenv("TRADER_MAX_RETRIES"); r != "" {
		if n, err := strconv.Atoi(r); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg, nil
}

// HasBitqueryToken reports whether query tools can authenticate.
func (c *Config) HasBitqueryToken() bool {
	return c.BitqueryToken != ""
}

// HasWallet reports whether trading tools can sign transactions.
func (c *Config) HasWallet() bool {
	return c.WalletPrivateKey != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
