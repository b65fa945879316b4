// FourMeme Trader MCP Server - a Model Context Protocol server for trading
// FourMeme tokens on BSC. Analytics tools query the Bitquery v2 API; trading
// tools submit PancakeSwap V2 swaps from a locally held wallet.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/base"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/bitquery"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/config"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/journal"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/trading"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/tools"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/tracing"
)

const (
	ServerName    = "fourmeme-trader-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `FourMeme Trader MCP Server provides market analytics and swap execution for FourMeme meme tokens on BNB Smart Chain.

Analytics tools (Bitquery, read-only):
- fourmeme_list_tokens: Discover recently traded FourMeme tokens
- fourmeme_get_token_trades: Recent individual DEX trades for a token
- fourmeme_get_token_price: Latest price with OHLC aggregates
- fourmeme_get_token_info: Aggregate trading statistics
- fourmeme_get_top_traders: Highest-volume wallets for a token
- fourmeme_get_token_pairs: Pools and pairs where a token trades

Wallet tools (BSC RPC, read-only):
- trader_get_wallet_balance: BNB and token balances for the configured wallet
- trader_get_swap_quote: Quote a BNB-to-token swap without trading
- trader_get_trade_history: Swaps previously submitted by this server

Swap tools (spend real funds, require WALLET_PRIVATE_KEY):
- trader_buy_token: Buy a token with BNB via PancakeSwap V2
- trader_sell_token: Sell a token for BNB via PancakeSwap V2
- trader_approve_token: Grant the router an allowance before selling

Configure via environment variables:
- BITQUERY_TOKEN: Bitquery API bearer token (required for analytics)
- BSC_RPC_URL: BSC JSON-RPC endpoint (default public dataseed)
- WALLET_PRIVATE_KEY: Hex private key for the trading wallet (optional)
- JOURNAL_PATH: Trade journal file (default fourmeme-trades.db)`

func main() {
	// Log to stderr; stdout carries the MCP protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.HasBitqueryToken() {
		logger.Warn("BITQUERY_TOKEN not set, analytics tools will be rejected upstream")
	}
	if !cfg.HasWallet() {
		logger.Info("WALLET_PRIVATE_KEY not set, trading tools disabled")
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Tracing setup failed, continuing without tracing", "error", err)
	} else {
		defer shutdownTracing(ctx)
	}

	tradeJournal, err := journal.Open(cfg.JournalPath)
	if err != nil {
		log.Fatalf("Failed to open trade journal: %v", err)
	}
	defer tradeJournal.Close()

	bitqueryClient := bitquery.NewClient(cfg.BitqueryURL, cfg.BitqueryToken,
		bitquery.WithLogger(logger),
		bitquery.WithHTTPClient(base.NewHTTPClient(cfg.Timeout)))
	bitqueryClient.SetMaxRetries(cfg.MaxRetries)
	defer bitqueryClient.Close()

	tradingClient, err := trading.NewClient(cfg.RPCURL, cfg.WalletPrivateKey,
		trading.WithJournal(tradeJournal),
		trading.WithBaseOptions(base.WithLogger(logger)))
	if err != nil {
		log.Fatalf("Failed to create trading client: %v", err)
	}
	defer tradingClient.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	registry := tools.NewHandlerRegistry(bitqueryClient, tradingClient, logger)
	registry.RegisterAll(server)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	logger.Info("Starting FourMeme Trader MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"rpc_url", cfg.RPCURL,
		"wallet_configured", cfg.HasWallet(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// serveMetrics exposes Prometheus metrics on a side listener.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics listener failed", "error", err)
	}
}
