package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/bitquery"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/trading"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/metrics"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/tracing"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	bitqueryClient *bitquery.Client
	tradingClient  *trading.Client
	logger         *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(bitqueryClient *bitquery.Client, tradingClient *trading.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		bitqueryClient: bitqueryClient,
		tradingClient:  tradingClient,
		logger:         logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	// Analytics tools
	case "ListTokens":
		register(h, server, tool, spec, h.bitqueryClient.ListTokensMCP)
	case "GetTokenTrades":
		register(h, server, tool, spec, h.bitqueryClient.GetTokenTradesMCP)
	case "GetTokenPrice":
		register(h, server, tool, spec, h.bitqueryClient.GetTokenPriceMCP)
	case "GetTokenInfo":
		register(h, server, tool, spec, h.bitqueryClient.GetTokenInfoMCP)
	case "GetTopTraders":
		register(h, server, tool, spec, h.bitqueryClient.GetTopTradersMCP)
	case "GetTokenPairs":
		register(h, server, tool, spec, h.bitqueryClient.GetTokenPairsMCP)

	// Wallet tools
	case "GetWalletBalance":
		register(h, server, tool, spec, h.tradingClient.GetWalletBalanceMCP)
	case "GetSwapQuote":
		register(h, server, tool, spec, h.tradingClient.GetSwapQuoteMCP)
	case "GetTradeHistory":
		register(h, server, tool, spec, h.tradingClient.GetTradeHistoryMCP)

	// Swap tools
	case "BuyToken":
		register(h, server, tool, spec, h.tradingClient.BuyTokenMCP)
	case "SellToken":
		register(h, server, tool, spec, h.tradingClient.SellTokenMCP)
	case "ApproveToken":
		register(h, server, tool, spec, h.tradingClient.ApproveTokenMCP)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case bitquery.ListTokensArgs:
		attrs = append(attrs, "limit", a.Limit)
	case bitquery.GetTokenTradesArgs:
		attrs = append(attrs, "token", a.TokenAddress)
	case bitquery.GetTokenPriceArgs:
		attrs = append(attrs, "token", a.TokenAddress)
	case bitquery.GetTokenInfoArgs:
		attrs = append(attrs, "token", a.TokenAddress)
	case bitquery.GetTopTradersArgs:
		attrs = append(attrs, "token", a.TokenAddress)
	case bitquery.GetTokenPairsArgs:
		attrs = append(attrs, "token", a.TokenAddress)
	case trading.GetWalletBalanceArgs:
		attrs = append(attrs, "token", a.TokenAddress)
	case trading.GetSwapQuoteArgs:
		attrs = append(attrs, "token", a.TokenAddress, "amount_bnb", a.AmountBNB)
	case trading.BuyTokenArgs:
		attrs = append(attrs, "token", a.TokenAddress, "amount_bnb", a.AmountBNB, "slippage_pct", a.SlippagePct)
	case trading.SellTokenArgs:
		attrs = append(attrs, "token", a.TokenAddress, "token_amount", a.TokenAmount, "slippage_pct", a.SlippagePct)
	case trading.ApproveTokenArgs:
		attrs = append(attrs, "token", a.TokenAddress)
	case trading.GetTradeHistoryArgs:
		attrs = append(attrs, "limit", a.Limit)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case bitquery.ListTokensResult:
		attrs = append(attrs, "results_count", r.TotalResults)
	case bitquery.GetTokenTradesResult:
		attrs = append(attrs, "results_count", r.TotalResults)
	case bitquery.GetTokenPriceResult:
		attrs = append(attrs, "price_usd", r.PriceUSD)
	case bitquery.GetTokenInfoResult:
		attrs = append(attrs, "total_trades", r.TotalTrades)
	case bitquery.GetTopTradersResult:
		attrs = append(attrs, "results_count", r.TotalResults)
	case bitquery.GetTokenPairsResult:
		attrs = append(attrs, "results_count", r.TotalResults)
	case trading.BuyTokenResult:
		attrs = append(attrs, "tx_hash", r.TxHash, "status", r.Status, "gas_used", r.GasUsed)
	case trading.SellTokenResult:
		attrs = append(attrs, "tx_hash", r.TxHash, "status", r.Status, "gas_used", r.GasUsed)
	case trading.ApproveTokenResult:
		attrs = append(attrs, "tx_hash", r.TxHash, "status", r.Status)
	case trading.GetTradeHistoryResult:
		attrs = append(attrs, "results_count", r.TotalResults)
	}

	h.logger.Info("Tool executed", attrs...)
}
