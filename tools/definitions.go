package tools

// AllTools contains all tool specifications for the FourMeme trader MCP
// server. Tools are organized by category for easier maintenance.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// ANALYTICS TOOLS (Bitquery)
	// ==========================================================================
	{
		Name:     "fourmeme_list_tokens",
		Method:   "ListTokens",
		Title:    "List FourMeme Tokens",
		Category: "analytics",
		Description: `List recently traded FourMeme tokens on BSC, ordered by trade count.

USE WHEN: User asks "what's trading on FourMeme", "show me active meme tokens", "what's hot right now", or wants to discover tokens.

NOT FOR: Stats on a specific known token (use fourmeme_get_token_info instead).

PARAMETERS:
- limit: Max tokens to return (default 20, max 100)

RETURNS: Token names, symbols, contract addresses, trade counts, buyer/seller counts, and buy/sell volume in USD.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "fourmeme_get_token_trades",
		Method:   "GetTokenTrades",
		Title:    "Get Token Trades",
		Category: "analytics",
		Description: `Get the most recent individual DEX trades for a specific token.

USE WHEN: User asks "show recent trades for X", "who's buying X", "what's the trade flow on X".

NOT FOR: Aggregate stats (use fourmeme_get_token_info) or current price (use fourmeme_get_token_price).

PARAMETERS:
- token_address: BSC token contract address (required)
- limit: Max trades to return (default 20, max 100)

RETURNS: Per-trade timestamps, transaction hashes, maker addresses, buy/sell amounts, and USD prices.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "fourmeme_get_token_price",
		Method:   "GetTokenPrice",
		Title:    "Get Token Price",
		Category: "analytics",
		Description: `Get the latest price of a token against WBNB with OHLC aggregates.

USE WHEN: User asks "what's the price of X", "how much is X worth", "show me X's price action".

NOT FOR: Individual trades (use fourmeme_get_token_trades) or a swap estimate including fees (use trader_get_swap_quote).

PARAMETERS:
- token_address: BSC token contract address (required)

RETURNS: Latest price in USD and BNB, high/low/open/close, volume, and trade count.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "fourmeme_get_token_info",
		Method:   "GetTokenInfo",
		Title:    "Get Token Info",
		Category: "analytics",
		Description: `Get aggregate trading statistics for a specific token.

USE WHEN: User asks "tell me about token X", "how active is X", "is X worth looking at".

NOT FOR: Current price (use fourmeme_get_token_price) or recent trades (use fourmeme_get_token_trades).

PARAMETERS:
- token_address: BSC token contract address (required)

RETURNS: Total trades, unique buyers/sellers, buy/sell volume in USD, and first/last trade timestamps.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "fourmeme_get_top_traders",
		Method:   "GetTopTraders",
		Title:    "Get Top Traders",
		Category: "analytics",
		Description: `Get the highest-volume wallets trading a specific token.

USE WHEN: User asks "who are the whales in X", "top holders trading X", "biggest traders of X".

NOT FOR: Recent trade flow (use fourmeme_get_token_trades).

PARAMETERS:
- token_address: BSC token contract address (required)
- limit: Max traders to return (default 10, max 100)

RETURNS: Wallet addresses with total, buy, and sell volume in USD and trade counts.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "fourmeme_get_token_pairs",
		Method:   "GetTokenPairs",
		Title:    "Get Token Pairs",
		Category: "analytics",
		Description: `Get the trading pairs and liquidity pools where a token trades.

USE WHEN: User asks "where does X trade", "what pools exist for X", "which DEX has X".

NOT FOR: Price or volume stats (use fourmeme_get_token_price or fourmeme_get_token_info).

PARAMETERS:
- token_address: BSC token contract address (required)

RETURNS: Paired token symbols and addresses, DEX protocol names, pool addresses, trade counts, and volume.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},

	// ==========================================================================
	// WALLET TOOLS (read-only chain access)
	// ==========================================================================
	{
		Name:     "trader_get_wallet_balance",
		Method:   "GetWalletBalance",
		Title:    "Get Wallet Balance",
		Category: "wallet",
		Description: `Get the configured wallet's BNB balance, optionally with a token balance.

USE WHEN: User asks "what's my balance", "how much BNB do I have", "how many X do I hold".

NOT FOR: Other wallets' balances (only the configured wallet is supported).

PARAMETERS:
- token_address: Optional token contract to include balance and router allowance for

RETURNS: Wallet address, BNB balance, and (when requested) token balance, symbol, decimals, and PancakeSwap router allowance.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "trader_get_swap_quote",
		Method:   "GetSwapQuote",
		Title:    "Get Swap Quote",
		Category: "wallet",
		Description: `Quote how many tokens a given BNB amount buys via PancakeSwap V2, without trading.

USE WHEN: User asks "how much X would 0.1 BNB get me", "quote a swap", "estimate before buying".

NOT FOR: Executing a trade (use trader_buy_token) or analytics pricing (use fourmeme_get_token_price).

PARAMETERS:
- token_address: BSC token contract address (required)
- amount_bnb: BNB amount to quote (required)

RETURNS: Expected token output, raw output amount, token symbol/decimals, and effective price in BNB per token.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "trader_get_trade_history",
		Method:   "GetTradeHistory",
		Title:    "Get Trade History",
		Category: "wallet",
		Description: `List swaps and approvals previously submitted by this server, newest first.

USE WHEN: User asks "what have I traded", "show my swap history", "did my buy go through earlier".

NOT FOR: On-chain trades made outside this server (use fourmeme_get_token_trades for market activity).

PARAMETERS:
- limit: Max entries to return (default 20)

RETURNS: Journaled entries with direction, token, amounts, transaction hash, status, and gas used.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// SWAP TOOLS (spend funds)
	// ==========================================================================
	{
		Name:     "trader_buy_token",
		Method:   "BuyToken",
		Title:    "Buy Token",
		Category: "swap",
		Description: `Buy a token with BNB via PancakeSwap V2. Spends real funds from the configured wallet.

USE WHEN: User explicitly says "buy X", "swap BNB for X", "ape into X".

NOT FOR: Price checks (use trader_get_swap_quote) or selling (use trader_sell_token).

PARAMETERS:
- token_address: BSC token contract address (required)
- amount_bnb: BNB amount to spend (required)
- slippage_pct: Max slippage percent (default 10, max 50)

RETURNS: Transaction hash, status, gas used, block number, and minimum tokens out.`,
		Destructive: true,
		OpenWorld:   true,
	},
	{
		Name:     "trader_sell_token",
		Method:   "SellToken",
		Title:    "Sell Token",
		Category: "swap",
		Description: `Sell a token for BNB via PancakeSwap V2. Spends real funds from the configured wallet.

USE WHEN: User explicitly says "sell X", "swap X for BNB", "take profit on X".

NOT FOR: Buying (use trader_buy_token). The router needs an allowance first; call trader_approve_token if the sell reverts on allowance.

PARAMETERS:
- token_address: BSC token contract address (required)
- token_amount: Token amount to sell in human units (required)
- slippage_pct: Max slippage percent (default 10, max 50)

RETURNS: Transaction hash, status, gas used, block number, tokens sold, and minimum BNB out.`,
		Destructive: true,
		OpenWorld:   true,
	},
	{
		Name:     "trader_approve_token",
		Method:   "ApproveToken",
		Title:    "Approve Token",
		Category: "swap",
		Description: `Grant the PancakeSwap V2 router an unlimited allowance on a token.

USE WHEN: User says "approve X for trading", or a sell failed due to missing allowance.

NOT FOR: Swapping (use trader_buy_token or trader_sell_token).

PARAMETERS:
- token_address: BSC token contract address (required)

RETURNS: Transaction hash, approval status, token address, and spender (router) address.`,
		Destructive: true,
		Idempotent:  true,
		OpenWorld:   true,
	},
}
