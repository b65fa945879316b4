package trading

// GetWalletBalanceArgs contains parameters for the wallet balance lookup.
type GetWalletBalanceArgs struct {
	TokenAddress string `json:"token_address,omitempty" jsonschema_description:"Optional BSC token contract address to include a token balance"`
}

// TokenBalance describes the wallet's position in one token.
type TokenBalance struct {
	Address         string `json:"address"`
	Symbol          string `json:"symbol"`
	Decimals        uint8  `json:"decimals"`
	Balance         string `json:"balance"`
	RawBalance      string `json:"raw_balance"`
	RouterAllowance string `json:"router_allowance"`
}

// GetWalletBalanceResult is the result of the wallet balance lookup.
type GetWalletBalanceResult struct {
	Wallet     string        `json:"wallet"`
	BNBBalance string        `json:"bnb_balance"`
	Token      *TokenBalance `json:"token,omitempty"`
	TokenError string        `json:"token_error,omitempty"`
}

// GetSwapQuoteArgs contains parameters for a BNB-to-token quote.
type GetSwapQuoteArgs struct {
	TokenAddress string  `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
	AmountBNB    float64 `json:"amount_bnb" jsonschema:"required" jsonschema_description:"BNB amount to quote"`
}

// GetSwapQuoteResult is the result of a swap quote.
type GetSwapQuoteResult struct {
	InputBNB          float64 `json:"input_bnb"`
	OutputToken       string  `json:"output_token"`
	OutputRaw         string  `json:"output_raw"`
	Symbol            string  `json:"symbol"`
	Decimals          uint8   `json:"decimals"`
	EffectivePriceBNB string  `json:"effective_price_bnb"`
}

// BuyTokenArgs contains parameters for buying a token with BNB.
type BuyTokenArgs struct {
	TokenAddress string  `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
	AmountBNB    float64 `json:"amount_bnb" jsonschema:"required" jsonschema_description:"BNB amount to spend"`
	SlippagePct  float64 `json:"slippage_pct,omitempty" jsonschema_description:"Maximum slippage percent (default 10, max 50)"`
}

// BuyTokenResult is the result of a buy swap.
type BuyTokenResult struct {
	Status       string  `json:"status"`
	TxHash       string  `json:"tx_hash"`
	GasUsed      uint64  `json:"gas_used"`
	Block        uint64  `json:"block"`
	AmountBNB    float64 `json:"amount_bnb"`
	MinTokensOut string  `json:"min_tokens_out"`
}

// SellTokenArgs contains parameters for selling a token for BNB.
type SellTokenArgs struct {
	TokenAddress string  `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
	TokenAmount  float64 `json:"token_amount" jsonschema:"required" jsonschema_description:"Token amount to sell (human units)"`
	SlippagePct  float64 `json:"slippage_pct,omitempty" jsonschema_description:"Maximum slippage percent (default 10, max 50)"`
}

// SellTokenResult is the result of a sell swap.
type SellTokenResult struct {
	Status     string `json:"status"`
	TxHash     string `json:"tx_hash"`
	GasUsed    uint64 `json:"gas_used"`
	Block      uint64 `json:"block"`
	TokensSold string `json:"tokens_sold"`
	MinBNBOut  string `json:"min_bnb_out"`
}

// ApproveTokenArgs contains parameters for approving the router.
type ApproveTokenArgs struct {
	TokenAddress string `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
}

// ApproveTokenResult is the result of an approval.
type ApproveTokenResult struct {
	Status  string `json:"status"`
	TxHash  string `json:"tx_hash"`
	Token   string `json:"token"`
	Spender string `json:"spender"`
}

// GetTradeHistoryArgs contains parameters for listing journaled trades.
type GetTradeHistoryArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum entries to return (default 20)"`
}

// TradeRecord is one journaled swap or approval.
type TradeRecord struct {
	Time         string `json:"time"`
	Direction    string `json:"direction"`
	TokenAddress string `json:"token_address"`
	AmountIn     string `json:"amount_in"`
	MinOut       string `json:"min_out,omitempty"`
	TxHash       string `json:"tx_hash"`
	Status       string `json:"status"`
	GasUsed      uint64 `json:"gas_used"`
	Block        uint64 `json:"block,omitempty"`
}

// GetTradeHistoryResult is the result of the trade history lookup.
type GetTradeHistoryResult struct {
	Trades       []TradeRecord `json:"trades"`
	TotalResults int           `json:"total_results"`
}
