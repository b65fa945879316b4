package bitquery

// ListTokensArgs contains parameters for listing recently traded FourMeme tokens.
type ListTokensArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum tokens to return (default 20, max 100)"`
}

// ListTokensResult is the result of listing FourMeme tokens.
type ListTokensResult struct {
	Tokens       []TokenSummary `json:"tokens"`
	TotalResults int            `json:"total_results"`
}

// TokenSummary describes one FourMeme token's trading activity.
type TokenSummary struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Address       string `json:"address"`
	Dex           string `json:"dex"`
	Pool          string `json:"pool"`
	Trades        int64  `json:"trades"`
	Buyers        int64  `json:"buyers"`
	Sellers       int64  `json:"sellers"`
	BuyVolumeUSD  string `json:"buy_volume_usd"`
	SellVolumeUSD string `json:"sell_volume_usd"`
	LastTrade     string `json:"last_trade"`
}

// GetTokenTradesArgs contains parameters for fetching recent trades.
type GetTokenTradesArgs struct {
	TokenAddress string `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
	Limit        int    `json:"limit,omitempty" jsonschema_description:"Maximum trades to return (default 20, max 100)"`
}

// GetTokenTradesResult is the result of fetching recent trades.
type GetTokenTradesResult struct {
	Trades       []TradeSummary `json:"trades"`
	TotalResults int            `json:"total_results"`
}

// TradeSummary describes one DEX trade.
type TradeSummary struct {
	Time       string  `json:"time"`
	TxHash     string  `json:"tx_hash"`
	Maker      string  `json:"maker"`
	BuyToken   string  `json:"buy_token"`
	BuyAmount  string  `json:"buy_amount"`
	BuyUSD     string  `json:"buy_usd"`
	PriceUSD   float64 `json:"price_usd"`
	SellToken  string  `json:"sell_token"`
	SellAmount string  `json:"sell_amount"`
	SellUSD    string  `json:"sell_usd"`
	Dex        string  `json:"dex"`
	Pool       string  `json:"pool"`
}

// GetTokenPriceArgs contains parameters for the price lookup.
type GetTokenPriceArgs struct {
	TokenAddress string `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
}

// GetTokenPriceResult holds the latest price and OHLC aggregates for a token
// against WBNB.
type GetTokenPriceResult struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	PriceUSD  float64 `json:"price_usd"`
	PriceBNB  float64 `json:"price_bnb"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Open      float64 `json:"open"`
	Close     float64 `json:"close"`
	VolumeUSD string  `json:"volume_usd"`
	Trades    int64   `json:"trades"`
	LastTrade string  `json:"last_trade"`
}

// GetTokenInfoArgs contains parameters for the token info lookup.
type GetTokenInfoArgs struct {
	TokenAddress string `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
}

// GetTokenInfoResult holds aggregate trading stats for a token.
type GetTokenInfoResult struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Address       string `json:"address"`
	TotalTrades   int64  `json:"total_trades"`
	UniqueBuyers  int64  `json:"unique_buyers"`
	UniqueSellers int64  `json:"unique_sellers"`
	BuyVolumeUSD  string `json:"buy_volume_usd"`
	SellVolumeUSD string `json:"sell_volume_usd"`
	FirstTrade    string `json:"first_trade"`
	LastTrade     string `json:"last_trade"`
}

// GetTopTradersArgs contains parameters for the top traders lookup.
type GetTopTradersArgs struct {
	TokenAddress string `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
	Limit        int    `json:"limit,omitempty" jsonschema_description:"Maximum traders to return (default 10, max 100)"`
}

// GetTopTradersResult is the result of the top traders lookup.
type GetTopTradersResult struct {
	Traders      []TraderSummary `json:"traders"`
	TotalResults int             `json:"total_results"`
}

// TraderSummary describes one wallet's activity in a token.
type TraderSummary struct {
	Wallet         string `json:"wallet"`
	TotalVolumeUSD string `json:"total_volume_usd"`
	BuyVolumeUSD   string `json:"buy_volume_usd"`
	SellVolumeUSD  string `json:"sell_volume_usd"`
	Trades         int64  `json:"trades"`
}

// GetTokenPairsArgs contains parameters for the pairs lookup.
type GetTokenPairsArgs struct {
	TokenAddress string `json:"token_address" jsonschema:"required" jsonschema_description:"BSC token contract address (0x...)"`
}

// GetTokenPairsResult is the result of the pairs lookup.
type GetTokenPairsResult struct {
	Pairs        []PairSummary `json:"pairs"`
	TotalResults int           `json:"total_results"`
}

// PairSummary describes one trading pair/pool for a token.
type PairSummary struct {
	TokenSymbol string `json:"token_symbol"`
	PairSymbol  string `json:"pair_symbol"`
	PairName    string `json:"pair_name"`
	PairAddress string `json:"pair_address"`
	Dex         string `json:"dex"`
	Pool        string `json:"pool"`
	Trades      int64  `json:"trades"`
	VolumeUSD   string `json:"volume_usd"`
}
