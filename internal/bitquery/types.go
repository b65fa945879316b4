package bitquery

// Response shapes for the Bitquery v2 EVM schema. Aggregate fields (count,
// sum, minimum, maximum) come back as JSON strings; Price fields are floats.
// The schema is external and these types mirror it field for field.

type currency struct {
	Name          string `json:"Name"`
	Symbol        string `json:"Symbol"`
	SmartContract string `json:"SmartContract"`
}

type dex struct {
	ProtocolName  string `json:"ProtocolName"`
	SmartContract string `json:"SmartContract"`
}

// tokenStatsResponse is returned by the list_tokens and token_info queries.
type tokenStatsResponse struct {
	EVM struct {
		DEXTradeByTokens []tokenStatsRow `json:"DEXTradeByTokens"`
	} `json:"EVM"`
}

type tokenStatsRow struct {
	Trade struct {
		Currency currency `json:"Currency"`
		Dex      dex      `json:"Dex"`
	} `json:"Trade"`
	Trades     string `json:"trades"`
	Buyers     string `json:"buyers"`
	Sellers    string `json:"sellers"`
	BuyVolume  string `json:"buy_volume"`
	SellVolume string `json:"sell_volume"`
	FirstTrade string `json:"first_trade"`
	LastTrade  string `json:"last_trade"`
}

// tradesResponse is returned by the token_trades query.
type tradesResponse struct {
	EVM struct {
		DEXTrades []tradeRow `json:"DEXTrades"`
	} `json:"EVM"`
}

type tradeRow struct {
	Block struct {
		Time string `json:"Time"`
	} `json:"Block"`
	Transaction struct {
		Hash string `json:"Hash"`
		From string `json:"From"`
	} `json:"Transaction"`
	Trade struct {
		Buy struct {
			Amount      string   `json:"Amount"`
			AmountInUSD string   `json:"AmountInUSD"`
			Price       float64  `json:"Price"`
			PriceInUSD  float64  `json:"PriceInUSD"`
			Currency    currency `json:"Currency"`
			Buyer       string   `json:"Buyer"`
		} `json:"Buy"`
		Sell struct {
			Amount      string   `json:"Amount"`
			AmountInUSD string   `json:"AmountInUSD"`
			Price       float64  `json:"Price"`
			Currency    currency `json:"Currency"`
		} `json:"Sell"`
		Dex dex `json:"Dex"`
	} `json:"Trade"`
}

// priceResponse is returned by the token_price query.
type priceResponse struct {
	EVM struct {
		DEXTradeByTokens []priceRow `json:"DEXTradeByTokens"`
	} `json:"EVM"`
}

type priceRow struct {
	Trade struct {
		Currency   currency `json:"Currency"`
		PriceInUSD float64  `json:"PriceInUSD"`
		Price      float64  `json:"Price"`
		High       float64  `json:"high"`
		Low        float64  `json:"low"`
		Open       float64  `json:"open"`
		Close      float64  `json:"close"`
	} `json:"Trade"`
	Volume    string `json:"volume"`
	Trades    string `json:"trades"`
	LastTrade string `json:"last_trade"`
}

// tradersResponse is returned by the top_traders query.
type tradersResponse struct {
	EVM struct {
		DEXTradeByTokens []traderRow `json:"DEXTradeByTokens"`
	} `json:"EVM"`
}

type traderRow struct {
	Trade struct {
		Buy struct {
			Buyer string `json:"Buyer"`
		} `json:"Buy"`
	} `json:"Trade"`
	Volume     string `json:"volume"`
	BuyVolume  string `json:"buy_volume"`
	SellVolume string `json:"sell_volume"`
	Trades     string `json:"trades"`
}

// pairsResponse is returned by the token_pairs query.
type pairsResponse struct {
	EVM struct {
		DEXTradeByTokens []pairRow `json:"DEXTradeByTokens"`
	} `json:"EVM"`
}

type pairRow struct {
	Trade struct {
		Currency currency `json:"Currency"`
		Side     struct {
			Currency currency `json:"Currency"`
		} `json:"Side"`
		Dex dex `json:"Dex"`
	} `json:"Trade"`
	Trades string `json:"trades"`
	Volume string `json:"volume"`
}
