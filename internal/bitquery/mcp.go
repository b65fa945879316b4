package bitquery

import (
	"context"
	"fmt"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/config"
	apierrors "github.com/pavelkarev/fourmeme-trader-mcp-server/internal/errors"
)

// MCP wrapper methods. Each wraps a Bitquery query with validation, caching,
// and response mapping for MCP integration.

// ListTokensMCP returns recently traded FourMeme tokens ordered by trade count.
func (c *Client) ListTokensMCP(ctx context.Context, args ListTokensArgs) (ListTokensResult, error) {
	limit, err := normalizeLimit(args.Limit, 20)
	if err != nil {
		return ListTokensResult{}, err
	}

	key := fmt.Sprintf("tokens:%d", limit)
	cached, err := c.cachedRun(ctx, key, DefaultCacheTTL, func() (interface{}, error) {
		var resp tokenStatsResponse
		vars := map[string]interface{}{
			"factory": config.FourMemeFactory,
			"limit":   limit,
		}
		if err := c.run(ctx, "list_tokens", listTokensQuery, vars, &resp); err != nil {
			return nil, err
		}

		tokens := make([]TokenSummary, 0, len(resp.EVM.DEXTradeByTokens))
		for _, row := range resp.EVM.DEXTradeByTokens {
			tokens = append(tokens, TokenSummary{
				Name:          row.Trade.Currency.Name,
				Symbol:        row.Trade.Currency.Symbol,
				Address:       row.Trade.Currency.SmartContract,
				Dex:           row.Trade.Dex.ProtocolName,
				Pool:          row.Trade.Dex.SmartContract,
				Trades:        parseCount(row.Trades),
				Buyers:        parseCount(row.Buyers),
				Sellers:       parseCount(row.Sellers),
				BuyVolumeUSD:  row.BuyVolume,
				SellVolumeUSD: row.SellVolume,
				LastTrade:     row.LastTrade,
			})
		}
		return ListTokensResult{Tokens: tokens, TotalResults: len(tokens)}, nil
	})
	if err != nil {
		return ListTokensResult{}, err
	}
	return cached.(ListTokensResult), nil
}

// GetTokenTradesMCP returns the most recent DEX trades for a token.
func (c *Client) GetTokenTradesMCP(ctx context.Context, args GetTokenTradesArgs) (GetTokenTradesResult, error) {
	if err := ValidateTokenAddress(args.TokenAddress); err != nil {
		return GetTokenTradesResult{}, err
	}
	limit, err := normalizeLimit(args.Limit, 20)
	if err != nil {
		return GetTokenTradesResult{}, err
	}

	key := fmt.Sprintf("trades:%s:%d", normalizeAddress(args.TokenAddress), limit)
	cached, err := c.cachedRun(ctx, key, DefaultCacheTTL, func() (interface{}, error) {
		var resp tradesResponse
		vars := map[string]interface{}{
			"token": args.TokenAddress,
			"limit": limit,
		}
		if err := c.run(ctx, "token_trades", tokenTradesQuery, vars, &resp); err != nil {
			return nil, err
		}

		trades := make([]TradeSummary, 0, len(resp.EVM.DEXTrades))
		for _, row := range resp.EVM.DEXTrades {
			trades = append(trades, TradeSummary{
				Time:       row.Block.Time,
				TxHash:     row.Transaction.Hash,
				Maker:      row.Transaction.From,
				BuyToken:   row.Trade.Buy.Currency.Symbol,
				BuyAmount:  row.Trade.Buy.Amount,
				BuyUSD:     row.Trade.Buy.AmountInUSD,
				PriceUSD:   row.Trade.Buy.PriceInUSD,
				SellToken:  row.Trade.Sell.Currency.Symbol,
				SellAmount: row.Trade.Sell.Amount,
				SellUSD:    row.Trade.Sell.AmountInUSD,
				Dex:        row.Trade.Dex.ProtocolName,
				Pool:       row.Trade.Dex.SmartContract,
			})
		}
		return GetTokenTradesResult{Trades: trades, TotalResults: len(trades)}, nil
	})
	if err != nil {
		return GetTokenTradesResult{}, err
	}
	return cached.(GetTokenTradesResult), nil
}

// GetTokenPriceMCP returns the latest price against WBNB plus OHLC aggregates.
func (c *Client) GetTokenPriceMCP(ctx context.Context, args GetTokenPriceArgs) (GetTokenPriceResult, error) {
	if err := ValidateTokenAddress(args.TokenAddress); err != nil {
		return GetTokenPriceResult{}, err
	}

	key := "price:" + normalizeAddress(args.TokenAddress)
	cached, err := c.cachedRun(ctx, key, DefaultCacheTTL, func() (interface{}, error) {
		var resp priceResponse
		vars := map[string]interface{}{
			"token": args.TokenAddress,
			"side":  config.WBNB,
		}
		if err := c.run(ctx, "token_price", tokenPriceQuery, vars, &resp); err != nil {
			return nil, err
		}

		rows := resp.EVM.DEXTradeByTokens
		if len(rows) == 0 {
			return nil, &apierrors.NotFoundError{
				Source:     "bitquery",
				EntityType: "price",
				Identifier: args.TokenAddress,
			}
		}
		row := rows[0]
		return GetTokenPriceResult{
			Name:      row.Trade.Currency.Name,
			Symbol:    row.Trade.Currency.Symbol,
			PriceUSD:  row.Trade.PriceInUSD,
			PriceBNB:  row.Trade.Price,
			High:      row.Trade.High,
			Low:       row.Trade.Low,
			Open:      row.Trade.Open,
			Close:     row.Trade.Close,
			VolumeUSD: row.Volume,
			Trades:    parseCount(row.Trades),
			LastTrade: row.LastTrade,
		}, nil
	})
	if err != nil {
		return GetTokenPriceResult{}, err
	}
	return cached.(GetTokenPriceResult), nil
}

// GetTokenInfoMCP returns aggregate trading stats for a token.
func (c *Client) GetTokenInfoMCP(ctx context.Context, args GetTokenInfoArgs) (GetTokenInfoResult, error) {
	if err := ValidateTokenAddress(args.TokenAddress); err != nil {
		return GetTokenInfoResult{}, err
	}

	key := "info:" + normalizeAddress(args.TokenAddress)
	cached, err := c.cachedRun(ctx, key, aggregateCacheTTL, func() (interface{}, error) {
		var resp tokenStatsResponse
		vars := map[string]interface{}{
			"token": args.TokenAddress,
		}
		if err := c.run(ctx, "token_info", tokenInfoQuery, vars, &resp); err != nil {
			return nil, err
		}

		rows := resp.EVM.DEXTradeByTokens
		if len(rows) == 0 {
			return nil, apierrors.NewNotFoundError("bitquery", args.TokenAddress)
		}
		row := rows[0]
		return GetTokenInfoResult{
			Name:          row.Trade.Currency.Name,
			Symbol:        row.Trade.Currency.Symbol,
			Address:       row.Trade.Currency.SmartContract,
			TotalTrades:   parseCount(row.Trades),
			UniqueBuyers:  parseCount(row.Buyers),
			UniqueSellers: parseCount(row.Sellers),
			BuyVolumeUSD:  row.BuyVolume,
			SellVolumeUSD: row.SellVolume,
			FirstTrade:    row.FirstTrade,
			LastTrade:     row.LastTrade,
		}, nil
	})
	if err != nil {
		return GetTokenInfoResult{}, err
	}
	return cached.(GetTokenInfoResult), nil
}

// GetTopTradersMCP returns the top wallets by USD volume for a token.
func (c *Client) GetTopTradersMCP(ctx context.Context, args GetTopTradersArgs) (GetTopTradersResult, error) {
	if err := ValidateTokenAddress(args.TokenAddress); err != nil {
		return GetTopTradersResult{}, err
	}
	limit, err := normalizeLimit(args.Limit, 10)
	if err != nil {
		return GetTopTradersResult{}, err
	}

	key := fmt.Sprintf("traders:%s:%d", normalizeAddress(args.TokenAddress), limit)
	cached, err := c.cachedRun(ctx, key, aggregateCacheTTL, func() (interface{}, error) {
		var resp tradersResponse
		vars := map[string]interface{}{
			"token": args.TokenAddress,
			"limit": limit,
		}
		if err := c.run(ctx, "top_traders", topTradersQuery, vars, &resp); err != nil {
			return nil, err
		}

		traders := make([]TraderSummary, 0, len(resp.EVM.DEXTradeByTokens))
		for _, row := range resp.EVM.DEXTradeByTokens {
			traders = append(traders, TraderSummary{
				Wallet:         row.Trade.Buy.Buyer,
				TotalVolumeUSD: row.Volume,
				BuyVolumeUSD:   row.BuyVolume,
				SellVolumeUSD:  row.SellVolume,
				Trades:         parseCount(row.Trades),
			})
		}
		return GetTopTradersResult{Traders: traders, TotalResults: len(traders)}, nil
	})
	if err != nil {
		return GetTopTradersResult{}, err
	}
	return cached.(GetTopTradersResult), nil
}

// GetTokenPairsMCP returns the trading pairs and pools for a token.
func (c *Client) GetTokenPairsMCP(ctx context.Context, args GetTokenPairsArgs) (GetTokenPairsResult, error) {
	if err := ValidateTokenAddress(args.TokenAddress); err != nil {
		return GetTokenPairsResult{}, err
	}

	key := "pairs:" + normalizeAddress(args.TokenAddress)
	cached, err := c.cachedRun(ctx, key, aggregateCacheTTL, func() (interface{}, error) {
		var resp pairsResponse
		vars := map[string]interface{}{
			"token": args.TokenAddress,
		}
		if err := c.run(ctx, "token_pairs", tokenPairsQuery, vars, &resp); err != nil {
			return nil, err
		}

		pairs := make([]PairSummary, 0, len(resp.EVM.DEXTradeByTokens))
		for _, row := range resp.EVM.DEXTradeByTokens {
			pairs = append(pairs, PairSummary{
				TokenSymbol: row.Trade.Currency.Symbol,
				PairSymbol:  row.Trade.Side.Currency.Symbol,
				PairName:    row.Trade.Side.Currency.Name,
				PairAddress: row.Trade.Side.Currency.SmartContract,
				Dex:         row.Trade.Dex.ProtocolName,
				Pool:        row.Trade.Dex.SmartContract,
				Trades:      parseCount(row.Trades),
				VolumeUSD:   row.Volume,
			})
		}
		return GetTokenPairsResult{Pairs: pairs, TotalResults: len(pairs)}, nil
	})
	if err != nil {
		return GetTokenPairsResult{}, err
	}
	return cached.(GetTokenPairsResult), nil
}
