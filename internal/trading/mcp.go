package trading

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/config"
	apierrors "github.com/pavelkarev/fourmeme-trader-mcp-server/internal/errors"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/journal"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/metrics"
)

// MCP wrapper methods for the trading tools.

// GetWalletBalanceMCP returns the configured wallet's BNB balance, plus a
// token balance and router allowance when a token address is given.
func (c *Client) GetWalletBalanceMCP(ctx context.Context, args GetWalletBalanceArgs) (GetWalletBalanceResult, error) {
	if !c.HasWallet() {
		return GetWalletBalanceResult{}, &apierrors.WalletNotConfiguredError{Tool: "trader_get_wallet_balance"}
	}

	bnb, err := c.getBNBBalance(ctx, c.wallet)
	if err != nil {
		return GetWalletBalanceResult{}, err
	}
	result := GetWalletBalanceResult{
		Wallet:     c.wallet.Hex(),
		BNBBalance: weiToBNB(bnb),
	}

	if args.TokenAddress == "" {
		return result, nil
	}

	token, err := validateTokenAddress(args.TokenAddress)
	if err != nil {
		return GetWalletBalanceResult{}, err
	}

	// A bad token contract should not hide the BNB balance; report the
	// lookup failure alongside it.
	tb, err := c.lookupTokenBalance(ctx, token)
	if err != nil {
		result.TokenError = err.Error()
		return result, nil
	}
	result.Token = &tb
	return result, nil
}

func (c *Client) lookupTokenBalance(ctx context.Context, token common.Address) (TokenBalance, error) {
	meta, err := c.getTokenMeta(ctx, token)
	if err != nil {
		return TokenBalance{}, err
	}
	raw, err := c.getTokenBalance(ctx, token, c.wallet)
	if err != nil {
		return TokenBalance{}, err
	}
	allowance, err := c.getRouterAllowance(ctx, token, c.wallet)
	if err != nil {
		return TokenBalance{}, err
	}
	return TokenBalance{
		Address:         token.Hex(),
		Symbol:          meta.Symbol,
		Decimals:        meta.Decimals,
		Balance:         rawToDecimal(raw, meta.Decimals),
		RawBalance:      raw.String(),
		RouterAllowance: rawToDecimal(allowance, meta.Decimals),
	}, nil
}

// GetSwapQuoteMCP quotes a BNB-to-token swap without touching the wallet.
func (c *Client) GetSwapQuoteMCP(ctx context.Context, args GetSwapQuoteArgs) (GetSwapQuoteResult, error) {
	token, err := validateTokenAddress(args.TokenAddress)
	if err != nil {
		return GetSwapQuoteResult{}, err
	}
	if err := validateAmount("amount_bnb", args.AmountBNB); err != nil {
		return GetSwapQuoteResult{}, err
	}

	amountIn := bnbToWei(args.AmountBNB)
	path := []common.Address{common.HexToAddress(config.WBNB), token}
	outRaw, err := c.getAmountsOut(ctx, amountIn, path)
	if err != nil {
		return GetSwapQuoteResult{}, err
	}
	meta, err := c.getTokenMeta(ctx, token)
	if err != nil {
		return GetSwapQuoteResult{}, err
	}

	result := GetSwapQuoteResult{
		InputBNB:    args.AmountBNB,
		OutputToken: rawToDecimal(outRaw, meta.Decimals),
		OutputRaw:   outRaw.String(),
		Symbol:      meta.Symbol,
		Decimals:    meta.Decimals,
	}
	result.EffectivePriceBNB = effectivePrice(args.AmountBNB, outRaw, meta.Decimals)
	return result, nil
}

// effectivePrice is BNB spent per token received, or "N/A" for zero output.
func effectivePrice(amountBNB float64, outRaw *big.Int, decimals uint8) string {
	if outRaw.Sign() <= 0 {
		return "N/A"
	}
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	tokens := new(big.Float).Quo(new(big.Float).SetInt(outRaw), scale)
	price := new(big.Float).Quo(big.NewFloat(amountBNB), tokens)
	return price.Text('g', 10)
}

// BuyTokenMCP buys a token with BNB via the router's fee-on-transfer entry
// point.
func (c *Client) BuyTokenMCP(ctx context.Context, args BuyTokenArgs) (BuyTokenResult, error) {
	if !c.HasWallet() {
		return BuyTokenResult{}, &apierrors.WalletNotConfiguredError{Tool: "trader_buy_token"}
	}
	token, err := validateTokenAddress(args.TokenAddress)
	if err != nil {
		return BuyTokenResult{}, err
	}
	if err := validateAmount("amount_bnb", args.AmountBNB); err != nil {
		return BuyTokenResult{}, err
	}
	slippage, err := normalizeSlippage(args.SlippagePct)
	if err != nil {
		return BuyTokenResult{}, err
	}

	amountIn := bnbToWei(args.AmountBNB)
	path := []common.Address{common.HexToAddress(config.WBNB), token}
	expectedOut, err := c.getAmountsOut(ctx, amountIn, path)
	if err != nil {
		return BuyTokenResult{}, err
	}
	minOut := applySlippage(expectedOut, slippage)
	deadline := big.NewInt(time.Now().Add(deadlineWindow).Unix())

	data, err := c.router.Pack("swapExactETHForTokensSupportingFeeOnTransferTokens",
		minOut, path, c.wallet, deadline)
	if err != nil {
		return BuyTokenResult{}, fmt.Errorf("pack buy swap: %w", err)
	}

	receipt, txHash, err := c.sendAndWait(ctx, common.HexToAddress(config.PancakeRouterV2), amountIn, swapGasLimit, data)
	if err != nil {
		metrics.RecordSwap("buy", false, 0)
		return BuyTokenResult{}, err
	}

	status := "success"
	if receipt.Status != 1 {
		status = "failed"
	}
	metrics.RecordSwap("buy", receipt.Status == 1, receipt.GasUsed)
	c.invalidateWalletState()
	c.recordTrade(journal.Entry{
		Direction:    "buy",
		TokenAddress: token.Hex(),
		AmountIn:     weiToBNB(amountIn),
		MinOut:       minOut.String(),
		TxHash:       txHash.Hex(),
		Status:       status,
		GasUsed:      receipt.GasUsed,
		Block:        receipt.BlockNumber.Uint64(),
	})

	return BuyTokenResult{
		Status:       status,
		TxHash:       txHash.Hex(),
		GasUsed:      receipt.GasUsed,
		Block:        receipt.BlockNumber.Uint64(),
		AmountBNB:    args.AmountBNB,
		MinTokensOut: minOut.String(),
	}, nil
}

// SellTokenMCP sells a token for BNB. The router must already hold an
// allowance; callers approve first via the approval tool.
func (c *Client) SellTokenMCP(ctx context.Context, args SellTokenArgs) (SellTokenResult, error) {
	if !c.HasWallet() {
		return SellTokenResult{}, &apierrors.WalletNotConfiguredError{Tool: "trader_sell_token"}
	}
	token, err := validateTokenAddress(args.TokenAddress)
	if err != nil {
		return SellTokenResult{}, err
	}
	if err := validateAmount("token_amount", args.TokenAmount); err != nil {
		return SellTokenResult{}, err
	}
	slippage, err := normalizeSlippage(args.SlippagePct)
	if err != nil {
		return SellTokenResult{}, err
	}

	meta, err := c.getTokenMeta(ctx, token)
	if err != nil {
		return SellTokenResult{}, err
	}
	amountIn := tokensToRaw(args.TokenAmount, meta.Decimals)

	path := []common.Address{token, common.HexToAddress(config.WBNB)}
	expectedOut, err := c.getAmountsOut(ctx, amountIn, path)
	if err != nil {
		return SellTokenResult{}, err
	}
	minOut := applySlippage(expectedOut, slippage)
	deadline := big.NewInt(time.Now().Add(deadlineWindow).Unix())

	data, err := c.router.Pack("swapExactTokensForETHSupportingFeeOnTransferTokens",
		amountIn, minOut, path, c.wallet, deadline)
	if err != nil {
		return SellTokenResult{}, fmt.Errorf("pack sell swap: %w", err)
	}

	receipt, txHash, err := c.sendAndWait(ctx, common.HexToAddress(config.PancakeRouterV2), big.NewInt(0), swapGasLimit, data)
	if err != nil {
		metrics.RecordSwap("sell", false, 0)
		return SellTokenResult{}, err
	}

	status := "success"
	if receipt.Status != 1 {
		status = "failed"
	}
	metrics.RecordSwap("sell", receipt.Status == 1, receipt.GasUsed)
	c.invalidateWalletState()
	c.recordTrade(journal.Entry{
		Direction:    "sell",
		TokenAddress: token.Hex(),
		AmountIn:     rawToDecimal(amountIn, meta.Decimals),
		MinOut:       weiToBNB(minOut),
		TxHash:       txHash.Hex(),
		Status:       status,
		GasUsed:      receipt.GasUsed,
		Block:        receipt.BlockNumber.Uint64(),
	})

	return SellTokenResult{
		Status:     status,
		TxHash:     txHash.Hex(),
		GasUsed:    receipt.GasUsed,
		Block:      receipt.BlockNumber.Uint64(),
		TokensSold: rawToDecimal(amountIn, meta.Decimals),
		MinBNBOut:  weiToBNB(minOut),
	}, nil
}

// ApproveTokenMCP grants the router an unlimited allowance on a token.
func (c *Client) ApproveTokenMCP(ctx context.Context, args ApproveTokenArgs) (ApproveTokenResult, error) {
	if !c.HasWallet() {
		return ApproveTokenResult{}, &apierrors.WalletNotConfiguredError{Tool: "trader_approve_token"}
	}
	token, err := validateTokenAddress(args.TokenAddress)
	if err != nil {
		return ApproveTokenResult{}, err
	}

	router := common.HexToAddress(config.PancakeRouterV2)
	data, err := c.erc20.Pack("approve", router, maxUint256)
	if err != nil {
		return ApproveTokenResult{}, fmt.Errorf("pack approve: %w", err)
	}

	receipt, txHash, err := c.sendAndWait(ctx, token, big.NewInt(0), approveGasLimit, data)
	if err != nil {
		metrics.RecordSwap("approve", false, 0)
		return ApproveTokenResult{}, err
	}

	status := "approved"
	if receipt.Status != 1 {
		status = "failed"
	}
	metrics.RecordSwap("approve", receipt.Status == 1, receipt.GasUsed)
	c.invalidateWalletState()
	c.recordTrade(journal.Entry{
		Direction:    "approve",
		TokenAddress: token.Hex(),
		TxHash:       txHash.Hex(),
		Status:       status,
		GasUsed:      receipt.GasUsed,
		Block:        receipt.BlockNumber.Uint64(),
	})

	return ApproveTokenResult{
		Status:  status,
		TxHash:  txHash.Hex(),
		Token:   args.TokenAddress,
		Spender: config.PancakeRouterV2,
	}, nil
}

// GetTradeHistoryMCP lists journaled swaps, newest first.
func (c *Client) GetTradeHistoryMCP(ctx context.Context, args GetTradeHistoryArgs) (GetTradeHistoryResult, error) {
	if c.journal == nil {
		return GetTradeHistoryResult{}, fmt.Errorf("trade journal not configured")
	}
	limit := args.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 100 {
		return GetTradeHistoryResult{}, apierrors.NewValidationError("limit", fmt.Sprintf("%d", limit), "must be between 1 and 100")
	}

	entries, err := c.journal.List(limit)
	if err != nil {
		return GetTradeHistoryResult{}, fmt.Errorf("read trade journal: %w", err)
	}

	trades := make([]TradeRecord, 0, len(entries))
	for _, e := range entries {
		trades = append(trades, TradeRecord{
			Time:         e.Time.UTC().Format(time.RFC3339),
			Direction:    e.Direction,
			TokenAddress: e.TokenAddress,
			AmountIn:     e.AmountIn,
			MinOut:       e.MinOut,
			TxHash:       e.TxHash,
			Status:       e.Status,
			GasUsed:      e.GasUsed,
			Block:        e.Block,
		})
	}
	return GetTradeHistoryResult{Trades: trades, TotalResults: len(trades)}, nil
}
