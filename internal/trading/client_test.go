package trading

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/config"
	apierrors "github.com/pavelkarev/fourmeme-trader-mcp-server/internal/errors"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/journal"
)

// Well-known development key, address 0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266.
const testKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testToken = "0x1111111111111111111111111111111111111111"

// fakeBackend implements Backend against canned responses.
type fakeBackend struct {
	router abi.ABI
	erc20  abi.ABI

	bnbBalance   *big.Int
	amountsOut   *big.Int
	tokenBalance *big.Int
	allowance    *big.Int
	symbol       string
	decimals     uint8

	failERC20     bool
	receiptStatus uint64
	gasUsed       uint64
	blockNumber   int64

	sent []*types.Transaction
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	router, err := abi.JSON(strings.NewReader(routerABIJSON))
	if err != nil {
		t.Fatalf("parse router ABI: %v", err)
	}
	erc20, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		t.Fatalf("parse erc20 ABI: %v", err)
	}
	return &fakeBackend{
		router:        router,
		erc20:         erc20,
		bnbBalance:    big.NewInt(0),
		amountsOut:    big.NewInt(0),
		tokenBalance:  big.NewInt(0),
		allowance:     big.NewInt(0),
		symbol:        "MEME",
		decimals:      18,
		receiptStatus: 1,
		gasUsed:       150000,
		blockNumber:   1234,
	}
}

func (f *fakeBackend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return f.bnbBalance, nil
}

func (f *fakeBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	sel := msg.Data[:4]
	if m := f.router.Methods["getAmountsOut"]; bytes.Equal(sel, m.ID) {
		inputs, err := m.Inputs.Unpack(msg.Data[4:])
		if err != nil {
			return nil, err
		}
		amountIn := inputs[0].(*big.Int)
		return m.Outputs.Pack([]*big.Int{amountIn, f.amountsOut})
	}
	if f.failERC20 {
		return nil, errors.New("execution reverted")
	}
	switch {
	case bytes.Equal(sel, f.erc20.Methods["symbol"].ID):
		return f.erc20.Methods["symbol"].Outputs.Pack(f.symbol)
	case bytes.Equal(sel, f.erc20.Methods["decimals"].ID):
		return f.erc20.Methods["decimals"].Outputs.Pack(f.decimals)
	case bytes.Equal(sel, f.erc20.Methods["balanceOf"].ID):
		return f.erc20.Methods["balanceOf"].Outputs.Pack(f.tokenBalance)
	case bytes.Equal(sel, f.erc20.Methods["allowance"].ID):
		return f.erc20.Methods["allowance"].Outputs.Pack(f.allowance)
	}
	return nil, fmt.Errorf("unexpected call selector %x", sel)
}

func (f *fakeBackend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return []byte{1}, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(3000000000), nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return &types.Receipt{
		TxHash:      txHash,
		Status:      f.receiptStatus,
		GasUsed:     f.gasUsed,
		BlockNumber: big.NewInt(f.blockNumber),
	}, nil
}

func newTestClient(t *testing.T, fb *fakeBackend, opts ...Option) *Client {
	t.Helper()
	c, err := newClient(fb, big.NewInt(56), testKeyHex, opts...)
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestWalletAddressDerivation(t *testing.T) {
	c := newTestClient(t, newFakeBackend(t))
	want := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	if got := c.WalletAddress().Hex(); got != want {
		t.Errorf("WalletAddress = %s, want %s", got, want)
	}
	if !c.HasWallet() {
		t.Error("HasWallet = false, want true")
	}
}

func TestNoWalletConfigured(t *testing.T) {
	c, err := newClient(newFakeBackend(t), big.NewInt(56), "")
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	defer c.Close()

	if c.HasWallet() {
		t.Fatal("HasWallet = true with empty key")
	}
	ctx := context.Background()
	if _, err := c.BuyTokenMCP(ctx, BuyTokenArgs{TokenAddress: testToken, AmountBNB: 0.1}); !apierrors.IsWalletNotConfigured(err) {
		t.Errorf("BuyTokenMCP error = %v, want WalletNotConfiguredError", err)
	}
	if _, err := c.SellTokenMCP(ctx, SellTokenArgs{TokenAddress: testToken, TokenAmount: 1}); !apierrors.IsWalletNotConfigured(err) {
		t.Errorf("SellTokenMCP error = %v, want WalletNotConfiguredError", err)
	}
	if _, err := c.ApproveTokenMCP(ctx, ApproveTokenArgs{TokenAddress: testToken}); !apierrors.IsWalletNotConfigured(err) {
		t.Errorf("ApproveTokenMCP error = %v, want WalletNotConfiguredError", err)
	}
	if _, err := c.GetWalletBalanceMCP(ctx, GetWalletBalanceArgs{}); !apierrors.IsWalletNotConfigured(err) {
		t.Errorf("GetWalletBalanceMCP error = %v, want WalletNotConfiguredError", err)
	}
}

func TestBadKeyRejected(t *testing.T) {
	if _, err := newClient(newFakeBackend(t), big.NewInt(56), "not-hex"); err == nil {
		t.Fatal("expected error for malformed private key")
	}
}

func TestGetWalletBalanceMCP(t *testing.T) {
	fb := newFakeBackend(t)
	fb.bnbBalance, _ = new(big.Int).SetString("1500000000000000000", 10)
	c := newTestClient(t, fb)

	result, err := c.GetWalletBalanceMCP(context.Background(), GetWalletBalanceArgs{})
	if err != nil {
		t.Fatalf("GetWalletBalanceMCP: %v", err)
	}
	if result.BNBBalance != "1.5" {
		t.Errorf("BNBBalance = %q, want 1.5", result.BNBBalance)
	}
	if result.Token != nil {
		t.Error("Token set without token_address argument")
	}
}

func TestGetWalletBalanceMCPWithToken(t *testing.T) {
	fb := newFakeBackend(t)
	fb.bnbBalance = bnbToWei(1)
	fb.tokenBalance, _ = new(big.Int).SetString("2500000000000000000", 10)
	fb.allowance = bnbToWei(100)
	c := newTestClient(t, fb)

	result, err := c.GetWalletBalanceMCP(context.Background(), GetWalletBalanceArgs{TokenAddress: testToken})
	if err != nil {
		t.Fatalf("GetWalletBalanceMCP: %v", err)
	}
	if result.Token == nil {
		t.Fatal("expected token balance in result")
	}
	if result.Token.Symbol != "MEME" || result.Token.Decimals != 18 {
		t.Errorf("token meta = %s/%d", result.Token.Symbol, result.Token.Decimals)
	}
	if result.Token.Balance != "2.5" {
		t.Errorf("Balance = %q, want 2.5", result.Token.Balance)
	}
	if result.Token.RawBalance != "2500000000000000000" {
		t.Errorf("RawBalance = %q", result.Token.RawBalance)
	}
	if result.Token.RouterAllowance != "100" {
		t.Errorf("RouterAllowance = %q, want 100", result.Token.RouterAllowance)
	}
}

func TestGetWalletBalanceMCPTokenLookupFails(t *testing.T) {
	fb := newFakeBackend(t)
	fb.bnbBalance = bnbToWei(1)
	fb.failERC20 = true
	c := newTestClient(t, fb)

	result, err := c.GetWalletBalanceMCP(context.Background(), GetWalletBalanceArgs{TokenAddress: testToken})
	if err != nil {
		t.Fatalf("GetWalletBalanceMCP: %v", err)
	}
	if result.BNBBalance != "1" {
		t.Errorf("BNBBalance = %q, want 1", result.BNBBalance)
	}
	if result.TokenError == "" {
		t.Error("expected token_error for reverting token contract")
	}
}

func TestGetSwapQuoteMCP(t *testing.T) {
	fb := newFakeBackend(t)
	fb.amountsOut = tokensToRaw(5000, 18)
	c := newTestClient(t, fb)

	result, err := c.GetSwapQuoteMCP(context.Background(), GetSwapQuoteArgs{
		TokenAddress: testToken,
		AmountBNB:    0.1,
	})
	if err != nil {
		t.Fatalf("GetSwapQuoteMCP: %v", err)
	}
	if result.OutputToken != "5000" {
		t.Errorf("OutputToken = %q, want 5000", result.OutputToken)
	}
	if result.Symbol != "MEME" || result.Decimals != 18 {
		t.Errorf("meta = %s/%d", result.Symbol, result.Decimals)
	}
	if result.EffectivePriceBNB == "N/A" || result.EffectivePriceBNB == "" {
		t.Errorf("EffectivePriceBNB = %q", result.EffectivePriceBNB)
	}
}

func TestGetSwapQuoteMCPZeroOutput(t *testing.T) {
	fb := newFakeBackend(t)
	c := newTestClient(t, fb)

	result, err := c.GetSwapQuoteMCP(context.Background(), GetSwapQuoteArgs{
		TokenAddress: testToken,
		AmountBNB:    0.1,
	})
	if err != nil {
		t.Fatalf("GetSwapQuoteMCP: %v", err)
	}
	if result.EffectivePriceBNB != "N/A" {
		t.Errorf("EffectivePriceBNB = %q, want N/A", result.EffectivePriceBNB)
	}
}

func TestBuyTokenMCP(t *testing.T) {
	fb := newFakeBackend(t)
	fb.amountsOut = big.NewInt(1000000)
	j, err := journal.Open(filepath.Join(t.TempDir(), "trades.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer j.Close()
	c := newTestClient(t, fb, WithJournal(j))

	result, err := c.BuyTokenMCP(context.Background(), BuyTokenArgs{
		TokenAddress: testToken,
		AmountBNB:    0.1,
		SlippagePct:  10,
	})
	if err != nil {
		t.Fatalf("BuyTokenMCP: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("Status = %q", result.Status)
	}
	if result.MinTokensOut != "900000" {
		t.Errorf("MinTokensOut = %q, want 900000", result.MinTokensOut)
	}
	if result.GasUsed != 150000 || result.Block != 1234 {
		t.Errorf("GasUsed/Block = %d/%d", result.GasUsed, result.Block)
	}

	if len(fb.sent) != 1 {
		t.Fatalf("sent %d transactions, want 1", len(fb.sent))
	}
	tx := fb.sent[0]
	if tx.To().Hex() != config.PancakeRouterV2 {
		t.Errorf("tx.To = %s, want router", tx.To().Hex())
	}
	if tx.Value().Cmp(bnbToWei(0.1)) != 0 {
		t.Errorf("tx.Value = %s, want 0.1 BNB in wei", tx.Value())
	}
	if tx.Gas() != swapGasLimit {
		t.Errorf("tx.Gas = %d, want %d", tx.Gas(), swapGasLimit)
	}

	history, err := c.GetTradeHistoryMCP(context.Background(), GetTradeHistoryArgs{})
	if err != nil {
		t.Fatalf("GetTradeHistoryMCP: %v", err)
	}
	if history.TotalResults != 1 || history.Trades[0].Direction != "buy" {
		t.Errorf("history = %+v", history)
	}
	if history.Trades[0].TxHash != result.TxHash {
		t.Errorf("journal tx hash = %s, want %s", history.Trades[0].TxHash, result.TxHash)
	}
}

func TestBuyTokenMCPRevertedReceipt(t *testing.T) {
	fb := newFakeBackend(t)
	fb.amountsOut = big.NewInt(1000000)
	fb.receiptStatus = 0
	c := newTestClient(t, fb)

	result, err := c.BuyTokenMCP(context.Background(), BuyTokenArgs{
		TokenAddress: testToken,
		AmountBNB:    0.1,
	})
	if err != nil {
		t.Fatalf("BuyTokenMCP: %v", err)
	}
	if result.Status != "failed" {
		t.Errorf("Status = %q, want failed", result.Status)
	}
}

func TestSellTokenMCP(t *testing.T) {
	fb := newFakeBackend(t)
	fb.amountsOut = bnbToWei(1)
	c := newTestClient(t, fb)

	result, err := c.SellTokenMCP(context.Background(), SellTokenArgs{
		TokenAddress: testToken,
		TokenAmount:  2.5,
	})
	if err != nil {
		t.Fatalf("SellTokenMCP: %v", err)
	}
	if result.Status != "success" {
		t.Errorf("Status = %q", result.Status)
	}
	if result.TokensSold != "2.5" {
		t.Errorf("TokensSold = %q, want 2.5", result.TokensSold)
	}
	// Default 10% slippage on 1 BNB out.
	if result.MinBNBOut != "0.9" {
		t.Errorf("MinBNBOut = %q, want 0.9", result.MinBNBOut)
	}

	if len(fb.sent) != 1 {
		t.Fatalf("sent %d transactions, want 1", len(fb.sent))
	}
	tx := fb.sent[0]
	if tx.To().Hex() != config.PancakeRouterV2 {
		t.Errorf("tx.To = %s, want router", tx.To().Hex())
	}
	if tx.Value().Sign() != 0 {
		t.Errorf("tx.Value = %s, want 0", tx.Value())
	}
}

func TestApproveTokenMCP(t *testing.T) {
	fb := newFakeBackend(t)
	c := newTestClient(t, fb)

	result, err := c.ApproveTokenMCP(context.Background(), ApproveTokenArgs{TokenAddress: testToken})
	if err != nil {
		t.Fatalf("ApproveTokenMCP: %v", err)
	}
	if result.Status != "approved" {
		t.Errorf("Status = %q, want approved", result.Status)
	}
	if result.Spender != config.PancakeRouterV2 {
		t.Errorf("Spender = %q", result.Spender)
	}

	if len(fb.sent) != 1 {
		t.Fatalf("sent %d transactions, want 1", len(fb.sent))
	}
	tx := fb.sent[0]
	if tx.To().Hex() != common.HexToAddress(testToken).Hex() {
		t.Errorf("tx.To = %s, want token contract", tx.To().Hex())
	}
	if tx.Gas() != approveGasLimit {
		t.Errorf("tx.Gas = %d, want %d", tx.Gas(), approveGasLimit)
	}
}

func TestSwapValidation(t *testing.T) {
	c := newTestClient(t, newFakeBackend(t))
	ctx := context.Background()

	if _, err := c.BuyTokenMCP(ctx, BuyTokenArgs{TokenAddress: "bad", AmountBNB: 0.1}); !apierrors.IsValidation(err) {
		t.Errorf("bad address: error = %v, want ValidationError", err)
	}
	if _, err := c.BuyTokenMCP(ctx, BuyTokenArgs{TokenAddress: testToken, AmountBNB: 0}); !apierrors.IsValidation(err) {
		t.Errorf("zero amount: error = %v, want ValidationError", err)
	}
	if _, err := c.BuyTokenMCP(ctx, BuyTokenArgs{TokenAddress: testToken, AmountBNB: 0.1, SlippagePct: 80}); !apierrors.IsValidation(err) {
		t.Errorf("excessive slippage: error = %v, want ValidationError", err)
	}
	if _, err := c.SellTokenMCP(ctx, SellTokenArgs{TokenAddress: testToken, TokenAmount: -5}); !apierrors.IsValidation(err) {
		t.Errorf("negative sell amount: error = %v, want ValidationError", err)
	}
}

func TestGetTradeHistoryMCPNoJournal(t *testing.T) {
	c := newTestClient(t, newFakeBackend(t))
	if _, err := c.GetTradeHistoryMCP(context.Background(), GetTradeHistoryArgs{}); err == nil {
		t.Fatal("expected error when journal is not configured")
	}
}
