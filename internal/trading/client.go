// Package trading submits PancakeSwap V2 swaps on BSC from a locally held
// wallet and answers balance and quote queries over JSON-RPC.
package trading

import (
	"context"
	"crypto/ecdsa"
	_ "embed"
	"fmt"
	"math/big"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/base"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/config"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/internal/journal"
	"github.com/pavelkarev/fourmeme-trader-mcp-server/metrics"
)

//go:embed abis/router.json
var routerABIJSON string

//go:embed abis/erc20.json
var erc20ABIJSON string

const (
	// swapGasLimit covers fee-on-transfer swaps on PancakeSwap V2.
	swapGasLimit = 300000

	// approveGasLimit covers an ERC-20 approve.
	approveGasLimit = 100000

	// deadlineWindow is how far in the future swap deadlines are set.
	deadlineWindow = 5 * time.Minute

	// receiptTimeout bounds the wait for a transaction to be mined.
	receiptTimeout = 2 * time.Minute

	// balanceCacheTTL for balance and allowance lookups. Short so fresh
	// trades show up quickly.
	balanceCacheTTL = 15 * time.Second

	// metaCacheTTL for token symbol/decimals, which never change.
	metaCacheTTL = 10 * time.Minute
)

// maxUint256 is the unlimited-allowance value used by approvals.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Backend is the subset of ethclient.Client the trading client needs.
type Backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client talks to a BSC node and signs swap transactions.
type Client struct {
	*base.Client
	eth     Backend
	router  abi.ABI
	erc20   abi.ABI
	chainID *big.Int
	key     *ecdsa.PrivateKey
	wallet  common.Address
	journal *journal.Journal
}

// Option configures the trading client.
type Option func(*Client)

// WithJournal attaches a trade journal. Journal write failures are logged,
// never surfaced to the caller.
func WithJournal(j *journal.Journal) Option {
	return func(c *Client) {
		c.journal = j
	}
}

// WithBaseOptions forwards options to the embedded base client.
func WithBaseOptions(opts ...base.ClientOption) Option {
	return func(c *Client) {
		for _, opt := range opts {
			opt(c.Client)
		}
	}
}

// NewClient dials the BSC RPC endpoint and prepares the wallet. privateKeyHex
// may be empty; trading tools then refuse to run while read-only tools work.
// HTTP endpoints are dialed lazily, so construction does no network I/O.
func NewClient(rpcURL, privateKeyHex string, opts ...Option) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial BSC RPC %s: %w", rpcURL, err)
	}
	return newClient(eth, big.NewInt(config.BSCChainID), privateKeyHex, opts...)
}

// newClient wires a client over an existing backend.
func newClient(eth Backend, chainID *big.Int, privateKeyHex string, opts ...Option) (*Client, error) {
	routerABI, err := abi.JSON(strings.NewReader(routerABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse router ABI: %w", err)
	}
	erc20ABI, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 ABI: %w", err)
	}

	c := &Client{
		Client:  base.NewClient(),
		eth:     eth,
		router:  routerABI,
		erc20:   erc20ABI,
		chainID: chainID,
	}
	for _, opt := range opts {
		opt(c)
	}

	if privateKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse wallet private key: %w", err)
		}
		c.key = key
		c.wallet = crypto.PubkeyToAddress(key.PublicKey)
	}
	return c, nil
}

// HasWallet reports whether a private key is loaded.
func (c *Client) HasWallet() bool {
	return c.key != nil
}

// WalletAddress returns the loaded wallet address, or the zero address when
// no key is configured.
func (c *Client) WalletAddress() common.Address {
	return c.wallet
}

// call executes a read-only contract call and unpacks the outputs.
func (c *Client) call(ctx context.Context, contract abi.ABI, to common.Address, method string, args ...interface{}) ([]interface{}, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	start := time.Now()
	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	metrics.RecordChainCall(method, time.Since(start).Seconds(), err == nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}

	results, err := contract.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return results, nil
}

// getAmountsOut asks the router how much of the final path token amountIn
// buys right now.
func (c *Client) getAmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) (*big.Int, error) {
	results, err := c.call(ctx, c.router, common.HexToAddress(config.PancakeRouterV2), "getAmountsOut", amountIn, path)
	if err != nil {
		return nil, err
	}
	amounts, ok := results[0].([]*big.Int)
	if !ok || len(amounts) < 2 {
		return nil, fmt.Errorf("getAmountsOut: unexpected result shape")
	}
	return amounts[len(amounts)-1], nil
}

// tokenMeta holds the immutable bits of an ERC-20.
type tokenMeta struct {
	Symbol   string
	Decimals uint8
}

func (c *Client) getTokenMeta(ctx context.Context, token common.Address) (tokenMeta, error) {
	key := "meta:" + strings.ToLower(token.Hex())
	if cached, ok := c.Cache.Get(key); ok {
		metrics.RecordCacheAccess(true)
		return cached.(tokenMeta), nil
	}
	metrics.RecordCacheAccess(false)

	symResults, err := c.call(ctx, c.erc20, token, "symbol")
	if err != nil {
		return tokenMeta{}, err
	}
	decResults, err := c.call(ctx, c.erc20, token, "decimals")
	if err != nil {
		return tokenMeta{}, err
	}

	meta := tokenMeta{
		Symbol:   symResults[0].(string),
		Decimals: decResults[0].(uint8),
	}
	c.Cache.Set(key, meta, metaCacheTTL)
	return meta, nil
}

func (c *Client) getBNBBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	start := time.Now()
	balance, err := c.eth.BalanceAt(ctx, account, nil)
	metrics.RecordChainCall("getBalance", time.Since(start).Seconds(), err == nil)
	if err != nil {
		return nil, fmt.Errorf("fetch BNB balance: %w", err)
	}
	return balance, nil
}

func (c *Client) getTokenBalance(ctx context.Context, token, account common.Address) (*big.Int, error) {
	key := fmt.Sprintf("balance:%s:%s", strings.ToLower(token.Hex()), strings.ToLower(account.Hex()))
	if cached, ok := c.Cache.Get(key); ok {
		metrics.RecordCacheAccess(true)
		return cached.(*big.Int), nil
	}
	metrics.RecordCacheAccess(false)

	results, err := c.call(ctx, c.erc20, token, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	balance := results[0].(*big.Int)
	c.Cache.Set(key, balance, balanceCacheTTL)
	return balance, nil
}

func (c *Client) getRouterAllowance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	key := fmt.Sprintf("allowance:%s:%s", strings.ToLower(token.Hex()), strings.ToLower(owner.Hex()))
	if cached, ok := c.Cache.Get(key); ok {
		metrics.RecordCacheAccess(true)
		return cached.(*big.Int), nil
	}
	metrics.RecordCacheAccess(false)

	results, err := c.call(ctx, c.erc20, token, "allowance", owner, common.HexToAddress(config.PancakeRouterV2))
	if err != nil {
		return nil, err
	}
	allowance := results[0].(*big.Int)
	c.Cache.Set(key, allowance, balanceCacheTTL)
	return allowance, nil
}

// sendAndWait signs a legacy transaction, submits it, and waits for the
// receipt. Returns the receipt and the transaction hash.
func (c *Client) sendAndWait(ctx context.Context, to common.Address, value *big.Int, gasLimit uint64, data []byte) (*types.Receipt, common.Hash, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, c.wallet)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("fetch nonce: %w", err)
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("fetch gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("sign transaction: %w", err)
	}

	start := time.Now()
	err = c.eth.SendTransaction(ctx, signed)
	metrics.RecordChainCall("sendRawTransaction", time.Since(start).Seconds(), err == nil)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}

	c.Logger.Info("Transaction submitted",
		"tx_hash", signed.Hash().Hex(),
		"to", to.Hex(),
		"nonce", nonce)

	waitCtx, cancel := context.WithTimeout(ctx, receiptTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, c.eth, signed)
	if err != nil {
		return nil, signed.Hash(), fmt.Errorf("wait for receipt %s: %w", signed.Hash().Hex(), err)
	}
	return receipt, signed.Hash(), nil
}

// invalidateWalletState drops cached balances and allowances after a
// transaction lands.
func (c *Client) invalidateWalletState() {
	c.Cache.DeletePrefix("balance:")
	c.Cache.DeletePrefix("allowance:")
}

// recordTrade writes a journal entry if a journal is attached.
func (c *Client) recordTrade(e journal.Entry) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Record(e); err != nil {
		c.Logger.Warn("Failed to record trade in journal",
			"tx_hash", e.TxHash,
			"error", err)
	}
}
