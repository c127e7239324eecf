// Package ethereum adapts go-ethereum RPC clients into the single-signer,
// single-active-network chain client the transfer orchestrator drives.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/chainsafe/settle-rebalancer/pkg/chain"
	"github.com/chainsafe/settle-rebalancer/pkg/config"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

// gasHeadroomPercent is added on top of node gas estimates.
const gasHeadroomPercent = 20

// Backend is the subset of *ethclient.Client the adapter uses.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg geth.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg geth.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	Close()
}

// DialFunc opens a Backend for an RPC endpoint.
type DialFunc func(ctx context.Context, rawURL string) (Backend, error)

func dialEthclient(ctx context.Context, rawURL string) (Backend, error) {
	return ethclient.DialContext(ctx, rawURL)
}

// Options tune transaction submission and receipt polling.
type Options struct {
	// GasLimit of zero means estimate per call.
	GasLimit            uint64
	MaxGasPrice         *big.Int
	ReceiptPollInterval time.Duration
	ReceiptTimeout      time.Duration
}

// OptionsFromConfig converts bridge configuration into client options.
func OptionsFromConfig(cfg *config.BridgeConfig) (Options, error) {
	opts := Options{
		GasLimit:            cfg.GasLimit,
		ReceiptPollInterval: cfg.ReceiptPollInterval,
		ReceiptTimeout:      cfg.ReceiptTimeout,
	}
	if cfg.MaxGasPrice != "" {
		maxGasPrice, ok := new(big.Int).SetString(cfg.MaxGasPrice, 10)
		if !ok {
			return Options{}, fmt.Errorf("invalid max gas price %q", cfg.MaxGasPrice)
		}
		opts.MaxGasPrice = maxGasPrice
	}
	return opts, nil
}

// CallOpts overrides per-call transaction parameters.
type CallOpts struct {
	GasLimit uint64
	Value    *big.Int
}

// Option configures a Client.
type Option func(*Client)

// WithDialer replaces the ethclient dialer, used by tests.
func WithDialer(dial DialFunc) Option {
	return func(c *Client) { c.dial = dial }
}

// Client signs and submits transactions on whichever network was last selected with SwitchTo.
// No method switches networks implicitly.
type Client struct {
	key       *ecdsa.PrivateKey
	address   common.Address
	endpoints map[uint64]string
	opts      Options
	dial      DialFunc
	logger    *zap.Logger

	mu       sync.Mutex
	conns    map[uint64]Backend
	active   Backend
	activeID uint64
	signer   types.Signer
}

// NewClient creates a client for the given chains. Connections are dialed lazily on first switch.
func NewClient(key *ecdsa.PrivateKey, chains []chain.Config, opts Options, logger *zap.Logger, options ...Option) *Client {
	if opts.ReceiptPollInterval <= 0 {
		opts.ReceiptPollInterval = time.Second
	}
	c := &Client{
		key:       key,
		address:   crypto.PubkeyToAddress(key.PublicKey),
		endpoints: make(map[uint64]string, len(chains)),
		opts:      opts,
		dial:      dialEthclient,
		logger:    logger,
		conns:     make(map[uint64]Backend),
	}
	for _, ch := range chains {
		if ch.RPCURL != "" {
			c.endpoints[ch.ChainID] = ch.RPCURL
		}
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// Address returns the signer address.
func (c *Client) Address() common.Address {
	return c.address
}

// ActiveChainID returns the currently selected network id, or zero before the first switch.
func (c *Client) ActiveChainID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeID
}

// Close closes every dialed connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, conn := range c.conns {
		conn.Close()
		delete(c.conns, id)
	}
	c.active = nil
	c.activeID = 0
}

// SwitchTo makes chainID the active network, dialing it if needed and
// verifying that the endpoint really serves that chain.
func (c *Client) SwitchTo(ctx context.Context, chainID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil && c.activeID == chainID {
		return nil
	}

	url, ok := c.endpoints[chainID]
	if !ok {
		return &transfer.UnsupportedChainError{ChainID: chainID, Reason: "no rpc endpoint configured"}
	}

	conn, ok := c.conns[chainID]
	if !ok {
		dialed, err := c.dial(ctx, url)
		if err != nil {
			return switchError(chainID, err)
		}
		conn = dialed
	}

	remote, err := conn.ChainID(ctx)
	if err != nil {
		if !ok {
			conn.Close()
		}
		return switchError(chainID, err)
	}
	if !remote.IsUint64() || remote.Uint64() != chainID {
		if !ok {
			conn.Close()
		}
		return &transfer.UnsupportedChainError{
			ChainID: chainID,
			Reason:  fmt.Sprintf("endpoint reports chain id %s", remote),
		}
	}

	c.conns[chainID] = conn
	c.active = conn
	c.activeID = chainID
	c.signer = types.LatestSignerForChainID(remote)

	c.logger.Info("Switched active network",
		zap.Uint64("chain_id", chainID),
		zap.String("signer", c.address.Hex()))
	return nil
}

func (c *Client) current() (Backend, types.Signer, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil, nil, 0, ErrNoActiveNetwork
	}
	return c.active, c.signer, c.activeID, nil
}

// CallContract encodes and signs a call to signature on the active network and
// broadcasts it. It returns as soon as the node accepts the transaction.
func (c *Client) CallContract(ctx context.Context, to common.Address, signature string, args []any, opts *CallOpts) (common.Hash, error) {
	method, err := ParseSignature(signature)
	if err != nil {
		return common.Hash{}, err
	}
	data, err := packCall(method, args...)
	if err != nil {
		return common.Hash{}, err
	}

	backend, signer, chainID, err := c.current()
	if err != nil {
		return common.Hash{}, err
	}
	if opts == nil {
		opts = &CallOpts{}
	}
	value := opts.Value
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := backend.PendingNonceAt(ctx, c.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.gasPrice(ctx, backend)
	if err != nil {
		return common.Hash{}, err
	}

	gasLimit := opts.GasLimit
	if gasLimit == 0 {
		gasLimit = c.opts.GasLimit
	}
	if gasLimit == 0 {
		estimate, err := backend.EstimateGas(ctx, geth.CallMsg{
			From:     c.address,
			To:       &to,
			GasPrice: gasPrice,
			Value:    value,
			Data:     data,
		})
		if err != nil {
			return common.Hash{}, callError(method.Name, err)
		}
		gasLimit = estimate + estimate*gasHeadroomPercent/100
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	})
	signed, err := types.SignTx(tx, signer, c.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign %s: %w", method.Name, err)
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, callError(method.Name, err)
	}

	c.logger.Info("Transaction submitted",
		zap.String("method", method.Sig),
		zap.Uint64("chain_id", chainID),
		zap.String("to", to.Hex()),
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit))

	return signed.Hash(), nil
}

// gasPrice returns the node suggestion capped at MaxGasPrice.
func (c *Client) gasPrice(ctx context.Context, backend Backend) (*big.Int, error) {
	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}
	if c.opts.MaxGasPrice != nil && gasPrice.Cmp(c.opts.MaxGasPrice) > 0 {
		c.logger.Warn("Suggested gas price exceeds maximum",
			zap.String("suggested", gasPrice.String()),
			zap.String("max", c.opts.MaxGasPrice.String()))
		return new(big.Int).Set(c.opts.MaxGasPrice), nil
	}
	return gasPrice, nil
}

// WaitForReceipt polls until the transaction is mined on the active network.
// A mined transaction with failed status is returned as TransactionRevertedError.
func (c *Client) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	backend, _, _, err := c.current()
	if err != nil {
		return nil, err
	}

	var deadline <-chan time.Time
	if c.opts.ReceiptTimeout > 0 {
		timer := time.NewTimer(c.opts.ReceiptTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(c.opts.ReceiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, &transfer.TransactionRevertedError{TxHash: hash.Hex(), Reason: "receipt status 0"}
			}
			c.logger.Debug("Transaction mined",
				zap.String("tx_hash", hash.Hex()),
				zap.String("block", receipt.BlockNumber.String()))
			return receipt, nil
		case errors.Is(err, geth.NotFound):
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			c.logger.Warn("Failed to fetch receipt", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, &transfer.TransactionTimeoutError{TxHash: hash.Hex(), Timeout: c.opts.ReceiptTimeout}
		case <-ticker.C:
		}
	}
}

// ReadContract performs an eth_call on the active network and decodes the
// declared return types, e.g. "balanceOf(address)(uint256)".
func (c *Client) ReadContract(ctx context.Context, to common.Address, signature string, args ...any) ([]any, error) {
	method, err := ParseSignature(signature)
	if err != nil {
		return nil, err
	}
	data, err := packCall(method, args...)
	if err != nil {
		return nil, err
	}

	backend, _, _, err := c.current()
	if err != nil {
		return nil, err
	}

	out, err := backend.CallContract(ctx, geth.CallMsg{From: c.address, To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method.Sig, err)
	}
	if len(method.Outputs) == 0 {
		return nil, nil
	}
	values, err := method.Outputs.Unpack(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", method.Sig, err)
	}
	return values, nil
}

// NativeBalance returns the signer's native balance in wei on the active network.
func (c *Client) NativeBalance(ctx context.Context) (*big.Int, error) {
	backend, _, _, err := c.current()
	if err != nil {
		return nil, err
	}
	balance, err := backend.BalanceAt(ctx, c.address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get native balance: %w", err)
	}
	return balance, nil
}
