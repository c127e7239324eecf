package service

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainsafe/settle-rebalancer/pkg/attestation"
	"github.com/chainsafe/settle-rebalancer/pkg/ethereum"
)

// contractCall is one CallContract invocation seen by MockChainClient
type contractCall struct {
	ChainID   uint64
	To        common.Address
	Signature string
	Args      []any
	TxHash    common.Hash
}

// MockChainClient is a func-field implementation of ChainClient that records
// every call. Transaction hashes are sequential and unique.
type MockChainClient struct {
	SwitchToFunc       func(ctx context.Context, chainID uint64) error
	CallContractFunc   func(ctx context.Context, to common.Address, signature string, args []any) error
	WaitForReceiptFunc func(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	NativeBalanceFunc  func(ctx context.Context, chainID uint64) (*big.Int, error)

	mu       sync.Mutex
	active   uint64
	nonce    int64
	switches []uint64
	calls    []contractCall
}

func (m *MockChainClient) SwitchTo(ctx context.Context, chainID uint64) error {
	if m.SwitchToFunc != nil {
		if err := m.SwitchToFunc(ctx, chainID); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = chainID
	m.switches = append(m.switches, chainID)
	return nil
}

func (m *MockChainClient) CallContract(
	ctx context.Context,
	to common.Address,
	signature string,
	args []any,
	_ *ethereum.CallOpts,
) (common.Hash, error) {
	if m.CallContractFunc != nil {
		if err := m.CallContractFunc(ctx, to, signature, args); err != nil {
			return common.Hash{}, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nonce++
	hash := common.BigToHash(big.NewInt(m.nonce))
	m.calls = append(m.calls, contractCall{ChainID: m.active, To: to, Signature: signature, Args: args, TxHash: hash})
	return hash, nil
}

func (m *MockChainClient) WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if m.WaitForReceiptFunc != nil {
		return m.WaitForReceiptFunc(ctx, hash)
	}
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		GasUsed:     50_000,
		BlockNumber: big.NewInt(1),
	}, nil
}

func (m *MockChainClient) NativeBalance(ctx context.Context) (*big.Int, error) {
	m.mu.Lock()
	active := m.active
	m.mu.Unlock()
	if m.NativeBalanceFunc != nil {
		return m.NativeBalanceFunc(ctx, active)
	}
	// 1 native unit
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), nil
}

func (m *MockChainClient) Calls() []contractCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]contractCall(nil), m.calls...)
}

func (m *MockChainClient) Switches() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint64(nil), m.switches...)
}

func (m *MockChainClient) CallsTo(signature string) []contractCall {
	var out []contractCall
	for _, c := range m.Calls() {
		if c.Signature == signature {
			out = append(out, c)
		}
	}
	return out
}

// pollCall is one Poll invocation seen by MockAttester
type pollCall struct {
	Domain uint32
	TxHash string
}

// MockAttester is a func-field implementation of Attester. By default it
// attests message 0x01 with signature 0x02.
type MockAttester struct {
	PollFunc func(ctx context.Context, sourceDomain uint32, txHash string) (*attestation.Attestation, error)

	mu    sync.Mutex
	polls []pollCall
}

func (m *MockAttester) Poll(ctx context.Context, sourceDomain uint32, txHash string) (*attestation.Attestation, error) {
	m.mu.Lock()
	m.polls = append(m.polls, pollCall{Domain: sourceDomain, TxHash: txHash})
	m.mu.Unlock()

	if m.PollFunc != nil {
		return m.PollFunc(ctx, sourceDomain, txHash)
	}
	return completeAttestation("0x01", "0x02"), nil
}

func (m *MockAttester) Polls() []pollCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pollCall(nil), m.polls...)
}

func completeAttestation(message, signature string) *attestation.Attestation {
	return &attestation.Attestation{
		Status:      attestation.StatusComplete,
		Message:     message,
		Attestation: signature,
		MessageHash: crypto.Keccak256Hash(hexutil.MustDecode(message)).Hex(),
	}
}

// blockingAttester returns an attester that waits for cancellation and
// signals started once the first poll begins.
func blockingAttester(started chan<- struct{}) *MockAttester {
	var once sync.Once
	return &MockAttester{
		PollFunc: func(ctx context.Context, _ uint32, _ string) (*attestation.Attestation, error) {
			once.Do(func() { close(started) })
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
}
