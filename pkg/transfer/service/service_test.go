package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/chainsafe/settle-rebalancer/pkg/attestation"
	"github.com/chainsafe/settle-rebalancer/pkg/chain"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer/service/mocks"
	"github.com/chainsafe/settle-rebalancer/pkg/transferstore"
)

const recipient = "0x1111111111111111111111111111111111111111"

type harness struct {
	svc      Service
	store    Store
	registry *chain.Registry
	client   *MockChainClient
	attester *MockAttester
	progress chan *transfer.Record
}

func newHarness(t *testing.T, client *MockChainClient, attester *MockAttester, store Store) *harness {
	t.Helper()

	registry, err := chain.NewRegistry(chain.TestnetPresets()...)
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}
	minGas, err := transfer.MinGasWei("0.01")
	if err != nil {
		t.Fatalf("MinGasWei() failed: %v", err)
	}
	if store == nil {
		store = transferstore.NewMemoryStore()
	}

	h := &harness{
		store:    store,
		registry: registry,
		client:   client,
		attester: attester,
		progress: make(chan *transfer.Record, 64),
	}
	h.svc = NewService(store, registry, client, attester, Options{
		MinGasBalance:    minGas,
		MintMaxRetries:   3,
		MintRetryBackoff: time.Millisecond,
		Progress:         func(rec *transfer.Record) { h.progress <- rec },
	}, zap.NewNop())
	t.Cleanup(func() { _ = h.svc.Shutdown(context.Background()) })
	return h
}

// statuses drains the progress observer for id.
func (h *harness) statuses(id string) []transfer.Status {
	var out []transfer.Status
	for {
		select {
		case rec := <-h.progress:
			if rec.ID == id {
				out = append(out, rec.Status)
			}
		default:
			return out
		}
	}
}

// waitTerminal blocks until the observer reports a terminal status for any record.
func (h *harness) waitTerminal(t *testing.T) *transfer.Record {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case rec := <-h.progress:
			if rec.Status.Terminal() {
				return rec
			}
		case <-timeout:
			t.Fatal("timed out waiting for terminal status")
			return nil
		}
	}
}

func (h *harness) chain(t *testing.T, id string) chain.Config {
	t.Helper()
	c, err := h.registry.Get(id)
	if err != nil {
		t.Fatalf("registry.Get(%s) failed: %v", id, err)
	}
	return c
}

func crossChainRequest() *transfer.Request {
	return &transfer.Request{
		SourceChain:        chain.EthereumSepolia,
		DestinationChain:   chain.BaseSepolia,
		Amount:             big.NewInt(5_000_000),
		DestinationAddress: recipient,
	}
}

func sameChainRequest() *transfer.Request {
	return &transfer.Request{
		SourceChain:        chain.BaseSepolia,
		DestinationChain:   chain.BaseSepolia,
		Amount:             big.NewInt(1_250_000),
		DestinationAddress: recipient,
	}
}

func TestExecute_CrossChainCompletes(t *testing.T) {
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)
	src := h.chain(t, chain.EthereumSepolia)
	dst := h.chain(t, chain.BaseSepolia)

	rec, err := h.svc.Execute(context.Background(), crossChainRequest())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if rec.Status != transfer.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s (%s)", rec.Status, rec.Error)
	}
	if rec.MessageBytes != "0x01" || rec.Attestation != "0x02" {
		t.Errorf("unexpected message/attestation %q/%q", rec.MessageBytes, rec.Attestation)
	}
	if rec.MessageHash == "" {
		t.Error("expected message hash to be recorded")
	}
	ids := map[string]bool{rec.ApproveTxID: true, rec.BurnTxID: true, rec.MintTxID: true}
	if len(ids) != 3 || ids[""] {
		t.Errorf("expected three distinct tx ids, got approve=%s burn=%s mint=%s", rec.ApproveTxID, rec.BurnTxID, rec.MintTxID)
	}
	if rec.TransferTxID != "" || rec.Error != "" {
		t.Errorf("unexpected transfer tx %q or error %q", rec.TransferTxID, rec.Error)
	}

	wantStatuses := []transfer.Status{
		transfer.StatusPending, transfer.StatusApproving, transfer.StatusBurning,
		transfer.StatusAttesting, transfer.StatusMinting, transfer.StatusCompleted,
	}
	if got := h.statuses(rec.ID); fmt.Sprint(got) != fmt.Sprint(wantStatuses) {
		t.Errorf("expected statuses %v, got %v", wantStatuses, got)
	}

	if got := h.client.Switches(); len(got) != 2 || got[0] != src.ChainID || got[1] != dst.ChainID {
		t.Errorf("expected switches [%d %d], got %v", src.ChainID, dst.ChainID, got)
	}

	calls := h.client.Calls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 contract calls, got %d", len(calls))
	}

	approve := calls[0]
	if approve.Signature != sigApprove || approve.To != src.TokenAddress || approve.ChainID != src.ChainID {
		t.Errorf("unexpected approve call %+v", approve)
	}
	if approve.Args[0].(common.Address) != src.BurnMessengerAddress || approve.Args[1].(*big.Int).Int64() != 5_000_000 {
		t.Errorf("unexpected approve args %v", approve.Args)
	}

	burn := calls[1]
	if burn.Signature != sigDepositForBurn || burn.To != src.BurnMessengerAddress {
		t.Errorf("unexpected burn call %+v", burn)
	}
	if got := burn.Args[1].(uint32); got != dst.DomainID {
		t.Errorf("expected destination domain %d, got %d", dst.DomainID, got)
	}
	if got := burn.Args[2].([32]byte); got != transfer.EncodeMintRecipient(common.HexToAddress(recipient)) {
		t.Errorf("unexpected mint recipient %x", got)
	}
	if got := burn.Args[3].(common.Address); got != src.TokenAddress {
		t.Errorf("expected burn token %s, got %s", src.TokenAddress, got)
	}
	if got := burn.Args[4].([32]byte); got != ([32]byte{}) {
		t.Errorf("expected zero destination caller, got %x", got)
	}
	if got := burn.Args[5].(*big.Int).Int64(); got != 4_950_000 {
		t.Errorf("expected max fee 4950000, got %d", got)
	}
	if got := burn.Args[6].(uint32); got != transfer.FinalityThresholdFast {
		t.Errorf("expected fast finality threshold, got %d", got)
	}
	if rec.BurnTxID != burn.TxHash.Hex() {
		t.Errorf("expected burn tx %s, got %s", burn.TxHash.Hex(), rec.BurnTxID)
	}

	polls := h.attester.Polls()
	if len(polls) != 1 || polls[0].Domain != src.DomainID || polls[0].TxHash != rec.BurnTxID {
		t.Errorf("unexpected polls %+v", polls)
	}

	mint := calls[2]
	if mint.Signature != sigReceiveMessage || mint.To != dst.MintReceiverAddress || mint.ChainID != dst.ChainID {
		t.Errorf("unexpected mint call %+v", mint)
	}
	if !bytes.Equal(mint.Args[0].([]byte), []byte{0x01}) || !bytes.Equal(mint.Args[1].([]byte), []byte{0x02}) {
		t.Errorf("unexpected mint args %v", mint.Args)
	}

	stored, err := h.store.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if stored.Status != transfer.StatusCompleted || stored.MintTxID != rec.MintTxID {
		t.Errorf("stored record does not match returned record: %+v", stored)
	}
}

func TestExecute_StandardSpeedUsesStandardThreshold(t *testing.T) {
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)

	req := crossChainRequest()
	req.Speed = transfer.SpeedStandard
	rec, err := h.svc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if rec.Speed != transfer.SpeedStandard {
		t.Errorf("expected standard speed on record, got %s", rec.Speed)
	}
	burns := h.client.CallsTo(sigDepositForBurn)
	if len(burns) != 1 || burns[0].Args[6].(uint32) != transfer.FinalityThresholdStandard {
		t.Errorf("expected standard finality threshold, got %+v", burns)
	}
}

func TestExecute_SameChainTransfers(t *testing.T) {
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)
	base := h.chain(t, chain.BaseSepolia)

	rec, err := h.svc.Execute(context.Background(), sameChainRequest())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if rec.Kind != transfer.KindSameChain || rec.Status != transfer.StatusCompleted {
		t.Fatalf("expected completed same-chain record, got %s/%s", rec.Kind, rec.Status)
	}
	if rec.TransferTxID == "" {
		t.Error("expected transfer tx id")
	}
	if rec.ApproveTxID != "" || rec.BurnTxID != "" || rec.MintTxID != "" || rec.Attestation != "" {
		t.Errorf("same-chain record must only carry the transfer tx: %+v", rec)
	}

	want := []transfer.Status{transfer.StatusPending, transfer.StatusTransferring, transfer.StatusCompleted}
	if got := h.statuses(rec.ID); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected statuses %v, got %v", want, got)
	}

	calls := h.client.Calls()
	if len(calls) != 1 || calls[0].Signature != sigTransfer || calls[0].To != base.TokenAddress {
		t.Fatalf("expected a single token transfer, got %+v", calls)
	}
	if calls[0].Args[0].(common.Address) != common.HexToAddress(recipient) {
		t.Errorf("unexpected transfer recipient %v", calls[0].Args[0])
	}
	if len(h.attester.Polls()) != 0 {
		t.Error("same-chain transfer must not poll for attestation")
	}
}

func TestExecute_InvalidRequestCreatesNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *transfer.Request)
	}{
		{"zero amount", func(req *transfer.Request) { req.Amount = big.NewInt(0) }},
		{"negative amount", func(req *transfer.Request) { req.Amount = big.NewInt(-1) }},
		{"nil amount", func(req *transfer.Request) { req.Amount = nil }},
		{"bad address", func(req *transfer.Request) { req.DestinationAddress = "0x1234" }},
		{"zero address", func(req *transfer.Request) { req.DestinationAddress = common.Address{}.Hex() }},
		{"bad speed", func(req *transfer.Request) { req.Speed = "warp" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)
			req := crossChainRequest()
			tt.mutate(req)

			_, err := h.svc.Execute(context.Background(), req)
			if !errors.Is(err, transfer.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			assertNothingHappened(t, h)
		})
	}
}

func TestExecute_UnknownChainCreatesNothing(t *testing.T) {
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)
	req := crossChainRequest()
	req.DestinationChain = "solana-devnet"

	_, err := h.svc.Execute(context.Background(), req)
	var unknown *chain.UnknownChainError
	if !errors.As(err, &unknown) || unknown.ID != "solana-devnet" {
		t.Fatalf("expected UnknownChainError, got %v", err)
	}
	assertNothingHappened(t, h)
}

func assertNothingHappened(t *testing.T, h *harness) {
	t.Helper()
	records, err := h.store.List(context.Background())
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
	if len(h.client.Switches()) != 0 || len(h.client.Calls()) != 0 {
		t.Error("expected no chain client calls")
	}
}

func TestExecute_InsufficientGas(t *testing.T) {
	client := &MockChainClient{
		NativeBalanceFunc: func(context.Context, uint64) (*big.Int, error) {
			return big.NewInt(9_999_999_999_999_999), nil
		},
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	rec, err := h.svc.Execute(context.Background(), crossChainRequest())
	var gasErr *transfer.InsufficientGasError
	if !errors.As(err, &gasErr) {
		t.Fatalf("expected InsufficientGasError, got %v", err)
	}
	if gasErr.Chain != chain.EthereumSepolia {
		t.Errorf("expected gas error on %s, got %s", chain.EthereumSepolia, gasErr.Chain)
	}
	if rec == nil || rec.Status != transfer.StatusFailed || rec.Error != err.Error() {
		t.Fatalf("expected FAILED record with error message, got %+v", rec)
	}
	if len(client.Calls()) != 0 {
		t.Error("no transaction may be sent without gas")
	}
}

func TestExecute_SignerRejectionIsReturnedUnchanged(t *testing.T) {
	rejection := &transfer.UserRejectedError{Action: "approve", Err: errors.New("user denied transaction signature")}
	client := &MockChainClient{
		CallContractFunc: func(_ context.Context, _ common.Address, sig string, _ []any) error {
			if sig == sigApprove {
				return rejection
			}
			return nil
		},
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	rec, err := h.svc.Execute(context.Background(), crossChainRequest())
	if err != error(rejection) {
		t.Fatalf("expected the adapter error unchanged, got %v", err)
	}
	if rec.Status != transfer.StatusFailed || rec.Error != rejection.Error() {
		t.Errorf("expected FAILED with rejection message, got %s %q", rec.Status, rec.Error)
	}
	if rec.ApproveTxID != "" {
		t.Errorf("rejected approve must not record a tx id, got %s", rec.ApproveTxID)
	}
}

func TestExecute_ChainSwitchRejected(t *testing.T) {
	client := &MockChainClient{
		SwitchToFunc: func(_ context.Context, chainID uint64) error {
			return &transfer.ChainSwitchRejectedError{ChainID: chainID, Err: errors.New("user rejected")}
		},
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	rec, err := h.svc.Execute(context.Background(), sameChainRequest())
	if !errors.Is(err, transfer.ErrChainSwitchRejected) {
		t.Fatalf("expected ErrChainSwitchRejected, got %v", err)
	}
	if rec.Status != transfer.StatusFailed {
		t.Errorf("expected FAILED, got %s", rec.Status)
	}
}

func TestExecute_MalformedAttestationFails(t *testing.T) {
	attester := &MockAttester{
		PollFunc: func(_ context.Context, _ uint32, txHash string) (*attestation.Attestation, error) {
			return nil, &transfer.MalformedAttestationError{TxHash: txHash, Reason: "attestation missing"}
		},
	}
	h := newHarness(t, &MockChainClient{}, attester, nil)

	rec, err := h.svc.Execute(context.Background(), crossChainRequest())
	if !errors.Is(err, transfer.ErrMalformedAttestation) {
		t.Fatalf("expected ErrMalformedAttestation, got %v", err)
	}
	if rec.Status != transfer.StatusFailed || rec.BurnTxID == "" {
		t.Errorf("expected FAILED record keeping the burn tx, got %+v", rec)
	}
	if len(h.client.CallsTo(sigReceiveMessage)) != 0 {
		t.Error("mint must not be attempted without an attestation")
	}
}

func TestExecute_MintRetriesTransientFailures(t *testing.T) {
	failures := 2
	client := &MockChainClient{}
	client.CallContractFunc = func(_ context.Context, _ common.Address, sig string, _ []any) error {
		if sig == sigReceiveMessage && failures > 0 {
			failures--
			return &transfer.TransactionRevertedError{Reason: "receiveMessage", Err: errors.New("execution reverted: nonce already used")}
		}
		return nil
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	rec, err := h.svc.Execute(context.Background(), crossChainRequest())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if rec.Status != transfer.StatusCompleted || rec.MintTxID == "" {
		t.Errorf("expected completed record with mint tx, got %+v", rec)
	}
	if failures != 0 {
		t.Errorf("expected both transient failures to be consumed, %d left", failures)
	}
}

func TestExecute_MintGivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	client := &MockChainClient{
		CallContractFunc: func(_ context.Context, _ common.Address, sig string, _ []any) error {
			if sig == sigReceiveMessage {
				attempts++
				return errors.New("failed to submit receiveMessage: nonce too low")
			}
			return nil
		},
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	rec, err := h.svc.Execute(context.Background(), crossChainRequest())
	if err == nil {
		t.Fatal("expected mint failure")
	}
	if attempts != 4 {
		t.Errorf("expected 1 attempt plus 3 retries, got %d attempts", attempts)
	}
	if rec.Status != transfer.StatusFailed || rec.BurnTxID == "" || rec.Attestation == "" {
		t.Errorf("failed record must keep burn and attestation for resume, got %+v", rec)
	}
}

func TestExecute_MintDoesNotRetryRejection(t *testing.T) {
	attempts := 0
	client := &MockChainClient{
		CallContractFunc: func(_ context.Context, _ common.Address, sig string, _ []any) error {
			if sig == sigReceiveMessage {
				attempts++
				return &transfer.UserRejectedError{Action: "receiveMessage", Err: errors.New("user rejected")}
			}
			return nil
		},
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	if _, err := h.svc.Execute(context.Background(), crossChainRequest()); !errors.Is(err, transfer.ErrUserRejected) {
		t.Fatalf("expected ErrUserRejected, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected a single mint attempt, got %d", attempts)
	}
}

func TestExecute_RevertedReceiptFails(t *testing.T) {
	client := &MockChainClient{}
	client.WaitForReceiptFunc = func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
		return nil, &transfer.TransactionRevertedError{TxHash: hash.Hex(), Reason: "receipt status 0"}
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	rec, err := h.svc.Execute(context.Background(), sameChainRequest())
	if !errors.Is(err, transfer.ErrTransactionReverted) {
		t.Fatalf("expected ErrTransactionReverted, got %v", err)
	}
	transfers := h.client.CallsTo(sigTransfer)
	if len(transfers) != 1 {
		t.Fatalf("expected one transfer call, got %d", len(transfers))
	}
	if rec.Status != transfer.StatusFailed || rec.TransferTxID != transfers[0].TxHash.Hex() {
		t.Errorf("expected FAILED keeping the broadcast transfer tx, got %+v", rec)
	}
}

func TestExecute_BurnReceiptTimeoutKeepsBurnForResume(t *testing.T) {
	client := &MockChainClient{}
	client.WaitForReceiptFunc = func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
		if burns := client.CallsTo(sigDepositForBurn); len(burns) == 1 && burns[0].TxHash == hash {
			return nil, &transfer.TransactionTimeoutError{TxHash: hash.Hex(), Timeout: time.Minute}
		}
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, BlockNumber: big.NewInt(1)}, nil
	}
	h := newHarness(t, client, &MockAttester{}, nil)
	ctx := context.Background()

	failed, err := h.svc.Execute(ctx, crossChainRequest())
	if !errors.Is(err, transfer.ErrTransactionTimeout) {
		t.Fatalf("expected ErrTransactionTimeout, got %v", err)
	}

	burns := client.CallsTo(sigDepositForBurn)
	if len(burns) != 1 {
		t.Fatalf("expected one burn call, got %d", len(burns))
	}
	if failed.Status != transfer.StatusFailed || failed.BurnTxID != burns[0].TxHash.Hex() || failed.ApproveTxID == "" {
		t.Fatalf("expected FAILED keeping approve and burn tx, got %+v", failed)
	}
	stored, _ := h.store.Get(ctx, failed.ID)
	if stored.BurnTxID != failed.BurnTxID {
		t.Errorf("burn tx must be persisted, got %q", stored.BurnTxID)
	}

	// the burn was mined after all
	client.WaitForReceiptFunc = nil
	resumed, err := h.svc.ResumeMint(ctx, failed.ID)
	if err != nil {
		t.Fatalf("ResumeMint() failed: %v", err)
	}
	if resumed.Status != transfer.StatusCompleted || resumed.BurnTxID != failed.BurnTxID {
		t.Errorf("expected completed resume of burn %s, got %+v", failed.BurnTxID, resumed)
	}
	if len(client.CallsTo(sigDepositForBurn)) != 1 {
		t.Error("resume must not burn again")
	}
	polls := h.attester.Polls()
	if len(polls) != 1 || polls[0].TxHash != failed.BurnTxID {
		t.Errorf("expected a single poll for burn %s, got %+v", failed.BurnTxID, polls)
	}
}

func TestExecute_MintReceiptTimeoutKeepsMintTx(t *testing.T) {
	client := &MockChainClient{}
	client.WaitForReceiptFunc = func(_ context.Context, hash common.Hash) (*types.Receipt, error) {
		if mints := client.CallsTo(sigReceiveMessage); len(mints) == 1 && mints[0].TxHash == hash {
			return nil, &transfer.TransactionTimeoutError{TxHash: hash.Hex(), Timeout: time.Minute}
		}
		return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: hash, BlockNumber: big.NewInt(1)}, nil
	}
	h := newHarness(t, client, &MockAttester{}, nil)

	rec, err := h.svc.Execute(context.Background(), crossChainRequest())
	if !errors.Is(err, transfer.ErrTransactionTimeout) {
		t.Fatalf("expected ErrTransactionTimeout, got %v", err)
	}
	mints := client.CallsTo(sigReceiveMessage)
	if len(mints) != 1 {
		t.Fatalf("a receipt timeout must not be retried, got %d mint calls", len(mints))
	}
	if rec.Status != transfer.StatusFailed || rec.MintTxID != mints[0].TxHash.Hex() {
		t.Errorf("expected FAILED keeping mint tx %s, got %+v", mints[0].TxHash.Hex(), rec)
	}
}

func TestExecute_CallerCancellationIsRecorded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attester := &MockAttester{
		PollFunc: func(pollCtx context.Context, _ uint32, _ string) (*attestation.Attestation, error) {
			cancel()
			<-pollCtx.Done()
			return nil, pollCtx.Err()
		},
	}

	mem := transferstore.NewMemoryStore()
	store := mocks.NewStore(t)
	store.EXPECT().Create(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, req *transfer.Request, opts ...transferstore.CreateOption) (*transfer.Record, error) {
			return mem.Create(ctx, req, opts...)
		})
	store.EXPECT().Update(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, id string, u transfer.Update) (*transfer.Record, error) {
			if u.Status != nil && *u.Status == transfer.StatusFailed && ctx.Err() != nil {
				t.Error("failure must be persisted with a live context")
			}
			return mem.Update(ctx, id, u)
		})

	h := newHarness(t, &MockChainClient{}, attester, store)

	rec, err := h.svc.Execute(ctx, crossChainRequest())
	if !errors.Is(err, transfer.ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
	if rec.Status != transfer.StatusFailed || rec.Error != "transfer cancelled" {
		t.Errorf("expected FAILED 'transfer cancelled', got %s %q", rec.Status, rec.Error)
	}
}

func TestExecute_StoreCreateFailure(t *testing.T) {
	store := mocks.NewStore(t)
	store.EXPECT().Create(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	h := newHarness(t, &MockChainClient{}, &MockAttester{}, store)

	if _, err := h.svc.Execute(context.Background(), crossChainRequest()); err == nil {
		t.Fatal("expected store error")
	}
	if len(h.client.Switches()) != 0 {
		t.Error("chain client must not be used without a record")
	}
}

func TestSubmit_RunsInBackground(t *testing.T) {
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)

	created, err := h.svc.Submit(context.Background(), crossChainRequest())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if created.Status != transfer.StatusPending {
		t.Errorf("expected PENDING on submit, got %s", created.Status)
	}

	final := h.waitTerminal(t)
	if final.ID != created.ID || final.Status != transfer.StatusCompleted {
		t.Fatalf("expected %s COMPLETED, got %s %s", created.ID, final.ID, final.Status)
	}
}

func TestCancel_RunningTransfer(t *testing.T) {
	started := make(chan struct{})
	h := newHarness(t, &MockChainClient{}, blockingAttester(started), nil)

	created, err := h.svc.Submit(context.Background(), crossChainRequest())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	<-started

	if err := h.svc.Cancel(context.Background(), created.ID); err != nil {
		t.Fatalf("Cancel() failed: %v", err)
	}

	final := h.waitTerminal(t)
	if final.Status != transfer.StatusFailed || final.Error != "transfer cancelled" {
		t.Errorf("expected FAILED 'transfer cancelled', got %s %q", final.Status, final.Error)
	}
	if final.BurnTxID == "" {
		t.Error("expected burn tx to be kept on a cancelled transfer")
	}
	if len(h.client.CallsTo(sigReceiveMessage)) != 0 {
		t.Error("no mint may follow cancellation")
	}
}

func TestCancel_OrphanedAndTerminalRecords(t *testing.T) {
	mem := transferstore.NewMemoryStore()
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, mem)
	ctx := context.Background()

	orphan, err := mem.Create(ctx, crossChainRequest())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := h.svc.Cancel(ctx, orphan.ID); err != nil {
		t.Fatalf("Cancel() failed: %v", err)
	}
	got, _ := mem.Get(ctx, orphan.ID)
	if got.Status != transfer.StatusFailed || got.Error != "transfer cancelled" {
		t.Errorf("expected orphan to be cancelled, got %s %q", got.Status, got.Error)
	}

	if err := h.svc.Cancel(ctx, orphan.ID); !errors.Is(err, transfer.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for terminal record, got %v", err)
	}
	if err := h.svc.Cancel(ctx, "missing"); !errors.Is(err, transfer.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResumeMint_CompletesFromFailedMint(t *testing.T) {
	rejectMint := true
	client := &MockChainClient{}
	client.CallContractFunc = func(_ context.Context, _ common.Address, sig string, _ []any) error {
		if sig == sigReceiveMessage && rejectMint {
			return &transfer.UserRejectedError{Action: "receiveMessage", Err: errors.New("user rejected")}
		}
		return nil
	}
	h := newHarness(t, client, &MockAttester{}, nil)
	ctx := context.Background()

	failed, err := h.svc.Execute(ctx, crossChainRequest())
	if err == nil || failed.Status != transfer.StatusFailed {
		t.Fatalf("expected first run to fail, got %v", err)
	}

	rejectMint = false
	resumed, err := h.svc.ResumeMint(ctx, failed.ID)
	if err != nil {
		t.Fatalf("ResumeMint() failed: %v", err)
	}

	if resumed.ID == failed.ID || resumed.ResumedFrom != failed.ID {
		t.Errorf("expected new record linked to %s, got id=%s resumedFrom=%s", failed.ID, resumed.ID, resumed.ResumedFrom)
	}
	if resumed.Status != transfer.StatusCompleted || resumed.MintTxID == "" {
		t.Errorf("expected resumed record to complete, got %+v", resumed)
	}
	if resumed.BurnTxID != failed.BurnTxID || resumed.ApproveTxID != failed.ApproveTxID {
		t.Error("resumed record must carry the original approve and burn")
	}
	if len(h.client.CallsTo(sigApprove)) != 1 || len(h.client.CallsTo(sigDepositForBurn)) != 1 {
		t.Error("resume must not approve or burn again")
	}
	if len(h.attester.Polls()) != 1 {
		t.Errorf("stored attestation must be reused, got %d polls", len(h.attester.Polls()))
	}

	prev, _ := h.store.Get(ctx, failed.ID)
	if prev.Status != transfer.StatusFailed {
		t.Errorf("original record must stay FAILED, got %s", prev.Status)
	}
}

func TestResumeMint_RepollsMissingAttestation(t *testing.T) {
	attestationDown := true
	attester := &MockAttester{}
	attester.PollFunc = func(_ context.Context, _ uint32, _ string) (*attestation.Attestation, error) {
		if attestationDown {
			return nil, transfer.ErrAttestationTimeout
		}
		return completeAttestation("0x0a0b", "0x0c"), nil
	}
	h := newHarness(t, &MockChainClient{}, attester, nil)
	ctx := context.Background()

	failed, err := h.svc.Execute(ctx, crossChainRequest())
	if !errors.Is(err, transfer.ErrAttestationTimeout) {
		t.Fatalf("expected attestation timeout, got %v", err)
	}

	attestationDown = false
	resumed, err := h.svc.ResumeMint(ctx, failed.ID)
	if err != nil {
		t.Fatalf("ResumeMint() failed: %v", err)
	}
	if resumed.Status != transfer.StatusCompleted || resumed.MessageBytes != "0x0a0b" {
		t.Errorf("expected completion with the new attestation, got %+v", resumed)
	}
	polls := attester.Polls()
	if len(polls) != 2 || polls[1].TxHash != failed.BurnTxID {
		t.Errorf("expected a second poll for the original burn, got %+v", polls)
	}
}

func TestResumeMint_RejectsSecondResume(t *testing.T) {
	rejectMint := true
	client := &MockChainClient{}
	client.CallContractFunc = func(_ context.Context, _ common.Address, sig string, _ []any) error {
		if sig == sigReceiveMessage && rejectMint {
			return &transfer.UserRejectedError{Action: "receiveMessage", Err: errors.New("user rejected")}
		}
		return nil
	}
	h := newHarness(t, client, &MockAttester{}, nil)
	ctx := context.Background()

	failed, _ := h.svc.Execute(ctx, crossChainRequest())
	if failed.Status != transfer.StatusFailed {
		t.Fatalf("expected first run to fail, got %s", failed.Status)
	}

	rejectMint = false
	first, err := h.svc.ResumeMint(ctx, failed.ID)
	if err != nil || first.Status != transfer.StatusCompleted {
		t.Fatalf("expected first resume to complete, got %v", err)
	}

	if _, err := h.svc.ResumeMint(ctx, failed.ID); !errors.Is(err, transfer.ErrNotResumable) {
		t.Fatalf("expected ErrNotResumable for an already resumed transfer, got %v", err)
	}
	if got := len(client.CallsTo(sigReceiveMessage)); got != 1 {
		t.Errorf("expected a single mint broadcast, got %d", got)
	}
	successors, _ := h.store.List(ctx, transferstore.WithSuccessorsOf(failed.ID))
	if len(successors) != 1 {
		t.Errorf("expected one successor record, got %d", len(successors))
	}
}

func TestResumeMint_AllowsRetryAfterFailedResume(t *testing.T) {
	rejectMint := true
	client := &MockChainClient{}
	client.CallContractFunc = func(_ context.Context, _ common.Address, sig string, _ []any) error {
		if sig == sigReceiveMessage && rejectMint {
			return &transfer.UserRejectedError{Action: "receiveMessage", Err: errors.New("user rejected")}
		}
		return nil
	}
	h := newHarness(t, client, &MockAttester{}, nil)
	ctx := context.Background()

	failed, _ := h.svc.Execute(ctx, crossChainRequest())

	retry, err := h.svc.ResumeMint(ctx, failed.ID)
	if err == nil || retry.Status != transfer.StatusFailed {
		t.Fatalf("expected the first resume to fail, got %v", err)
	}

	rejectMint = false
	second, err := h.svc.ResumeMint(ctx, failed.ID)
	if err != nil {
		t.Fatalf("ResumeMint() after a failed resume failed: %v", err)
	}
	if second.Status != transfer.StatusCompleted || second.ResumedFrom != failed.ID {
		t.Errorf("expected completed resume of %s, got %+v", failed.ID, second)
	}
}

func TestResumeMint_NotResumable(t *testing.T) {
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)
	ctx := context.Background()

	completed, err := h.svc.Execute(ctx, crossChainRequest())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if _, err := h.svc.ResumeMint(ctx, completed.ID); !errors.Is(err, transfer.ErrNotResumable) {
		t.Errorf("expected ErrNotResumable for completed record, got %v", err)
	}

	h.client.NativeBalanceFunc = func(context.Context, uint64) (*big.Int, error) { return big.NewInt(0), nil }
	noBurn, _ := h.svc.Execute(ctx, crossChainRequest())
	if _, err := h.svc.ResumeMint(ctx, noBurn.ID); !errors.Is(err, transfer.ErrNotResumable) {
		t.Errorf("expected ErrNotResumable without burn, got %v", err)
	}

	sameChain, _ := h.svc.Execute(ctx, sameChainRequest())
	if _, err := h.svc.ResumeMint(ctx, sameChain.ID); !errors.Is(err, transfer.ErrNotResumable) {
		t.Errorf("expected ErrNotResumable for same-chain record, got %v", err)
	}

	if _, err := h.svc.ResumeMint(ctx, "missing"); !errors.Is(err, transfer.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestShutdown_CancelsRunningAndRejectsNew(t *testing.T) {
	started := make(chan struct{})
	h := newHarness(t, &MockChainClient{}, blockingAttester(started), nil)
	ctx := context.Background()

	created, err := h.svc.Submit(ctx, crossChainRequest())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	<-started

	if err := h.svc.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	rec, err := h.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if rec.Status != transfer.StatusFailed || rec.Error != "transfer cancelled" {
		t.Errorf("expected running transfer to be cancelled, got %s %q", rec.Status, rec.Error)
	}

	if _, err := h.svc.Submit(ctx, crossChainRequest()); !errors.Is(err, ErrShuttingDown) {
		t.Errorf("expected ErrShuttingDown, got %v", err)
	}
}

func TestReadThrough(t *testing.T) {
	h := newHarness(t, &MockChainClient{}, &MockAttester{}, nil)
	ctx := context.Background()

	first, _ := h.svc.Execute(ctx, sameChainRequest())
	second, _ := h.svc.Execute(ctx, crossChainRequest())

	records, err := h.svc.List(ctx)
	if err != nil || len(records) != 2 {
		t.Fatalf("expected 2 records, got %d (%v)", len(records), err)
	}
	latest, err := h.svc.Latest(ctx)
	if err != nil || latest.ID != second.ID {
		t.Errorf("expected latest %s, got %v (%v)", second.ID, latest, err)
	}
	sameChain, err := h.svc.Latest(ctx, transferstore.WithChain(chain.BaseSepolia), transferstore.WithStatus(transfer.StatusCompleted))
	if err != nil || sameChain.ID != second.ID {
		t.Errorf("expected latest base record %s, got %v (%v)", second.ID, sameChain, err)
	}
	if got, err := h.svc.Get(ctx, first.ID); err != nil || got.TransferTxID != first.TransferTxID {
		t.Errorf("Get() returned %v (%v)", got, err)
	}
	if len(h.svc.Chains()) != len(chain.TestnetPresets()) {
		t.Errorf("expected %d chains, got %d", len(chain.TestnetPresets()), len(h.svc.Chains()))
	}
}

func TestIsTransientMintError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&transfer.TransactionRevertedError{TxHash: "0x1", Reason: "receipt status 0"}, true},
		{errors.New("failed to submit receiveMessage: nonce too low"), true},
		{errors.New("replacement transaction underpriced"), true},
		{errors.New("header not found"), true},
		{errors.New("Internal error"), true},
		{&transfer.UserRejectedError{Action: "mint", Err: errors.New("execution reverted")}, false},
		{&transfer.TransactionTimeoutError{TxHash: "0x1", Timeout: time.Minute}, false},
		{fmt.Errorf("wait: %w", context.Canceled), false},
		{errors.New("insufficient funds for gas"), false},
	}
	for _, tt := range tests {
		if got := isTransientMintError(tt.err); got != tt.want {
			t.Errorf("isTransientMintError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
