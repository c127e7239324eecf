// Package service orchestrates transfers: it validates a request, persists
// the record and drives it through approve, burn, attestation and mint, or
// through a single token transfer when source and destination coincide.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/settle-rebalancer/internal/metrics"
	"github.com/chainsafe/settle-rebalancer/pkg/attestation"
	"github.com/chainsafe/settle-rebalancer/pkg/chain"
	"github.com/chainsafe/settle-rebalancer/pkg/config"
	"github.com/chainsafe/settle-rebalancer/pkg/ethereum"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
	"github.com/chainsafe/settle-rebalancer/pkg/transferstore"
)

// Contract methods called by the orchestrator.
const (
	sigApprove        = "approve(address,uint256)"
	sigDepositForBurn = "depositForBurn(uint256,uint32,bytes32,address,bytes32,uint256,uint32)"
	sigReceiveMessage = "receiveMessage(bytes,bytes)"
	sigTransfer       = "transfer(address,uint256)"
)

// Node and wallet error fragments that make a failed mint worth retrying.
var transientMintMarkers = []string{
	"execution reverted",
	"nonce too low",
	"replacement transaction underpriced",
	"header not found",
	"internal error",
}

// ErrShuttingDown is returned for flows started after Shutdown.
var ErrShuttingDown = errors.New("orchestrator is shutting down")

// Store is the narrow data-access interface for the orchestrator.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	Create(ctx context.Context, req *transfer.Request, opts ...transferstore.CreateOption) (*transfer.Record, error)
	Update(ctx context.Context, id string, update transfer.Update) (*transfer.Record, error)
	Get(ctx context.Context, id string) (*transfer.Record, error)
	List(ctx context.Context, opts ...transferstore.QueryOption) ([]*transfer.Record, error)
	Latest(ctx context.Context, opts ...transferstore.QueryOption) (*transfer.Record, error)
}

// ChainClient signs and submits transactions on the network last selected with SwitchTo.
type ChainClient interface {
	SwitchTo(ctx context.Context, chainID uint64) error
	CallContract(ctx context.Context, to common.Address, signature string, args []any, opts *ethereum.CallOpts) (common.Hash, error)
	WaitForReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	NativeBalance(ctx context.Context) (*big.Int, error)
}

// Attester waits for a burn message to be signed.
type Attester interface {
	Poll(ctx context.Context, sourceDomain uint32, txHash string) (*attestation.Attestation, error)
}

// Registry resolves chain identifiers.
type Registry interface {
	Get(id string) (chain.Config, error)
	List() []chain.Config
}

// ProgressFunc observes every persisted transition. It must not block.
type ProgressFunc func(rec *transfer.Record)

// Service defines the interface for the transfer orchestrator
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	// Execute runs the whole flow and returns the terminal record.
	Execute(ctx context.Context, req *transfer.Request) (*transfer.Record, error)
	// ResumeMint re-attempts the mint of a failed cross-chain transfer whose burn was mined.
	ResumeMint(ctx context.Context, id string) (*transfer.Record, error)
	// Submit creates the record and runs the flow in the background.
	Submit(ctx context.Context, req *transfer.Request) (*transfer.Record, error)
	// SubmitResume is ResumeMint run in the background.
	SubmitResume(ctx context.Context, id string) (*transfer.Record, error)
	// Cancel stops the running flow of a record.
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*transfer.Record, error)
	List(ctx context.Context, opts ...transferstore.QueryOption) ([]*transfer.Record, error)
	Latest(ctx context.Context, opts ...transferstore.QueryOption) (*transfer.Record, error)
	Chains() []chain.Config
	// Shutdown cancels running flows and waits for them to record their outcome.
	Shutdown(ctx context.Context) error
}

// Options tune the orchestrator.
type Options struct {
	// MinGasBalance is the native balance in wei required before any transaction.
	MinGasBalance    *big.Int
	MintMaxRetries   int
	MintRetryBackoff time.Duration
	DefaultSpeed     transfer.Speed
	Progress         ProgressFunc
}

// OptionsFromConfig converts bridge configuration into orchestrator options.
func OptionsFromConfig(cfg *config.BridgeConfig) (Options, error) {
	minGas, err := transfer.MinGasWei(cfg.MinGasBalance)
	if err != nil {
		return Options{}, err
	}
	return Options{
		MinGasBalance:    minGas,
		MintMaxRetries:   cfg.MintMaxRetries,
		MintRetryBackoff: cfg.MintRetryBackoff,
		DefaultSpeed:     transfer.Speed(cfg.DefaultSpeed),
	}, nil
}

type transferService struct {
	store    Store
	registry Registry
	client   ChainClient
	attester Attester
	opts     Options
	logger   *zap.Logger

	// chainMu serializes use of the client's active network between flows.
	chainMu sync.Mutex
	// resumeMu makes the successor check and create in prepareResume atomic.
	resumeMu sync.Mutex

	mu      sync.Mutex
	running map[string]context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

// NewService creates a new transfer orchestrator
func NewService(
	store Store,
	registry Registry,
	client ChainClient,
	attester Attester,
	opts Options,
	logger *zap.Logger,
) Service {
	if opts.MinGasBalance == nil {
		opts.MinGasBalance = new(big.Int)
	}
	if opts.DefaultSpeed == "" {
		opts.DefaultSpeed = transfer.SpeedFast
	}
	return &transferService{
		store:    store,
		registry: registry,
		client:   client,
		attester: attester,
		opts:     opts,
		logger:   logger,
		running:  make(map[string]context.CancelFunc),
	}
}

// flow is one execution of a record.
type flow struct {
	rec  *transfer.Record
	src  chain.Config
	dst  chain.Config
	dest common.Address
}

func (s *transferService) Execute(ctx context.Context, req *transfer.Request) (*transfer.Record, error) {
	f, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, f)
}

func (s *transferService) Submit(ctx context.Context, req *transfer.Request) (*transfer.Record, error) {
	f, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.spawn(ctx, f)
}

func (s *transferService) ResumeMint(ctx context.Context, id string) (*transfer.Record, error) {
	f, err := s.prepareResume(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, f)
}

func (s *transferService) SubmitResume(ctx context.Context, id string) (*transfer.Record, error) {
	f, err := s.prepareResume(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.spawn(ctx, f)
}

// Cancel stops the flow running id. A non-terminal record with no running
// flow, left behind by a restart, is marked FAILED directly.
func (s *transferService) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	cancel, ok := s.running[id]
	s.mu.Unlock()
	if ok {
		cancel()
		return nil
	}

	rec, err := s.store.Update(ctx, id, transfer.Update{
		Status: transfer.Ptr(transfer.StatusFailed),
		Error:  transfer.Ptr(transfer.ErrCancelled.Error()),
	})
	if err != nil {
		return err
	}
	s.notify(rec)
	return nil
}

func (s *transferService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	for _, cancel := range s.running {
		cancel()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// execute runs f on the caller's goroutine.
func (s *transferService) execute(ctx context.Context, f *flow) (*transfer.Record, error) {
	flowCtx, done, err := s.track(ctx, f.rec.ID)
	if err != nil {
		return s.fail(ctx, f, err), err
	}
	defer done()
	return s.run(flowCtx, f)
}

// spawn runs f in the background and returns the record as it was created.
func (s *transferService) spawn(ctx context.Context, f *flow) (*transfer.Record, error) {
	created := f.rec.Clone()

	// The flow outlives the submitting request.
	flowCtx, done, err := s.track(context.WithoutCancel(ctx), f.rec.ID)
	if err != nil {
		s.fail(ctx, f, err)
		return nil, err
	}
	go func() {
		defer done()
		_, _ = s.run(flowCtx, f)
	}()
	return created, nil
}

// track registers a cancellable flow for id. The returned func must be called
// once the flow has recorded its outcome.
func (s *transferService) track(ctx context.Context, id string) (context.Context, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, ErrShuttingDown
	}

	ctx, cancel := context.WithCancel(ctx)
	s.running[id] = cancel
	s.wg.Add(1)

	return ctx, func() {
		cancel()
		s.mu.Lock()
		delete(s.running, id)
		s.mu.Unlock()
		s.wg.Done()
	}, nil
}

func (s *transferService) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *transferService) Get(ctx context.Context, id string) (*transfer.Record, error) {
	return s.store.Get(ctx, id)
}

func (s *transferService) List(ctx context.Context, opts ...transferstore.QueryOption) ([]*transfer.Record, error) {
	return s.store.List(ctx, opts...)
}

func (s *transferService) Latest(ctx context.Context, opts ...transferstore.QueryOption) (*transfer.Record, error) {
	return s.store.Latest(ctx, opts...)
}

func (s *transferService) Chains() []chain.Config {
	return s.registry.List()
}

// prepare validates req, resolves both chains and creates the PENDING record.
// Nothing is persisted when validation fails.
func (s *transferService) prepare(ctx context.Context, req *transfer.Request) (*flow, error) {
	if s.isClosed() {
		return nil, ErrShuttingDown
	}
	if req == nil {
		return nil, &transfer.InvalidRequestError{Field: "request", Reason: "is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src, err := s.registry.Get(req.SourceChain)
	if err != nil {
		return nil, err
	}
	dst, err := s.registry.Get(req.DestinationChain)
	if err != nil {
		return nil, err
	}
	dest, err := transfer.ParseAddress(req.DestinationAddress)
	if err != nil {
		return nil, &transfer.InvalidRequestError{Field: "destinationAddress", Reason: err.Error()}
	}

	normalized := *req
	if normalized.Speed == "" {
		normalized.Speed = s.opts.DefaultSpeed
	}

	rec, err := s.store.Create(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer record: %w", err)
	}
	s.notify(rec)

	return &flow{rec: rec, src: src, dst: dst, dest: dest}, nil
}

// prepareResume creates a record that continues the failed transfer id from
// its mined burn. The failed record itself is left untouched.
func (s *transferService) prepareResume(ctx context.Context, id string) (*flow, error) {
	if s.isClosed() {
		return nil, ErrShuttingDown
	}
	prev, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case prev.Kind != transfer.KindCrossChain:
		return nil, fmt.Errorf("%w: %s is a same-chain transfer", transfer.ErrNotResumable, id)
	case prev.Status != transfer.StatusFailed:
		return nil, fmt.Errorf("%w: %s is %s", transfer.ErrNotResumable, id, prev.Status)
	case prev.BurnTxID == "":
		return nil, fmt.Errorf("%w: %s has no burn transaction", transfer.ErrNotResumable, id)
	}

	src, err := s.registry.Get(prev.SourceChain)
	if err != nil {
		return nil, err
	}
	dst, err := s.registry.Get(prev.DestinationChain)
	if err != nil {
		return nil, err
	}
	dest, err := transfer.ParseAddress(prev.DestinationAddress)
	if err != nil {
		return nil, &transfer.InvalidRequestError{Field: "destinationAddress", Reason: err.Error()}
	}

	rec, err := s.createSuccessor(ctx, prev)
	if err != nil {
		return nil, err
	}
	f := &flow{rec: rec, src: src, dst: dst, dest: dest}
	s.notify(rec)

	carried := transfer.Update{
		Status:      transfer.Ptr(transfer.StatusAttesting),
		ApproveTxID: transfer.Ptr(prev.ApproveTxID),
		BurnTxID:    transfer.Ptr(prev.BurnTxID),
	}
	if prev.MessageBytes != "" && prev.Attestation != "" {
		carried.Status = transfer.Ptr(transfer.StatusMinting)
		carried.MessageBytes = transfer.Ptr(prev.MessageBytes)
		carried.MessageHash = transfer.Ptr(prev.MessageHash)
		carried.Attestation = transfer.Ptr(prev.Attestation)
	}
	if err := s.advance(ctx, f, carried); err != nil {
		s.fail(ctx, f, err)
		return nil, err
	}

	s.logger.Info("Resuming transfer mint",
		zap.String("transfer_id", rec.ID),
		zap.String("resumed_from", prev.ID),
		zap.String("burn_tx", prev.BurnTxID),
		zap.String("status", string(rec.Status)))
	return f, nil
}

// createSuccessor creates the record resuming prev unless another resume of
// prev is still running or already minted. Failed resumes do not block.
func (s *transferService) createSuccessor(ctx context.Context, prev *transfer.Record) (*transfer.Record, error) {
	s.resumeMu.Lock()
	defer s.resumeMu.Unlock()

	successors, err := s.store.List(ctx, transferstore.WithSuccessorsOf(prev.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes of %s: %w", prev.ID, err)
	}
	for _, succ := range successors {
		if succ.Status != transfer.StatusFailed {
			return nil, fmt.Errorf("%w: %s already resumed by %s (%s)", transfer.ErrNotResumable, prev.ID, succ.ID, succ.Status)
		}
	}

	rec, err := s.store.Create(ctx, prev.Request(), transferstore.WithResumedFrom(prev.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer record: %w", err)
	}
	return rec, nil
}

// run drives f to a terminal status. On failure the record is marked FAILED
// and the causing error is returned unchanged.
func (s *transferService) run(ctx context.Context, f *flow) (*transfer.Record, error) {
	metrics.InFlightTransfers.Inc()
	defer metrics.InFlightTransfers.Dec()

	var err error
	if f.rec.Kind == transfer.KindSameChain {
		err = s.runSameChain(ctx, f)
	} else {
		err = s.runCrossChain(ctx, f)
	}
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", transfer.ErrCancelled, err)
		}
		return s.fail(ctx, f, err), err
	}

	metrics.TransfersTotal.WithLabelValues(string(f.rec.Kind), string(transfer.StatusCompleted)).Inc()
	metrics.TransferDuration.WithLabelValues(string(f.rec.Kind)).Observe(time.Since(f.rec.CreatedAt).Seconds())
	metrics.TransferAmount.WithLabelValues(f.rec.SourceChain, f.rec.DestinationChain).
		Observe(decimal.NewFromBigInt(f.rec.Amount, -transfer.TokenDecimals).InexactFloat64())
	return f.rec, nil
}

func (s *transferService) runCrossChain(ctx context.Context, f *flow) error {
	if f.rec.Status == transfer.StatusPending {
		if err := s.burn(ctx, f); err != nil {
			return err
		}
	}

	if f.rec.Attestation == "" {
		if err := s.attest(ctx, f); err != nil {
			return err
		}
	}

	return s.mint(ctx, f)
}

// burn approves the burn messenger and burns the amount on the source chain.
func (s *transferService) burn(ctx context.Context, f *flow) error {
	s.chainMu.Lock()
	defer s.chainMu.Unlock()

	if err := s.switchAndCheckGas(ctx, f.src); err != nil {
		return err
	}

	amount := f.rec.Amount
	if err := s.advance(ctx, f, transfer.Update{Status: transfer.Ptr(transfer.StatusApproving)}); err != nil {
		return err
	}
	if err := s.send(ctx, f, "approve", f.src, f.src.TokenAddress, sigApprove,
		[]any{f.src.BurnMessengerAddress, amount}); err != nil {
		return err
	}

	if err := s.advance(ctx, f, transfer.Update{Status: transfer.Ptr(transfer.StatusBurning)}); err != nil {
		return err
	}
	// once broadcast the burn hash is on the record, so a failed wait below
	// still leaves the transfer resumable
	if err := s.send(ctx, f, "burn", f.src, f.src.BurnMessengerAddress, sigDepositForBurn, []any{
		amount,
		f.dst.DomainID,
		transfer.EncodeMintRecipient(f.dest),
		f.src.TokenAddress,
		[32]byte{},
		transfer.MaxFee(amount),
		f.rec.Speed.FinalityThreshold(),
	}); err != nil {
		return err
	}

	return s.advance(ctx, f, transfer.Update{Status: transfer.Ptr(transfer.StatusAttesting)})
}

func (s *transferService) attest(ctx context.Context, f *flow) error {
	start := time.Now()
	att, err := s.attester.Poll(ctx, f.src.DomainID, f.rec.BurnTxID)
	if err != nil {
		return err
	}
	metrics.StepDuration.WithLabelValues("attestation").Observe(time.Since(start).Seconds())

	return s.advance(ctx, f, transfer.Update{
		Status:       transfer.Ptr(transfer.StatusMinting),
		MessageBytes: transfer.Ptr(att.Message),
		MessageHash:  transfer.Ptr(att.MessageHash),
		Attestation:  transfer.Ptr(att.Attestation),
	})
}

// mint submits receiveMessage on the destination chain, retrying transient
// failures with a linear backoff.
func (s *transferService) mint(ctx context.Context, f *flow) error {
	message, err := hexutil.Decode(f.rec.MessageBytes)
	if err != nil {
		return &transfer.MalformedAttestationError{TxHash: f.rec.BurnTxID, Reason: "stored message is not hex"}
	}
	signature, err := hexutil.Decode(f.rec.Attestation)
	if err != nil {
		return &transfer.MalformedAttestationError{TxHash: f.rec.BurnTxID, Reason: "stored attestation is not hex"}
	}

	s.chainMu.Lock()
	defer s.chainMu.Unlock()

	if err := s.switchTo(ctx, f.dst); err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		err = s.send(ctx, f, "mint", f.dst, f.dst.MintReceiverAddress, sigReceiveMessage, []any{message, signature})
		if err == nil {
			break
		}
		if attempt >= s.opts.MintMaxRetries || !isTransientMintError(err) || ctx.Err() != nil {
			return err
		}

		backoff := s.opts.MintRetryBackoff * time.Duration(attempt+1)
		metrics.MintRetries.Inc()
		s.logger.Warn("Mint failed, retrying",
			zap.String("transfer_id", f.rec.ID),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return s.advance(ctx, f, transfer.Update{Status: transfer.Ptr(transfer.StatusCompleted)})
}

func (s *transferService) runSameChain(ctx context.Context, f *flow) error {
	s.chainMu.Lock()
	defer s.chainMu.Unlock()

	if err := s.switchAndCheckGas(ctx, f.src); err != nil {
		return err
	}
	if err := s.advance(ctx, f, transfer.Update{Status: transfer.Ptr(transfer.StatusTransferring)}); err != nil {
		return err
	}
	if err := s.send(ctx, f, "transfer", f.src, f.src.TokenAddress, sigTransfer, []any{f.dest, f.rec.Amount}); err != nil {
		return err
	}
	return s.advance(ctx, f, transfer.Update{Status: transfer.Ptr(transfer.StatusCompleted)})
}

func (s *transferService) switchTo(ctx context.Context, c chain.Config) error {
	start := time.Now()
	defer func() { metrics.StepDuration.WithLabelValues("switch").Observe(time.Since(start).Seconds()) }()
	return s.client.SwitchTo(ctx, c.ChainID)
}

// switchAndCheckGas selects c and verifies the signer can pay for gas on it.
func (s *transferService) switchAndCheckGas(ctx context.Context, c chain.Config) error {
	if err := s.switchTo(ctx, c); err != nil {
		return err
	}
	balance, err := s.client.NativeBalance(ctx)
	if err != nil {
		return err
	}
	if balance.Cmp(s.opts.MinGasBalance) < 0 {
		return &transfer.InsufficientGasError{
			Chain:    c.ID,
			Balance:  balance,
			Required: new(big.Int).Set(s.opts.MinGasBalance),
		}
	}
	return nil
}

// send submits a contract call, records its hash on the transfer and waits
// for it to be mined.
func (s *transferService) send(ctx context.Context, f *flow, step string, c chain.Config, to common.Address, sig string, args []any) error {
	start := time.Now()
	defer func() { metrics.StepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds()) }()

	hash, err := s.submit(ctx, step, c, to, sig, args)
	if err != nil {
		return err
	}
	if err := s.recordTx(ctx, f, step, hash); err != nil {
		return err
	}
	return s.wait(ctx, step, c, hash)
}

func (s *transferService) submit(ctx context.Context, step string, c chain.Config, to common.Address, sig string, args []any) (common.Hash, error) {
	hash, err := s.client.CallContract(ctx, to, sig, args, nil)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues(c.ID, step, "rejected").Inc()
		return common.Hash{}, err
	}
	return hash, nil
}

func (s *transferService) wait(ctx context.Context, step string, c chain.Config, hash common.Hash) error {
	receipt, err := s.client.WaitForReceipt(ctx, hash)
	if err != nil {
		metrics.TransactionsSent.WithLabelValues(c.ID, step, "failed").Inc()
		return err
	}
	metrics.TransactionsSent.WithLabelValues(c.ID, step, "success").Inc()
	metrics.GasUsed.WithLabelValues(step).Observe(float64(receipt.GasUsed))
	return nil
}

// recordTx stores the hash of a broadcast transaction without changing the
// status. The write ignores cancellation of ctx: the transaction is already
// out and may still be mined.
func (s *transferService) recordTx(ctx context.Context, f *flow, step string, hash common.Hash) error {
	tx := transfer.Ptr(hash.Hex())
	var u transfer.Update
	switch step {
	case "approve":
		u.ApproveTxID = tx
	case "burn":
		u.BurnTxID = tx
	case "mint":
		u.MintTxID = tx
	case "transfer":
		u.TransferTxID = tx
	}

	rec, err := s.store.Update(context.WithoutCancel(ctx), f.rec.ID, u)
	if err != nil {
		s.logger.Error("Failed to record broadcast transaction",
			zap.String("transfer_id", f.rec.ID),
			zap.String("step", step),
			zap.String("tx_hash", hash.Hex()),
			zap.Error(err))
		return fmt.Errorf("failed to record %s transaction %s: %w", step, hash.Hex(), err)
	}
	f.rec = rec
	return nil
}

// advance persists u and refreshes the flow's view of the record.
func (s *transferService) advance(ctx context.Context, f *flow, u transfer.Update) error {
	rec, err := s.store.Update(ctx, f.rec.ID, u)
	if err != nil {
		return fmt.Errorf("failed to update transfer %s: %w", f.rec.ID, err)
	}
	f.rec = rec
	s.notify(rec)
	return nil
}

// fail marks the record FAILED with cause. The write ignores cancellation of
// ctx so a cancelled flow is still recorded.
func (s *transferService) fail(ctx context.Context, f *flow, cause error) *transfer.Record {
	metrics.TransfersTotal.WithLabelValues(string(f.rec.Kind), string(transfer.StatusFailed)).Inc()
	metrics.ErrorsTotal.WithLabelValues("orchestrator", errorKind(cause)).Inc()

	rec, err := s.store.Update(context.WithoutCancel(ctx), f.rec.ID, transfer.Update{
		Status: transfer.Ptr(transfer.StatusFailed),
		Error:  transfer.Ptr(failureMessage(cause)),
	})
	if err != nil {
		s.logger.Error("Failed to record transfer failure",
			zap.String("transfer_id", f.rec.ID),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return f.rec
	}
	f.rec = rec
	s.notify(rec)
	return rec
}

func (s *transferService) notify(rec *transfer.Record) {
	if s.opts.Progress != nil {
		s.opts.Progress(rec.Clone())
	}
}

func failureMessage(err error) string {
	if errors.Is(err, transfer.ErrCancelled) {
		return transfer.ErrCancelled.Error()
	}
	return err.Error()
}

func isTransientMintError(err error) bool {
	switch {
	case errors.Is(err, transfer.ErrUserRejected),
		errors.Is(err, transfer.ErrTransactionTimeout),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, transfer.ErrTransactionReverted):
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMintMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, transfer.ErrCancelled):
		return "cancelled"
	case errors.Is(err, transfer.ErrInsufficientGas):
		return "insufficient_gas"
	case errors.Is(err, transfer.ErrUserRejected), errors.Is(err, transfer.ErrChainSwitchRejected):
		return "rejected"
	case errors.Is(err, transfer.ErrUnsupportedChain):
		return "unsupported_chain"
	case errors.Is(err, transfer.ErrTransactionReverted):
		return "reverted"
	case errors.Is(err, transfer.ErrTransactionTimeout):
		return "timeout"
	case errors.Is(err, transfer.ErrAttestationTimeout), errors.Is(err, transfer.ErrMalformedAttestation):
		return "attestation"
	default:
		return "other"
	}
}
