package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/settle-rebalancer/pkg/chain"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
	"github.com/chainsafe/settle-rebalancer/pkg/transferstore"
)

const serviceName = "TransferService"

const attestationDisplaySize = 16

// logService wraps Service with automatic logging of all mutating method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the transfer Service.
// It logs method entry/exit, duration, errors and the resulting record.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Execute wraps the service method with logging
func (ls *logService) Execute(ctx context.Context, req *transfer.Request) (rec *transfer.Record, err error) {
	start := time.Now()

	ls.logger.Info("Execute started",
		append(ls.methodFields("Execute"), requestFields(req)...)...)

	defer func() {
		ls.finish("Execute", start, rec, err)
	}()

	return ls.svc.Execute(ctx, req)
}

// ResumeMint wraps the service method with logging
func (ls *logService) ResumeMint(ctx context.Context, id string) (rec *transfer.Record, err error) {
	start := time.Now()

	ls.logger.Info("ResumeMint started",
		append(ls.methodFields("ResumeMint"), zap.String("resumed_from", id))...)

	defer func() {
		ls.finish("ResumeMint", start, rec, err, zap.String("resumed_from", id))
	}()

	return ls.svc.ResumeMint(ctx, id)
}

// Submit wraps the service method with logging
func (ls *logService) Submit(ctx context.Context, req *transfer.Request) (rec *transfer.Record, err error) {
	start := time.Now()

	ls.logger.Info("Submit started",
		append(ls.methodFields("Submit"), requestFields(req)...)...)

	defer func() {
		ls.finish("Submit", start, rec, err)
	}()

	return ls.svc.Submit(ctx, req)
}

// SubmitResume wraps the service method with logging
func (ls *logService) SubmitResume(ctx context.Context, id string) (rec *transfer.Record, err error) {
	start := time.Now()

	ls.logger.Info("SubmitResume started",
		append(ls.methodFields("SubmitResume"), zap.String("resumed_from", id))...)

	defer func() {
		ls.finish("SubmitResume", start, rec, err, zap.String("resumed_from", id))
	}()

	return ls.svc.SubmitResume(ctx, id)
}

// Cancel wraps the service method with logging
func (ls *logService) Cancel(ctx context.Context, id string) (err error) {
	start := time.Now()

	defer func() {
		fields := append(ls.methodFields("Cancel"),
			zap.String("transfer_id", id),
			zap.Duration("duration", time.Since(start)))
		if err != nil {
			ls.logger.Warn("Cancel failed", append(fields, zap.Error(err))...)
			return
		}
		ls.logger.Info("Cancel completed", fields...)
	}()

	return ls.svc.Cancel(ctx, id)
}

func (ls *logService) Get(ctx context.Context, id string) (*transfer.Record, error) {
	return ls.svc.Get(ctx, id)
}

func (ls *logService) List(ctx context.Context, opts ...transferstore.QueryOption) ([]*transfer.Record, error) {
	return ls.svc.List(ctx, opts...)
}

func (ls *logService) Latest(ctx context.Context, opts ...transferstore.QueryOption) (*transfer.Record, error) {
	return ls.svc.Latest(ctx, opts...)
}

func (ls *logService) Chains() []chain.Config {
	return ls.svc.Chains()
}

// Shutdown wraps the service method with logging
func (ls *logService) Shutdown(ctx context.Context) (err error) {
	start := time.Now()
	ls.logger.Info("Shutdown started", ls.methodFields("Shutdown")...)

	defer func() {
		fields := append(ls.methodFields("Shutdown"), zap.Duration("duration", time.Since(start)))
		if err != nil {
			ls.logger.Error("Shutdown failed", append(fields, zap.Error(err))...)
			return
		}
		ls.logger.Info("Shutdown completed", fields...)
	}()

	return ls.svc.Shutdown(ctx)
}

func (ls *logService) methodFields(method string) []zap.Field {
	return []zap.Field{
		zap.String("service", serviceName),
		zap.String("method", method),
	}
}

func (ls *logService) finish(method string, start time.Time, rec *transfer.Record, err error, extra ...zap.Field) {
	fields := append(ls.methodFields(method), extra...)
	fields = append(fields, zap.Duration("duration", time.Since(start)))
	if rec != nil {
		fields = append(fields, recordFields(rec)...)
	}

	if err != nil {
		ls.logger.Error(method+" failed", append(fields, zap.Error(err))...)
		return
	}
	ls.logger.Info(method+" completed", fields...)
}

func requestFields(req *transfer.Request) []zap.Field {
	if req == nil {
		return nil
	}
	amount := "<nil>"
	if req.Amount != nil {
		amount = transfer.FormatAmount(req.Amount, transfer.TokenDecimals)
	}
	return []zap.Field{
		zap.String("source_chain", req.SourceChain),
		zap.String("destination_chain", req.DestinationChain),
		zap.String("amount", amount),
		zap.String("destination_address", req.DestinationAddress),
		zap.String("speed", string(req.Speed)),
	}
}

func recordFields(rec *transfer.Record) []zap.Field {
	fields := []zap.Field{
		zap.String("transfer_id", rec.ID),
		zap.String("kind", string(rec.Kind)),
		zap.String("status", string(rec.Status)),
	}
	for _, f := range []struct{ key, val string }{
		{"approve_tx", rec.ApproveTxID},
		{"burn_tx", rec.BurnTxID},
		{"mint_tx", rec.MintTxID},
		{"transfer_tx", rec.TransferTxID},
		{"message_hash", rec.MessageHash},
		{"resumed_from", rec.ResumedFrom},
	} {
		if f.val != "" {
			fields = append(fields, zap.String(f.key, f.val))
		}
	}
	if rec.Attestation != "" {
		fields = append(fields, zap.String("attestation", redactAttestation(rec.Attestation)))
	}
	return fields
}

// redactAttestation shortens attestation signatures to their edges and length
func redactAttestation(att string) string {
	n := len(att)
	if n > attestationDisplaySize {
		return fmt.Sprintf("%s...%s (%d bytes)", att[:8], att[n-4:], n)
	}
	return fmt.Sprintf("<%d bytes>", n)
}
