// Package reconciler repairs transfer state left behind by a previous run.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/settle-rebalancer/internal/metrics"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
	"github.com/chainsafe/settle-rebalancer/pkg/transferstore"
)

// InterruptedMessage is recorded on transfers whose flow died with the process.
const InterruptedMessage = "transfer interrupted by restart"

const pageSize = 100

// Store is the subset of the transfer store the reconciler needs.
type Store interface {
	List(ctx context.Context, opts ...transferstore.QueryOption) ([]*transfer.Record, error)
	Update(ctx context.Context, id string, update transfer.Update) (*transfer.Record, error)
}

// Reconciler marks orphaned transfers as failed so they can be inspected and resumed.
type Reconciler struct {
	store  Store
	logger *zap.Logger
}

// New creates a new Reconciler
func New(store Store, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// FailOrphaned moves every non-terminal record to FAILED. It must run before
// the orchestrator starts flows; a record in flight would be failed too.
// Records that already carry a burn can afterwards be resumed from the mint.
func (r *Reconciler) FailOrphaned(ctx context.Context) (int, error) {
	r.logger.Info("Starting transfer reconciliation")
	start := time.Now()

	failed := 0
	for _, status := range []transfer.Status{
		transfer.StatusPending,
		transfer.StatusApproving,
		transfer.StatusBurning,
		transfer.StatusAttesting,
		transfer.StatusMinting,
		transfer.StatusTransferring,
	} {
		n, err := r.failStatus(ctx, status)
		failed += n
		if err != nil {
			return failed, err
		}
	}

	r.logger.Info("Transfer reconciliation completed",
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
	return failed, nil
}

func (r *Reconciler) failStatus(ctx context.Context, status transfer.Status) (int, error) {
	failed := 0
	for {
		records, err := r.store.List(ctx, transferstore.WithStatus(status), transferstore.WithLimit(pageSize))
		if err != nil {
			return failed, fmt.Errorf("failed to list %s transfers: %w", status, err)
		}

		for _, rec := range records {
			_, err := r.store.Update(ctx, rec.ID, transfer.Update{
				Status: transfer.Ptr(transfer.StatusFailed),
				Error:  transfer.Ptr(InterruptedMessage),
			})
			if errors.Is(err, transfer.ErrInvalidTransition) {
				// finished between list and update
				continue
			}
			if err != nil {
				return failed, fmt.Errorf("failed to mark transfer %s failed: %w", rec.ID, err)
			}

			failed++
			metrics.ErrorsTotal.WithLabelValues("reconciler", "interrupted").Inc()
			r.logger.Warn("Marked interrupted transfer as failed",
				zap.String("transfer_id", rec.ID),
				zap.String("status", string(status)),
				zap.String("burn_tx", rec.BurnTxID),
				zap.Bool("resumable", rec.Kind == transfer.KindCrossChain && rec.BurnTxID != ""))
		}

		if len(records) < pageSize {
			return failed, nil
		}
	}
}
