// Package transferstore persists transfer records. The postgres implementation is
// the system of record; the memory implementation backs tests and local runs.
package transferstore

import (
	"context"

	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

const defaultListLimit = 100

// Store defines the interface for transfer record persistence.
//
// Update merges the given fields, enforces the record status machine and
// always bumps updated_at. It fails with *transfer.NotFoundError when the id is
// unknown and with *transfer.InvalidTransitionError for terminal records.
type Store interface {
	Create(ctx context.Context, req *transfer.Request, opts ...CreateOption) (*transfer.Record, error)
	Update(ctx context.Context, id string, update transfer.Update) (*transfer.Record, error)
	Get(ctx context.Context, id string) (*transfer.Record, error)
	List(ctx context.Context, opts ...QueryOption) ([]*transfer.Record, error)
	Latest(ctx context.Context, opts ...QueryOption) (*transfer.Record, error)
}

// CreateOptions defines options for creating records
type CreateOptions struct {
	ResumedFrom string
}

// CreateOption is a functional option for creating records
type CreateOption func(*CreateOptions)

// WithResumedFrom links the new record to the failed record it continues.
func WithResumedFrom(id string) CreateOption {
	return func(opts *CreateOptions) {
		opts.ResumedFrom = id
	}
}

// QueryOptions defines options for querying records
type QueryOptions struct {
	Status      *transfer.Status
	WalletRef   *string
	Chain       *string
	ResumedFrom *string
	Limit       int
}

// QueryOption is a functional option for querying records
type QueryOption func(*QueryOptions)

// WithStatus filters by status
func WithStatus(status transfer.Status) QueryOption {
	return func(opts *QueryOptions) {
		opts.Status = &status
	}
}

// WithWalletRef filters records where ref is the source or destination wallet
func WithWalletRef(ref string) QueryOption {
	return func(opts *QueryOptions) {
		opts.WalletRef = &ref
	}
}

// WithChain filters records where chain is the source or destination chain
func WithChain(chain string) QueryOption {
	return func(opts *QueryOptions) {
		opts.Chain = &chain
	}
}

// WithSuccessorsOf filters records created to resume the transfer id
func WithSuccessorsOf(id string) QueryOption {
	return func(opts *QueryOptions) {
		opts.ResumedFrom = &id
	}
}

// WithLimit caps the number of returned records
func WithLimit(limit int) QueryOption {
	return func(opts *QueryOptions) {
		opts.Limit = limit
	}
}

func applyQueryOptions(opts []QueryOption) *QueryOptions {
	options := &QueryOptions{Limit: defaultListLimit}
	for _, opt := range opts {
		opt(options)
	}
	if options.Limit <= 0 {
		options.Limit = defaultListLimit
	}
	return options
}

func applyCreateOptions(opts []CreateOption) *CreateOptions {
	options := &CreateOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *QueryOptions) matches(rec *transfer.Record) bool {
	if o.Status != nil && rec.Status != *o.Status {
		return false
	}
	if o.WalletRef != nil && rec.SourceWalletRef != *o.WalletRef && rec.DestinationWalletRef != *o.WalletRef {
		return false
	}
	if o.Chain != nil && rec.SourceChain != *o.Chain && rec.DestinationChain != *o.Chain {
		return false
	}
	if o.ResumedFrom != nil && rec.ResumedFrom != *o.ResumedFrom {
		return false
	}
	return true
}
