package transferstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

type pgStore struct {
	db  *bun.DB
	now func() time.Time
}

// NewStore creates a new postgres implementation of the transfer store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db, now: utcNow}
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *pgStore) Create(ctx context.Context, req *transfer.Request, opts ...CreateOption) (*transfer.Record, error) {
	options := applyCreateOptions(opts)

	rec := transfer.NewRecord(uuid.NewString(), req, s.now())
	rec.ResumedFrom = options.ResumedFrom

	if _, err := s.db.NewInsert().Model(toTransferDao(rec)).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}
	return rec, nil
}

func (s *pgStore) Update(ctx context.Context, id string, update transfer.Update) (*transfer.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &transfer.NotFoundError{ID: id}
	}

	var out *transfer.Record
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		dao := new(TransferDao)
		err := tx.NewSelect().
			Model(dao).
			Where("id = ?", id).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &transfer.NotFoundError{ID: id}
			}
			return fmt.Errorf("failed to lock transfer: %w", err)
		}

		rec := toRecord(dao)
		if err := rec.Apply(update, s.now()); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().Model(toTransferDao(rec)).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("failed to update transfer: %w", err)
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *pgStore) Get(ctx context.Context, id string) (*transfer.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &transfer.NotFoundError{ID: id}
	}

	dao := new(TransferDao)
	err := s.db.NewSelect().Model(dao).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &transfer.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return toRecord(dao), nil
}

func (s *pgStore) List(ctx context.Context, opts ...QueryOption) ([]*transfer.Record, error) {
	options := applyQueryOptions(opts)

	var daos []TransferDao
	query := s.db.NewSelect().Model(&daos)
	if options.Status != nil {
		query = query.Where("status = ?", string(*options.Status))
	}
	if options.WalletRef != nil {
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("source_wallet_ref = ?", *options.WalletRef).
				WhereOr("destination_wallet_ref = ?", *options.WalletRef)
		})
	}
	if options.Chain != nil {
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("source_chain = ?", *options.Chain).
				WhereOr("destination_chain = ?", *options.Chain)
		})
	}
	if options.ResumedFrom != nil {
		if _, err := uuid.Parse(*options.ResumedFrom); err != nil {
			return []*transfer.Record{}, nil
		}
		query = query.Where("resumed_from = ?", *options.ResumedFrom)
	}

	err := query.
		Order("created_at DESC", "id DESC").
		Limit(options.Limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	records := make([]*transfer.Record, len(daos))
	for i := range daos {
		records[i] = toRecord(&daos[i])
	}
	return records, nil
}

func (s *pgStore) Latest(ctx context.Context, opts ...QueryOption) (*transfer.Record, error) {
	records, err := s.List(ctx, append(opts, WithLimit(1))...)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &transfer.NotFoundError{ID: "latest"}
	}
	return records[0], nil
}
