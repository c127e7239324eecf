package transferstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*transfer.Record
	order   []string
	now     func() time.Time
}

// NewMemoryStore creates an in-memory transfer store. Records do not survive restarts.
func NewMemoryStore() *memoryStore {
	return &memoryStore{
		records: make(map[string]*transfer.Record),
		now:     utcNow,
	}
}

func (s *memoryStore) Create(_ context.Context, req *transfer.Request, opts ...CreateOption) (*transfer.Record, error) {
	options := applyCreateOptions(opts)

	rec := transfer.NewRecord(uuid.NewString(), req, s.now())
	rec.ResumedFrom = options.ResumedFrom

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec.Clone(), nil
}

func (s *memoryStore) Update(_ context.Context, id string, update transfer.Update) (*transfer.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[id]
	if !ok {
		return nil, &transfer.NotFoundError{ID: id}
	}

	// Apply on a copy so a rejected update leaves the stored record untouched.
	next := current.Clone()
	if err := next.Apply(update, s.now()); err != nil {
		return nil, err
	}
	s.records[id] = next
	return next.Clone(), nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*transfer.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, &transfer.NotFoundError{ID: id}
	}
	return rec.Clone(), nil
}

func (s *memoryStore) List(_ context.Context, opts ...QueryOption) ([]*transfer.Record, error) {
	options := applyQueryOptions(opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*transfer.Record, 0, options.Limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < options.Limit; i-- {
		rec := s.records[s.order[i]]
		if options.matches(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *memoryStore) Latest(ctx context.Context, opts ...QueryOption) (*transfer.Record, error) {
	records, err := s.List(ctx, append(opts, WithLimit(1))...)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &transfer.NotFoundError{ID: "latest"}
	}
	return records[0], nil
}
