// Package memory holds the process-local customer store the HTTP service runs
// on. The record set is fixed once seeded; only fields of existing records
// change afterwards.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"risk-dashboard/internal/domain/customer"
)

type record struct {
	mu   sync.Mutex
	data *customer.Customer
}

type CustomerRepository struct {
	// index and order are written only in the constructor.
	index  map[string]*record
	order  []*record
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

// NewCustomerRepository validates and copies the seed customers. A duplicate
// id or a record failing ingestion validation rejects the whole seed.
func NewCustomerRepository(seed []*customer.Customer, logger *slog.Logger) (*CustomerRepository, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	repo := &CustomerRepository{
		index:  make(map[string]*record, len(seed)),
		order:  make([]*record, 0, len(seed)),
		logger: logger.With(slog.String("component", "MemoryCustomerRepository")),
	}

	for i, c := range seed {
		if err := customer.Validate(c); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		if _, exists := repo.index[c.CustomerID]; exists {
			return nil, fmt.Errorf("%w: %s", customer.ErrDuplicateCustomerID, c.CustomerID)
		}
		r := &record{data: c.Clone()}
		repo.index[c.CustomerID] = r
		repo.order = append(repo.order, r)
	}

	repo.logger.Info("Customer store seeded", slog.Int("count", len(repo.order)))
	return repo, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*customer.Customer, 0, len(r.order))
	for _, rec := range r.order {
		rec.mu.Lock()
		out = append(out, rec.data.Clone())
		rec.mu.Unlock()
	}
	return out, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID string) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, ok := r.index[customerID]
	if !ok {
		return nil, customer.ErrNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.data.Clone(), nil
}

// Update holds the record lock across read, fn and write, so two concurrent
// updates of the same id are serialized. fn works on a copy; the copy is
// committed only when fn returns nil.
func (r *CustomerRepository) Update(ctx context.Context, customerID string, fn customer.MutateFunc) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, ok := r.index[customerID]
	if !ok {
		return nil, customer.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	working := rec.data.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	if working.CustomerID != customerID {
		return nil, fmt.Errorf("%w: customer id cannot change from %s to %s", customer.ErrInvalidCustomerData, customerID, working.CustomerID)
	}
	rec.data = working
	r.logger.DebugContext(ctx, "Customer record updated", slog.String("customerID", customerID))
	return working.Clone(), nil
}

func (r *CustomerRepository) Len() int {
	return len(r.order)
}
