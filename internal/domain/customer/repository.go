package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrInvalidStatus = errors.New("invalid status")

	ErrInvalidCustomerData = errors.New("invalid customer data")

	ErrDuplicateCustomerID = errors.New("duplicate customer ID")
)

// MutateFunc changes a customer in place. Returning an error aborts the
// update and leaves the stored record untouched.
type MutateFunc func(c *Customer) error

type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*Customer, error)

	FindByID(ctx context.Context, customerID string) (*Customer, error)

	// Update applies fn atomically for customerID and returns a copy of the
	// stored result.
	Update(ctx context.Context, customerID string, fn MutateFunc) (*Customer, error)
}

// SeedSource supplies the records a store is built from at startup.
type SeedSource interface {
	LoadCustomers(ctx context.Context) ([]*Customer, error)
}
