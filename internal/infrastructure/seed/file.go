package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"risk-dashboard/internal/domain/customer"

	"gopkg.in/yaml.v3"
)

// document is the on-disk layout:
//
//	customers:
//	  - customerId: CUST1001
//	    name: Alice Johnson
//	    ...
type document struct {
	Customers []*customer.Customer `yaml:"customers"`
}

type FileSource struct {
	Path string
}

var _ customer.SeedSource = FileSource{}

func (s FileSource) LoadCustomers(ctx context.Context) ([]*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Path == "" {
		return nil, errors.New("seed file path is empty")
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	customers, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", s.Path, err)
	}
	return customers, nil
}

// Decode reads a YAML customer document and validates every record.
func Decode(r io.Reader) ([]*customer.Customer, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []*customer.Customer{}, nil
		}
		return nil, fmt.Errorf("%w: %w", customer.ErrInvalidCustomerData, err)
	}

	seen := make(map[string]struct{}, len(doc.Customers))
	for i, c := range doc.Customers {
		if err := customer.Validate(c); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[c.CustomerID]; dup {
			return nil, fmt.Errorf("record %d: %w: %s", i, customer.ErrDuplicateCustomerID, c.CustomerID)
		}
		seen[c.CustomerID] = struct{}{}
	}
	if doc.Customers == nil {
		doc.Customers = []*customer.Customer{}
	}
	return doc.Customers, nil
}
