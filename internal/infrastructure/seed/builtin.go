// Package seed provides the record sets the customer store is built from.
package seed

import (
	"context"

	"risk-dashboard/internal/domain/customer"
)

type BuiltinSource struct{}

var _ customer.SeedSource = BuiltinSource{}

func (BuiltinSource) LoadCustomers(ctx context.Context) ([]*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return BuiltinCustomers(), nil
}

// BuiltinCustomers returns a fresh copy of the demo portfolio on every call.
func BuiltinCustomers() []*customer.Customer {
	return []*customer.Customer{
		{
			CustomerID:           "CUST1001",
			Name:                 "Alice Johnson",
			MonthlyIncome:        6200,
			MonthlyExpenses:      3500,
			CreditScore:          710,
			OutstandingLoans:     15000,
			LoanRepaymentHistory: []int{1, 0, 1, 1, 1, 1, 0, 1},
			AccountBalance:       12500,
			Status:               customer.StatusReview,
		},
		{
			CustomerID:           "CUST1002",
			Name:                 "Bob Smith",
			MonthlyIncome:        4800,
			MonthlyExpenses:      2800,
			CreditScore:          640,
			OutstandingLoans:     20000,
			LoanRepaymentHistory: []int{1, 1, 1, 0, 0, 1, 0, 0},
			AccountBalance:       7300,
			Status:               customer.StatusApproved,
		},
	}
}
