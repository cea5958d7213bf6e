package customer_test

import (
	"testing"

	"risk-dashboard/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() *customer.Customer {
	return &customer.Customer{
		CustomerID:           "CUST1001",
		Name:                 "Alice Johnson",
		MonthlyIncome:        6200,
		MonthlyExpenses:      3500,
		CreditScore:          710,
		OutstandingLoans:     15000,
		LoanRepaymentHistory: []int{1, 0, 1, 1, 1, 1, 0, 1},
		AccountBalance:       12500,
		Status:               customer.StatusReview,
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Review", "Approved", "Rejected"} {
		got, err := customer.ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, customer.Status(s), got)
		assert.True(t, got.Valid())
	}

	for _, s := range []string{"", "approved", "REVIEW", "Pending", " Approved"} {
		_, err := customer.ParseStatus(s)
		assert.ErrorIs(t, err, customer.ErrInvalidStatus, "input %q", s)
		assert.False(t, customer.Status(s).Valid())
	}
}

func TestValidStatuses_ReturnsCopy(t *testing.T) {
	statuses := customer.ValidStatuses()
	require.Len(t, statuses, 3)
	statuses[0] = "Mutated"

	assert.Equal(t, customer.StatusReview, customer.ValidStatuses()[0])
}

func TestValidate(t *testing.T) {
	t.Run("Valid customer", func(t *testing.T) {
		assert.NoError(t, customer.Validate(validCustomer()))
	})

	t.Run("Nil customer", func(t *testing.T) {
		assert.ErrorIs(t, customer.Validate(nil), customer.ErrInvalidCustomerData)
	})

	tests := []struct {
		name   string
		mutate func(c *customer.Customer)
		field  string
	}{
		{"Missing id", func(c *customer.Customer) { c.CustomerID = "" }, "CustomerID"},
		{"Missing name", func(c *customer.Customer) { c.Name = "" }, "Name"},
		{"Zero income", func(c *customer.Customer) { c.MonthlyIncome = 0 }, "MonthlyIncome"},
		{"Negative expenses", func(c *customer.Customer) { c.MonthlyExpenses = -1 }, "MonthlyExpenses"},
		{"Credit score too low", func(c *customer.Customer) { c.CreditScore = 299 }, "CreditScore"},
		{"Credit score too high", func(c *customer.Customer) { c.CreditScore = 851 }, "CreditScore"},
		{"Negative loans", func(c *customer.Customer) { c.OutstandingLoans = -5 }, "OutstandingLoans"},
		{"Empty history", func(c *customer.Customer) { c.LoanRepaymentHistory = []int{} }, "LoanRepaymentHistory"},
		{"Nil history", func(c *customer.Customer) { c.LoanRepaymentHistory = nil }, "LoanRepaymentHistory"},
		{"History value outside 0/1", func(c *customer.Customer) { c.LoanRepaymentHistory = []int{1, 2} }, "LoanRepaymentHistory[1]"},
		{"Unknown status", func(c *customer.Customer) { c.Status = "Pending" }, "Status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(c)

			err := customer.Validate(c)

			require.ErrorIs(t, err, customer.ErrInvalidCustomerData)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("Boundary credit scores accepted", func(t *testing.T) {
		c := validCustomer()
		c.CreditScore = 300
		assert.NoError(t, customer.Validate(c))
		c.CreditScore = 850
		assert.NoError(t, customer.Validate(c))
	})

	t.Run("Zero loans and negative balance accepted", func(t *testing.T) {
		c := validCustomer()
		c.OutstandingLoans = 0
		c.AccountBalance = -250
		assert.NoError(t, customer.Validate(c))
	})
}

func TestCustomer_Clone(t *testing.T) {
	original := validCustomer()
	cp := original.Clone()

	assert.Equal(t, original, cp)

	cp.LoanRepaymentHistory[0] = 0
	cp.Status = customer.StatusRejected
	assert.Equal(t, 1, original.LoanRepaymentHistory[0])
	assert.Equal(t, customer.StatusReview, original.Status)

	var nilCustomer *customer.Customer
	assert.Nil(t, nilCustomer.Clone())
}

func TestCustomer_RiskScore(t *testing.T) {
	alice := validCustomer()
	assert.Equal(t, 56, alice.RiskScore())

	bob := &customer.Customer{
		CustomerID:           "CUST1002",
		Name:                 "Bob Smith",
		MonthlyIncome:        4800,
		MonthlyExpenses:      2800,
		CreditScore:          640,
		OutstandingLoans:     20000,
		LoanRepaymentHistory: []int{1, 1, 1, 0, 0, 1, 0, 0},
		AccountBalance:       7300,
		Status:               customer.StatusApproved,
	}
	assert.Equal(t, 45, bob.RiskScore())

	in := alice.RiskInput()
	assert.Equal(t, 710, in.CreditScore)
	assert.Equal(t, 6200.0, in.MonthlyIncome)
	assert.Equal(t, 15000.0, in.OutstandingLoans)
}
