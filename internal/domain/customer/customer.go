package customer

import (
	"errors"
	"fmt"
	"strings"

	"risk-dashboard/internal/domain/risk"

	"github.com/go-playground/validator/v10"
)

type Status string

const (
	StatusReview   Status = "Review"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var validStatuses = []Status{StatusReview, StatusApproved, StatusRejected}

func ValidStatuses() []Status {
	out := make([]Status, len(validStatuses))
	copy(out, validStatuses)
	return out
}

// ParseStatus is case-sensitive: "approved" is not a status.
func ParseStatus(s string) (Status, error) {
	for _, v := range validStatuses {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

type Customer struct {
	CustomerID           string  `json:"customerId" yaml:"customerId" validate:"required"`
	Name                 string  `json:"name" yaml:"name" validate:"required"`
	MonthlyIncome        float64 `json:"monthlyIncome" yaml:"monthlyIncome" validate:"gt=0"`
	MonthlyExpenses      float64 `json:"monthlyExpenses" yaml:"monthlyExpenses" validate:"gt=0"`
	CreditScore          int     `json:"creditScore" yaml:"creditScore" validate:"gte=300,lte=850"`
	OutstandingLoans     float64 `json:"outstandingLoans" yaml:"outstandingLoans" validate:"gte=0"`
	LoanRepaymentHistory []int   `json:"loanRepaymentHistory" yaml:"loanRepaymentHistory" validate:"required,min=1,dive,oneof=0 1"`
	AccountBalance       float64 `json:"accountBalance" yaml:"accountBalance"`
	Status               Status  `json:"status" yaml:"status" validate:"oneof=Review Approved Rejected"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the ingestion invariants. Any violation is reported as
// ErrInvalidCustomerData naming every offending field.
func Validate(c *Customer) error {
	if c == nil {
		return fmt.Errorf("%w: customer is nil", ErrInvalidCustomerData)
	}
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidCustomerData, err)
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: customer %q: %s", ErrInvalidCustomerData, c.CustomerID, strings.Join(problems, ", "))
}

// Clone returns a deep copy so callers never share the repayment slice with
// the store.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	if c.LoanRepaymentHistory != nil {
		cp.LoanRepaymentHistory = make([]int, len(c.LoanRepaymentHistory))
		copy(cp.LoanRepaymentHistory, c.LoanRepaymentHistory)
	}
	return &cp
}

func (c *Customer) RiskInput() risk.Input {
	return risk.Input{
		CreditScore:          c.CreditScore,
		MonthlyIncome:        c.MonthlyIncome,
		OutstandingLoans:     c.OutstandingLoans,
		LoanRepaymentHistory: c.LoanRepaymentHistory,
	}
}

func (c *Customer) RiskScore() int {
	return risk.Score(c.RiskInput())
}
