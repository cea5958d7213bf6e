package dto

import (
	"encoding/json"

	"risk-dashboard/internal/domain/customer"
)

type UpdateStatusRequest struct {
	Status string `json:"status" example:"Approved"`
}

// UnmarshalJSON accepts any JSON value for status. A non-string value is kept
// as its raw JSON text so it fails status validation instead of decoding.
// A missing or null status decodes as "".
func (r *UpdateStatusRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Status = ""
	if len(raw.Status) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw.Status, &r.Status); err != nil {
		r.Status = string(raw.Status)
	}
	return nil
}

type CustomerResponse struct {
	CustomerID           string  `json:"customerId" example:"CUST1001"`
	Name                 string  `json:"name" example:"Alice Johnson"`
	MonthlyIncome        float64 `json:"monthlyIncome" example:"6200"`
	MonthlyExpenses      float64 `json:"monthlyExpenses" example:"3500"`
	CreditScore          int     `json:"creditScore" example:"710"`
	OutstandingLoans     float64 `json:"outstandingLoans" example:"15000"`
	LoanRepaymentHistory []int   `json:"loanRepaymentHistory"`
	AccountBalance       float64 `json:"accountBalance" example:"12500"`
	Status               string  `json:"status" example:"Review" enums:"Review,Approved,Rejected"`
}

func NewCustomerResponse(c *customer.Customer) CustomerResponse {
	history := c.LoanRepaymentHistory
	if history == nil {
		history = []int{}
	}
	return CustomerResponse{
		CustomerID:           c.CustomerID,
		Name:                 c.Name,
		MonthlyIncome:        c.MonthlyIncome,
		MonthlyExpenses:      c.MonthlyExpenses,
		CreditScore:          c.CreditScore,
		OutstandingLoans:     c.OutstandingLoans,
		LoanRepaymentHistory: history,
		AccountBalance:       c.AccountBalance,
		Status:               string(c.Status),
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}

type RiskAssessmentResponse struct {
	CustomerID string `json:"customerId" example:"CUST1001"`
	RiskScore  int    `json:"riskScore" example:"56"`
	Band       string `json:"band" example:"medium" enums:"low,medium,high"`
	HighRisk   bool   `json:"highRisk" example:"false"`
}

func NewRiskAssessmentResponse(a *customer.Assessment) RiskAssessmentResponse {
	return RiskAssessmentResponse{
		CustomerID: a.CustomerID,
		RiskScore:  a.Score,
		Band:       string(a.Band),
		HighRisk:   a.HighRisk,
	}
}

type RiskBucketResponse struct {
	Range string `json:"range" example:"40-60"`
	Count int    `json:"count" example:"2"`
}

type IncomeExpenseResponse struct {
	Name     string  `json:"name" example:"Alice Johnson"`
	Income   float64 `json:"income" example:"6200"`
	Expenses float64 `json:"expenses" example:"3500"`
}

// SummaryResponse renders averages as fixed-point strings so clients never see
// float artifacts.
type SummaryResponse struct {
	TotalCustomers    int                     `json:"totalCustomers" example:"2"`
	AverageIncome     string                  `json:"averageIncome" example:"5500.00"`
	AverageRiskScore  string                  `json:"averageRiskScore" example:"50.5"`
	HighRiskCustomers int                     `json:"highRiskCustomers" example:"0"`
	BandCounts        map[string]int          `json:"bandCounts"`
	RiskDistribution  []RiskBucketResponse    `json:"riskDistribution"`
	IncomeVsExpenses  []IncomeExpenseResponse `json:"incomeVsExpenses"`
}

func NewSummaryResponse(s *customer.PortfolioSummary) SummaryResponse {
	resp := SummaryResponse{
		TotalCustomers:    s.TotalCustomers,
		AverageIncome:     s.AverageIncome.StringFixed(2),
		AverageRiskScore:  s.AverageRiskScore.StringFixed(1),
		HighRiskCustomers: s.HighRiskCustomers,
		BandCounts:        make(map[string]int, len(s.BandCounts)),
		RiskDistribution:  make([]RiskBucketResponse, 0, len(s.RiskDistribution)),
		IncomeVsExpenses:  make([]IncomeExpenseResponse, 0, len(s.IncomeVsExpenses)),
	}
	for band, count := range s.BandCounts {
		resp.BandCounts[string(band)] = count
	}
	for _, b := range s.RiskDistribution {
		resp.RiskDistribution = append(resp.RiskDistribution, RiskBucketResponse{Range: b.Range, Count: b.Count})
	}
	for _, p := range s.IncomeVsExpenses {
		resp.IncomeVsExpenses = append(resp.IncomeVsExpenses, IncomeExpenseResponse{Name: p.Name, Income: p.Income, Expenses: p.Expenses})
	}
	return resp
}

type ErrorResponse struct {
	Error string `json:"error" example:"Customer not found"`
}
