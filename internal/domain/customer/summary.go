package customer

import (
	"sort"

	"risk-dashboard/internal/domain/risk"

	"github.com/shopspring/decimal"
)

type RiskBucket struct {
	Lower int
	Range string
	Count int
}

type IncomeExpensePoint struct {
	Name     string
	Income   float64
	Expenses float64
}

// PortfolioSummary carries the dashboard headline figures.
type PortfolioSummary struct {
	TotalCustomers    int
	AverageIncome     decimal.Decimal
	AverageRiskScore  decimal.Decimal
	HighRiskCustomers int
	BandCounts        map[risk.Band]int
	RiskDistribution  []RiskBucket
	IncomeVsExpenses  []IncomeExpensePoint
}

// BuildSummary averages over max(len(customers), 1) so an empty portfolio
// reports zeros rather than failing.
func BuildSummary(customers []*Customer) PortfolioSummary {
	summary := PortfolioSummary{
		TotalCustomers: len(customers),
		BandCounts: map[risk.Band]int{
			risk.BandLow:    0,
			risk.BandMedium: 0,
			risk.BandHigh:   0,
		},
		RiskDistribution: make([]RiskBucket, 0),
		IncomeVsExpenses: make([]IncomeExpensePoint, 0, len(customers)),
	}

	incomeTotal := decimal.Zero
	scoreTotal := 0
	buckets := make(map[int]int)

	for _, c := range customers {
		if c == nil {
			continue
		}
		score := c.RiskScore()
		scoreTotal += score
		incomeTotal = incomeTotal.Add(decimal.NewFromFloat(c.MonthlyIncome))

		if risk.IsHighRisk(score) {
			summary.HighRiskCustomers++
		}
		summary.BandCounts[risk.BandFor(score)]++
		buckets[risk.Bucket(score)]++

		summary.IncomeVsExpenses = append(summary.IncomeVsExpenses, IncomeExpensePoint{
			Name:     c.Name,
			Income:   c.MonthlyIncome,
			Expenses: c.MonthlyExpenses,
		})
	}

	divisor := decimal.NewFromInt(int64(max(len(customers), 1)))
	summary.AverageIncome = incomeTotal.Div(divisor).Round(2)
	summary.AverageRiskScore = decimal.NewFromInt(int64(scoreTotal)).Div(divisor).Round(1)

	for lower, count := range buckets {
		summary.RiskDistribution = append(summary.RiskDistribution, RiskBucket{
			Lower: lower,
			Range: risk.BucketLabel(lower),
			Count: count,
		})
	}
	sort.Slice(summary.RiskDistribution, func(i, j int) bool {
		return summary.RiskDistribution[i].Lower < summary.RiskDistribution[j].Lower
	})

	return summary
}
