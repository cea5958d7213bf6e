// Package report renders customer portfolios for terminal and spreadsheet
// output. Scores are computed with the shared risk formula, never taken from
// the wire.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"risk-dashboard/internal/domain/customer"
	"risk-dashboard/internal/domain/risk"

	"github.com/shopspring/decimal"
)

type Row struct {
	CustomerID      string
	Name            string
	MonthlyIncome   decimal.Decimal
	MonthlyExpenses decimal.Decimal
	CreditScore     int
	RiskScore       int
	Band            risk.Band
	Status          customer.Status
}

func Rows(customers []*customer.Customer) []Row {
	rows := make([]Row, 0, len(customers))
	for _, c := range customers {
		score := c.RiskScore()
		rows = append(rows, Row{
			CustomerID:      c.CustomerID,
			Name:            c.Name,
			MonthlyIncome:   decimal.NewFromFloat(c.MonthlyIncome),
			MonthlyExpenses: decimal.NewFromFloat(c.MonthlyExpenses),
			CreditScore:     c.CreditScore,
			RiskScore:       score,
			Band:            risk.BandFor(score),
			Status:          c.Status,
		})
	}
	return rows
}

func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tINCOME\tEXPENSES\tCREDIT\tRISK\tBAND\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.CustomerID, r.Name,
			r.MonthlyIncome.StringFixed(2), r.MonthlyExpenses.StringFixed(2),
			r.CreditScore, r.RiskScore, r.Band, r.Status)
	}
	return tw.Flush()
}

func WriteSummary(w io.Writer, s customer.PortfolioSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total customers:\t%d\n", s.TotalCustomers)
	fmt.Fprintf(tw, "Average income:\t%s\n", s.AverageIncome.StringFixed(2))
	fmt.Fprintf(tw, "Average risk score:\t%s\n", s.AverageRiskScore.StringFixed(1))
	fmt.Fprintf(tw, "High risk customers:\t%d\n", s.HighRiskCustomers)
	for _, b := range s.RiskDistribution {
		fmt.Fprintf(tw, "  %s:\t%d\n", b.Range, b.Count)
	}
	return tw.Flush()
}
