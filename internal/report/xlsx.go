package report

import (
	"fmt"
	"io"

	"risk-dashboard/internal/domain/customer"

	"github.com/xuri/excelize/v2"
)

const (
	CustomersSheet = "Customers"
	SummarySheet   = "Summary"
)

var customerHeaders = []string{"Customer ID", "Name", "Monthly Income", "Monthly Expenses", "Credit Score", "Risk Score", "Band", "Status"}

// WriteXLSX writes a workbook with one row per customer and a summary sheet.
func WriteXLSX(w io.Writer, rows []Row, summary customer.PortfolioSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(CustomersSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for i, header := range customerHeaders {
		if err := setCell(f, CustomersSheet, i+1, 1, header); err != nil {
			return err
		}
	}
	for i, r := range rows {
		values := []interface{}{
			r.CustomerID,
			r.Name,
			r.MonthlyIncome.InexactFloat64(),
			r.MonthlyExpenses.InexactFloat64(),
			r.CreditScore,
			r.RiskScore,
			string(r.Band),
			string(r.Status),
		}
		for col, v := range values {
			if err := setCell(f, CustomersSheet, col+1, i+2, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Total customers", summary.TotalCustomers},
		{"Average income", summary.AverageIncome.InexactFloat64()},
		{"Average risk score", summary.AverageRiskScore.InexactFloat64()},
		{"High risk customers", summary.HighRiskCustomers},
	}
	for _, b := range summary.RiskDistribution {
		summaryRows = append(summaryRows, []interface{}{"Risk " + b.Range, b.Count})
	}
	for i, pair := range summaryRows {
		for col, v := range pair {
			if err := setCell(f, SummarySheet, col+1, i+1, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
