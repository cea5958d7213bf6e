package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"risk-dashboard/internal/domain/customer"
	"risk-dashboard/internal/report"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("xlsx", "", "Also export the portfolio to this Excel file")
	addSortFlags(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers with risk scores and portfolio statistics",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

type renderOptions struct {
	sortKey  report.SortKey
	desc     bool
	xlsxPath string
}

func addSortFlags(cmd *cobra.Command) {
	cmd.Flags().String("sort", "", "Sort rows by one of: "+strings.Join(report.SortKeys(), ", "))
	cmd.Flags().Bool("desc", false, "Sort in descending order")
}

func readRenderOptions(cmd *cobra.Command) (renderOptions, error) {
	sortFlag, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	key, err := report.ParseSortKey(sortFlag)
	if err != nil {
		return renderOptions{}, err
	}
	return renderOptions{sortKey: key, desc: desc, xlsxPath: xlsxPath}, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	opts, err := readRenderOptions(cmd)
	if err != nil {
		return err
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}
	customers, err := c.ListCustomers(cmd.Context())
	if err != nil {
		return err
	}

	return renderPortfolio(cmd.OutOrStdout(), customers, opts)
}

func renderPortfolio(out io.Writer, customers []*customer.Customer, opts renderOptions) error {
	rows := report.Rows(customers)
	report.SortRows(rows, opts.sortKey, opts.desc)
	summary := customer.BuildSummary(customers)

	if err := report.WriteTable(out, rows); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := report.WriteSummary(out, summary); err != nil {
		return err
	}

	if opts.xlsxPath == "" {
		return nil
	}
	if err := exportXLSX(opts.xlsxPath, rows, summary); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nExported %d customers to %s\n", len(rows), opts.xlsxPath)
	return nil
}

func exportXLSX(path string, rows []report.Row, summary customer.PortfolioSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WriteXLSX(f, rows, summary); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
