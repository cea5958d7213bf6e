package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"risk-dashboard/internal/api/handler/dto"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the portfolio statistics computed by the server",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, _ []string) error {
	c, err := newAPIClient()
	if err != nil {
		return err
	}
	summary, err := c.Summary(cmd.Context())
	if err != nil {
		return err
	}
	return writeServerSummary(cmd.OutOrStdout(), summary)
}

func writeServerSummary(w io.Writer, s *dto.SummaryResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total customers:\t%d\n", s.TotalCustomers)
	fmt.Fprintf(tw, "Average income:\t%s\n", s.AverageIncome)
	fmt.Fprintf(tw, "Average risk score:\t%s\n", s.AverageRiskScore)
	fmt.Fprintf(tw, "High risk customers:\t%d\n", s.HighRiskCustomers)

	bands := make([]string, 0, len(s.BandCounts))
	for band := range s.BandCounts {
		bands = append(bands, band)
	}
	sort.Strings(bands)
	for _, band := range bands {
		fmt.Fprintf(tw, "Band %s:\t%d\n", band, s.BandCounts[band])
	}
	for _, b := range s.RiskDistribution {
		fmt.Fprintf(tw, "  %s:\t%d\n", b.Range, b.Count)
	}
	return tw.Flush()
}
