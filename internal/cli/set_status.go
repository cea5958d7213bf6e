package cli

import (
	"fmt"

	"risk-dashboard/internal/domain/risk"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(setStatusCmd)
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status CUSTOMER_ID STATUS",
	Short: "Change a customer's review status",
	Long:  `Change a customer's review status. STATUS is one of Review, Approved or Rejected (case-sensitive).`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSetStatus,
}

func runSetStatus(cmd *cobra.Command, args []string) error {
	c, err := newAPIClient()
	if err != nil {
		return err
	}

	updated, err := c.UpdateStatus(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	score := updated.RiskScore()
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) status=%s risk=%d (%s)\n",
		updated.CustomerID, updated.Name, updated.Status, score, risk.BandFor(score))
	return nil
}
