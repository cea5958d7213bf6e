package cli

import (
	"risk-dashboard/internal/infrastructure/seed"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringP("file", "f", "", "YAML seed file to score")
	scoreCmd.Flags().String("xlsx", "", "Also export the result to this Excel file")
	addSortFlags(scoreCmd)
	_ = scoreCmd.MarkFlagRequired("file")
}

var scoreCmd = &cobra.Command{
	Use:   "score -f FILE",
	Short: "Score a seed file offline",
	Long:  `Load customers from a YAML seed file and print their risk scores without contacting the server.`,
	Args:  cobra.NoArgs,
	RunE:  runScore,
}

func runScore(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	opts, err := readRenderOptions(cmd)
	if err != nil {
		return err
	}

	customers, err := seed.FileSource{Path: path}.LoadCustomers(cmd.Context())
	if err != nil {
		return err
	}
	return renderPortfolio(cmd.OutOrStdout(), customers, opts)
}
