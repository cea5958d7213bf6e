// Package cli implements riskctl, the terminal front end for the risk
// dashboard API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"risk-dashboard/internal/client"
	"risk-dashboard/internal/config"

	"github.com/spf13/cobra"
)

var settings *config.Config

func init() {
	rootCmd.PersistentFlags().String("config", ".", "Directory containing config.yml")
	rootCmd.PersistentFlags().String("server", "", "Base URL of the API, e.g. http://localhost:5000/api (overrides client.baseURL)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (overrides client.timeout)")
}

var rootCmd = &cobra.Command{
	Use:   "riskctl",
	Short: "Review customers and their credit risk",
	Long: `riskctl talks to the risk dashboard API. It lists customers with
risk scores computed locally, changes review status, scores seed files
offline and tails high-risk alerts from RabbitMQ.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute runs riskctl with the process arguments and returns the exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, userMessage(err))
		return 1
	}
	return 0
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.Client.BaseURL = server
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.Client.Timeout = timeout
	}
	settings = cfg
	return nil
}

func newAPIClient() (*client.Client, error) {
	timeout := settings.Client.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return client.New(settings.Client.BaseURL, timeout)
}

// userMessage turns an error into the single line shown to the operator.
func userMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return "Error: " + apiErr.Message
	case errors.Is(err, client.ErrTransport):
		return fmt.Sprintf("Error: could not reach the risk dashboard server at %s.\n%v", baseURL(), err)
	default:
		return "Error: " + err.Error()
	}
}

func baseURL() string {
	if settings == nil {
		return "(unknown)"
	}
	return settings.Client.BaseURL
}
