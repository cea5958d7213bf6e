package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"risk-dashboard/internal/config"
	"risk-dashboard/internal/event"
	"risk-dashboard/internal/infrastructure/logging"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.Flags().String("queue", "", "Durable queue to consume from (default: rabbitmq.queueName, or a temporary queue when that is empty)")
	alertsCmd.Flags().Int("max", 0, "Exit after this many alerts (0 = run until interrupted)")
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Tail high-risk alerts published by the server",
	Args:  cobra.NoArgs,
	RunE:  runAlerts,
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	queueFlag, _ := cmd.Flags().GetString("queue")
	limit, _ := cmd.Flags().GetInt("max")

	logger := logging.NewLoggerWithWriter(settings.Logger, cmd.ErrOrStderr())
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := alertQueue(queueFlag, settings.RabbitMQ)
	conn, err := event.Dial(ctx, settings.RabbitMQ, 1, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	consumer, err := event.NewConsumer(
		conn,
		settings.RabbitMQ.ExchangeName,
		queue,
		settings.RabbitMQ.ConsumerTag,
		[]string{event.RoutingKeyHighRiskAlert},
		alertPrinter(cmd.OutOrStdout(), limit, cancel, logger),
		logger,
	)
	if err != nil {
		return err
	}
	if err := consumer.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Waiting for high-risk alerts. Press Ctrl+C to stop.")
	<-ctx.Done()
	consumer.Stop()
	return nil
}

// alertQueue picks the queue to consume from. An empty result makes the
// consumer declare a temporary exclusive queue.
func alertQueue(flag string, cfg config.RabbitMQConfig) string {
	if flag != "" {
		return flag
	}
	return cfg.QueueName
}

// alertPrinter prints each alert on one line and cancels once limit alerts
// were printed. limit <= 0 means no limit.
func alertPrinter(out io.Writer, limit int, done context.CancelFunc, logger *slog.Logger) event.MessageHandler {
	seen := 0
	return func(_ context.Context, d amqp.Delivery) {
		alert, err := event.DecodeHighRiskAlert(d.Body)
		if err != nil {
			logger.Warn("Discarding malformed alert", "messageId", d.MessageId, "error", err)
			_ = d.Nack(false, false)
			return
		}

		fmt.Fprintf(out, "%s  %-10s %-20s risk=%d status=%s\n",
			alert.Timestamp.Local().Format(time.DateTime), alert.CustomerID, alert.Name, alert.RiskScore, alert.Status)
		_ = d.Ack(false)

		seen++
		if limit > 0 && seen >= limit {
			done()
		}
	}
}
