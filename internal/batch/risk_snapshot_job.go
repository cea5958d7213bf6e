package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"risk-dashboard/internal/domain/customer"
	"risk-dashboard/internal/infrastructure/monitoring"
)

type SummaryProvider interface {
	Summary(ctx context.Context) (*customer.PortfolioSummary, error)
}

// RiskSnapshotJob recomputes the portfolio summary and exports it as gauges.
type RiskSnapshotJob struct {
	provider SummaryProvider
	logger   *slog.Logger
}

func NewRiskSnapshotJob(provider SummaryProvider, logger *slog.Logger) *RiskSnapshotJob {
	if provider == nil || logger == nil {
		panic("RiskSnapshotJob dependencies cannot be nil")
	}
	return &RiskSnapshotJob{
		provider: provider,
		logger:   logger.With("job", "RiskSnapshot"),
	}
}

func (j *RiskSnapshotJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting risk snapshot job.")

	summary, err := j.provider.Summary(ctx)
	if err != nil {
		monitoring.RecordSnapshotRun("error")
		j.logger.ErrorContext(ctx, "Failed to build portfolio summary, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run risk snapshot job: %w", err)
	}

	byBand := make(map[string]int, len(summary.BandCounts))
	for band, count := range summary.BandCounts {
		byBand[string(band)] = count
	}
	averageScore := summary.AverageRiskScore.InexactFloat64()
	monitoring.RecordPortfolioSnapshot(summary.TotalCustomers, averageScore, summary.HighRiskCustomers, byBand)
	monitoring.RecordSnapshotRun("success")

	j.logger.InfoContext(ctx, "Risk snapshot job finished successfully.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("total_customers", summary.TotalCustomers),
		slog.String("average_income", summary.AverageIncome.StringFixed(2)),
		slog.String("average_risk_score", summary.AverageRiskScore.StringFixed(1)),
		slog.Int("high_risk_customers", summary.HighRiskCustomers),
		slog.Any("band_counts", byBand),
	)
	return nil
}
