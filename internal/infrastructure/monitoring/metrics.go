package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "risk_dashboard"

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	StatusUpdatesTotal  *prometheus.CounterVec
	HighRiskAlertsTotal prometheus.Counter
	SeedCustomersLoaded *prometheus.GaugeVec
	SnapshotRunsTotal   *prometheus.CounterVec
}

type PortfolioMetrics struct {
	CustomersTotal    prometheus.Gauge
	AverageRiskScore  prometheus.Gauge
	HighRiskCustomers prometheus.Gauge
	CustomersByBand   *prometheus.GaugeVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	Business = BusinessMetrics{
		StatusUpdatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "status_updates_total",
				Help:      "Total number of successful customer status updates, by new status.",
			},
			[]string{"status"},
		),
		HighRiskAlertsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "high_risk_alerts_total",
				Help:      "Total number of high risk alerts raised on status updates.",
			},
		),
		SeedCustomersLoaded: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "seed_customers_loaded",
				Help:      "Number of customers loaded into the store at startup, by seed source.",
			},
			[]string{"source"},
		),
		SnapshotRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "risk_snapshot_runs_total",
				Help:      "Total number of risk snapshot job runs, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	Portfolio = PortfolioMetrics{
		CustomersTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "portfolio_customers",
				Help:      "Number of customers at the last risk snapshot.",
			},
		),
		AverageRiskScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "portfolio_average_risk_score",
				Help:      "Average risk score at the last risk snapshot.",
			},
		),
		HighRiskCustomers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "portfolio_high_risk_customers",
				Help:      "Number of customers with a risk score above the alert threshold.",
			},
		),
		CustomersByBand: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "portfolio_customers_by_band",
				Help:      "Number of customers per risk band at the last risk snapshot.",
			},
			[]string{"band"},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordStatusUpdate(status string) {
	Business.StatusUpdatesTotal.WithLabelValues(status).Inc()
}

func RecordHighRiskAlert() {
	Business.HighRiskAlertsTotal.Inc()
}

func RecordSeedLoaded(source string, count int) {
	Business.SeedCustomersLoaded.WithLabelValues(source).Set(float64(count))
}

func RecordSnapshotRun(outcome string) {
	Business.SnapshotRunsTotal.WithLabelValues(outcome).Inc()
}

func RecordPortfolioSnapshot(total int, averageScore float64, highRisk int, byBand map[string]int) {
	Portfolio.CustomersTotal.Set(float64(total))
	Portfolio.AverageRiskScore.Set(averageScore)
	Portfolio.HighRiskCustomers.Set(float64(highRisk))
	for band, count := range byBand {
		Portfolio.CustomersByBand.WithLabelValues(band).Set(float64(count))
	}
}
