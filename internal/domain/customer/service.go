package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"risk-dashboard/internal/domain/risk"
	"risk-dashboard/internal/event"
	"risk-dashboard/internal/infrastructure/monitoring"
	"risk-dashboard/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	customerNotFound = "Customer not found by repository"
)

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)
	UpdateStatus(ctx context.Context, customerID string, status string) (*Customer, error)
	AssessRisk(ctx context.Context, customerID string) (*Assessment, error)
	Summary(ctx context.Context) (*PortfolioSummary, error)
}

var _ CustomerService = (*customerService)(nil)

type Assessment struct {
	CustomerID string
	Score      int
	Band       risk.Band
	HighRisk   bool
}

func NewAssessment(c *Customer) *Assessment {
	score := c.RiskScore()
	return &Assessment{
		CustomerID: c.CustomerID,
		Score:      score,
		Band:       risk.BandFor(score),
		HighRisk:   risk.IsHighRisk(score),
	}
}

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		eventPublisher = event.NopPublisher{}
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	history := make([]int, len(cust.LoanRepaymentHistory))
	copy(history, cust.LoanRepaymentHistory)
	return event.CustomerEventPayload{
		CustomerID:           cust.CustomerID,
		Name:                 cust.Name,
		MonthlyIncome:        cust.MonthlyIncome,
		MonthlyExpenses:      cust.MonthlyExpenses,
		CreditScore:          cust.CreditScore,
		OutstandingLoans:     cust.OutstandingLoans,
		LoanRepaymentHistory: history,
		AccountBalance:       cust.AccountBalance,
		Status:               string(cust.Status),
	}
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Calling repository FindAll")
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	logCtx := s.logger.With(slog.String("customerID", customerID))

	logCtx.DebugContext(ctx, "Calling repository FindByID")
	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}

	logCtx.InfoContext(ctx, "Successfully retrieved customer")
	return cust, nil
}

// UpdateStatus checks the customer exists before validating status, so an
// unknown id with a bad status reports ErrNotFound.
func (s *customerService) UpdateStatus(ctx context.Context, customerID string, status string) (*Customer, error) {
	logCtx := s.logger.With(slog.String("customerID", customerID), slog.String("requested_status", status))
	logCtx.InfoContext(ctx, "Attempting to update customer status")

	var previous Status
	updated, err := s.repo.Update(ctx, customerID, func(c *Customer) error {
		next, parseErr := ParseStatus(status)
		if parseErr != nil {
			return parseErr
		}
		previous = c.Status
		c.Status = next
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			logCtx.WarnContext(ctx, customerNotFound)
			return nil, ErrNotFound
		case errors.Is(err, ErrInvalidStatus):
			logCtx.WarnContext(ctx, "Validation failed: status is not one of the enumerated values")
			return nil, err
		default:
			logCtx.ErrorContext(ctx, "Repository error updating customer status", slog.Any("error", err))
			return nil, fmt.Errorf("failed to update status for customer %s: %w", customerID, err)
		}
	}

	score := updated.RiskScore()
	logCtx = logCtx.With(slog.String("previous_status", string(previous)), slog.Int("riskScore", score))
	monitoring.RecordStatusUpdate(string(updated.Status))

	if risk.IsHighRisk(score) {
		s.raiseHighRiskAlert(ctx, logCtx, updated, score)
	}
	s.publishStatusUpdated(ctx, logCtx, updated, previous, score)

	logCtx.InfoContext(ctx, "Successfully updated customer status")
	return updated, nil
}

func (s *customerService) raiseHighRiskAlert(ctx context.Context, logCtx *slog.Logger, cust *Customer, score int) {
	logCtx.WarnContext(ctx, fmt.Sprintf("Alert: High risk customer %s with score %d", cust.Name, score),
		slog.String("customerName", cust.Name))
	monitoring.RecordHighRiskAlert()

	alert := event.HighRiskAlertEvent{
		EventID:    uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		CustomerID: cust.CustomerID,
		Name:       cust.Name,
		Status:     string(cust.Status),
		RiskScore:  score,
	}
	if err := s.pub.PublishHighRiskAlert(ctx, alert); err != nil {
		logCtx.ErrorContext(ctx, "High risk alert raised, but FAILED to publish alert event", slog.String("code", apperrors.CodeOf(err)), slog.Any("error", err))
	}
}

func (s *customerService) publishStatusUpdated(ctx context.Context, logCtx *slog.Logger, cust *Customer, previous Status, score int) {
	evt := event.CustomerStatusUpdatedEvent{
		EventID:        uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		PreviousStatus: string(previous),
		RiskScore:      score,
		Payload:        NewCustomerEventPayload(cust),
	}
	if err := s.pub.PublishCustomerStatusUpdated(ctx, evt); err != nil {
		logCtx.ErrorContext(ctx, "Status updated, but FAILED to publish update event", slog.String("code", apperrors.CodeOf(err)), slog.Any("error", err))
	} else {
		logCtx.DebugContext(ctx, "Published customer status update event")
	}
}

func (s *customerService) AssessRisk(ctx context.Context, customerID string) (*Assessment, error) {
	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return NewAssessment(cust), nil
}

func (s *customerService) Summary(ctx context.Context) (*PortfolioSummary, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	summary := BuildSummary(customers)
	return &summary, nil
}
