package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"risk-dashboard/internal/domain/customer"
	"risk-dashboard/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

const selectCustomersQuery = `
	SELECT customer_id, name, monthly_income, monthly_expenses, credit_score,
		outstanding_loans, loan_repayment_history, account_balance, status
	FROM customers
	ORDER BY customer_id`

// SeedRepository reads the customer table once at startup. It never writes.
type SeedRepository struct {
	db           DBPool
	queryTimeout time.Duration
	logger       *slog.Logger
}

var _ customer.SeedSource = (*SeedRepository)(nil)

func NewSeedRepository(db DBPool, logger *slog.Logger) *SeedRepository {
	if db == nil {
		panic("DBPool cannot be nil for SeedRepository")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SeedRepository{
		db:           db,
		queryTimeout: 10 * time.Second,
		logger:       logger.With("component", "SeedRepository"),
	}
}

func (r *SeedRepository) LoadCustomers(ctx context.Context) ([]*customer.Customer, error) {
	logCtx := r.logger.With(slog.String("operation", "LoadCustomers"))
	logCtx.DebugContext(ctx, "Loading customers from database")

	queryCtx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.db.Query(queryCtx, selectCustomersQuery)
	if err != nil {
		return nil, translateDBError(err, logCtx)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var (
			c      customer.Customer
			status string
		)
		if err := rows.Scan(
			&c.CustomerID,
			&c.Name,
			&c.MonthlyIncome,
			&c.MonthlyExpenses,
			&c.CreditScore,
			&c.OutstandingLoans,
			&c.LoanRepaymentHistory,
			&c.AccountBalance,
			&status,
		); err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, apperrors.WrapDatabaseError(err, "failed to scan customer row")
		}
		c.Status = customer.Status(status)
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, translateDBError(err, logCtx)
	}

	logCtx.InfoContext(ctx, "Loaded customers from database", slog.Int("count", len(customers)))
	return customers, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf("%w: %w", apperrors.ErrDatabase, err)
}
