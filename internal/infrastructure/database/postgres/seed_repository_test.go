package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"risk-dashboard/internal/domain/customer"
	"risk-dashboard/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pgxmockExpectationsNotMetMsg = "pgxmock expectations were not met"

var (
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	seedColumns = []string{
		"customer_id", "name", "monthly_income", "monthly_expenses", "credit_score",
		"outstanding_loans", "loan_repayment_history", "account_balance", "status",
	}
)

func setupSeedRepo(t *testing.T) (context.Context, *SeedRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}
	return context.Background(), NewSeedRepository(mockPool, logger), mockPool
}

func TestLoadCustomersWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupSeedRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomersQuery)).WillReturnRows(
		pgxmock.NewRows(seedColumns).
			AddRow("CUST1001", "Alice Johnson", 6200.0, 3500.0, 710, 15000.0, []int{1, 0, 1, 1, 1, 1, 0, 1}, 12500.0, "Review").
			AddRow("CUST1002", "Bob Smith", 4800.0, 2800.0, 640, 20000.0, []int{1, 1, 1, 0, 0, 1, 0, 0}, 7300.0, "Approved"),
	)

	customers, err := repo.LoadCustomers(ctx)

	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "CUST1001", customers[0].CustomerID)
	assert.Equal(t, customer.StatusReview, customers[0].Status)
	assert.Equal(t, []int{1, 1, 1, 0, 0, 1, 0, 0}, customers[1].LoanRepaymentHistory)
	assert.Equal(t, 45, customers[1].RiskScore())
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestLoadCustomersWhenEmptyTable(t *testing.T) {
	ctx, repo, mockPool := setupSeedRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomersQuery)).WillReturnRows(pgxmock.NewRows(seedColumns))

	customers, err := repo.LoadCustomers(ctx)

	assert.NoError(t, err)
	assert.Empty(t, customers)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestLoadCustomersWhenQueryFails(t *testing.T) {
	ctx, repo, mockPool := setupSeedRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomersQuery)).WillReturnError(errors.New("connection reset"))

	customers, err := repo.LoadCustomers(ctx)

	assert.Nil(t, customers)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestLoadCustomersWhenTableMissing(t *testing.T) {
	ctx, repo, mockPool := setupSeedRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomersQuery)).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "customers" does not exist`})

	_, err := repo.LoadCustomers(ctx)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.Contains(t, err.Error(), "42P01")
}

func TestLoadCustomersWhenRowErrors(t *testing.T) {
	ctx, repo, mockPool := setupSeedRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery(regexp.QuoteMeta(selectCustomersQuery)).WillReturnRows(
		pgxmock.NewRows(seedColumns).
			AddRow("CUST1001", "Alice Johnson", 6200.0, 3500.0, 710, 15000.0, []int{1}, 12500.0, "Review").
			RowError(0, errors.New("stream broken")),
	)

	_, err := repo.LoadCustomers(ctx)

	assert.ErrorIs(t, err, apperrors.ErrDatabase)
}

func TestTranslateDBError(t *testing.T) {
	assert.NoError(t, translateDBError(nil, logger))

	// A table scan has no single-row lookup, so even ErrNoRows is a database failure.
	err := translateDBError(pgx.ErrNoRows, logger)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestNewSeedRepositoryPanics(t *testing.T) {
	assert.Panics(t, func() { NewSeedRepository(nil, logger) })
}
