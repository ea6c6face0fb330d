package billing

import (
	"context"
	"errors"
	"time"

	bookingRepo "clubhouse/database/repository/booking"
	statementRepo "clubhouse/database/repository/statement"
	"clubhouse/models"

	"go.uber.org/zap"
)

var (
	ErrInvalidPeriod     = errors.New("year and month must describe a calendar month")
	ErrStatementNotFound = errors.New("statement not found")
	ErrAlreadyPaid       = errors.New("statement is already paid")
)

// BillingService produces and settles monthly member statements.
type BillingService interface {
	GenerateMonthly(ctx context.Context, year, month int) ([]models.Statement, error)
	MarkPaid(ctx context.Context, id string) (*models.Statement, error)
	List(ctx context.Context, filter models.StatementFilter) ([]models.Statement, error)
}

// Balances is the member balance ledger.
type Balances interface {
	CreditBalance(ctx context.Context, id string, amount float64) error
}

type DefaultBillingService struct {
	Bookings   bookingRepo.BookingRepository
	Statements statementRepo.StatementRepository
	Balances   Balances
	Logger     *zap.Logger
	Now        func() time.Time
}
