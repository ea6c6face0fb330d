package statementRepo

import (
	"context"
	"time"

	"clubhouse/models"
)

// StatementRepository defines monthly statement data access.
type StatementRepository interface {
	// CreateIfAbsent inserts the statement unless its id already exists and
	// reports whether it was created.
	CreateIfAbsent(ctx context.Context, s *models.Statement) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Statement, error)
	List(ctx context.Context, filter models.StatementFilter) ([]models.Statement, error)
	// MarkPaid moves a pending statement to paid. A statement that is not
	// pending yields repository.ErrConflict.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (*models.Statement, error)
}
