package statementRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubhouse/database"
	"clubhouse/database/repository"
	"clubhouse/models"
)

const statementColumns = `id, member_id, year, month, hours, amount, status, created_at, paid_at`

// SQLiteStatementRepo implements StatementRepository on the embedded store.
type SQLiteStatementRepo struct {
	db *sql.DB
}

func NewSQLiteStatementRepo(db *sql.DB) *SQLiteStatementRepo {
	return &SQLiteStatementRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatement(row rowScanner) (*models.Statement, error) {
	var (
		s      models.Statement
		paidAt sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.MemberID, &s.Year, &s.Month, &s.Hours, &s.Amount, &s.Status, &s.CreatedAt, &paidAt); err != nil {
		return nil, err
	}
	if paidAt.Valid {
		t := paidAt.Time
		s.PaidAt = &t
	}
	return &s, nil
}

func (r *SQLiteStatementRepo) CreateIfAbsent(ctx context.Context, s *models.Statement) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO statements (`+statementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.MemberID, s.Year, s.Month, s.Hours, s.Amount, s.Status, s.CreatedAt, s.PaidAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert statement %s: %w", s.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteStatementRepo) GetByID(ctx context.Context, id string) (*models.Statement, error) {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	s, err := scanStatement(r.db.QueryRowContext(ctx, `SELECT `+statementColumns+` FROM statements WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch statement %s: %w", id, err)
	}
	return s, nil
}

func (r *SQLiteStatementRepo) List(ctx context.Context, f models.StatementFilter) ([]models.Statement, error) {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	var (
		clauses []string
		args    []any
	)
	if f.Year != 0 {
		clauses = append(clauses, "year = ?")
		args = append(args, f.Year)
	}
	if f.Month != 0 {
		clauses = append(clauses, "month = ?")
		args = append(args, f.Month)
	}
	if f.MemberID != "" {
		clauses = append(clauses, "member_id = ?")
		args = append(args, f.MemberID)
	}
	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	query := `SELECT ` + statementColumns + ` FROM statements`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY year DESC, month DESC, member_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	statements := []models.Statement{}
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, *s)
	}
	return statements, rows.Err()
}

func (r *SQLiteStatementRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*models.Statement, error) {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE statements SET status = ?, paid_at = ? WHERE id = ? AND status = ?`,
		models.StatementPaid, paidAt, id, models.StatementPending)
	if err != nil {
		return nil, fmt.Errorf("failed to mark statement %s paid: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("statement %s is not pending: %w", id, repository.ErrConflict)
	}
	return s, nil
}
