package memberRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clubhouse/database"
	"clubhouse/database/repository"
	"clubhouse/models"
)

const memberColumns = `id, name, email, phone, password_hash, role, balance, joined_at`

// SQLiteMemberRepo implements MemberRepository on the embedded store.
type SQLiteMemberRepo struct {
	db *sql.DB
}

func NewSQLiteMemberRepo(db *sql.DB) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{db: db}
}

func (r *SQLiteMemberRepo) Create(ctx context.Context, m *models.Member) error {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Phone, m.PasswordHash, m.Role, m.Balance, m.JoinedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("member %s: %w", m.Email, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
}

func (r *SQLiteMemberRepo) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	return r.getOne(ctx, `SELECT `+memberColumns+` FROM members WHERE email = ?`, email)
}

func (r *SQLiteMemberRepo) getOne(ctx context.Context, query string, arg any) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	var m models.Member
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.PasswordHash, &m.Role, &m.Balance, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}
	return &m, nil
}

func (r *SQLiteMemberRepo) Search(ctx context.Context, term string) ([]models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	query := `SELECT ` + memberColumns + ` FROM members`
	var args []any
	if term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query += ` WHERE lower(name) LIKE ? OR lower(email) LIKE ? OR phone LIKE ?`
		args = append(args, like, like, "%"+term+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.PasswordHash, &m.Role, &m.Balance, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *SQLiteMemberRepo) IncrementBalance(ctx context.Context, id string, delta float64) error {
	ctx, cancel := context.WithTimeout(ctx, database.SQLiteTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE members SET balance = balance + ? WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to update balance of member %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
