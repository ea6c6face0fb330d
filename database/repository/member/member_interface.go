package memberRepo

import (
	"context"

	"clubhouse/models"
)

// MemberRepository defines member data access.
type MemberRepository interface {
	// Create inserts a member; a taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, member *models.Member) error
	// GetByID returns repository.ErrNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Member, error)
	// GetByEmail expects a normalised (lower-case) email.
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	// Search matches name or email case-insensitively and phone by substring.
	// An empty term returns every member.
	Search(ctx context.Context, term string) ([]models.Member, error)
	// IncrementBalance atomically adds delta to the member balance.
	IncrementBalance(ctx context.Context, id string, delta float64) error
}
