package member

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clubhouse/database/repository"
	"clubhouse/models"
)

func (s *DefaultMemberService) Get(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrMemberNotFound, err)
		}
		return nil, fmt.Errorf("failed to fetch member %s: %w", id, err)
	}
	return member, nil
}

// Search finds members by name, email or phone. An empty term lists everyone.
func (s *DefaultMemberService) Search(ctx context.Context, term string) ([]models.Member, error) {
	members, err := s.Repo.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}
	return members, nil
}

// CreditBalance adds amount to what the member owes.
func (s *DefaultMemberService) CreditBalance(ctx context.Context, id string, amount float64) error {
	if err := s.Repo.IncrementBalance(ctx, id, amount); err != nil {
		return fmt.Errorf("failed to credit member %s: %w", id, err)
	}
	return nil
}
