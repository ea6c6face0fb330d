package member

import (
	"context"
	"errors"
	"fmt"

	"clubhouse/database/repository"
	"clubhouse/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate checks credentials and issues a signed token. The role in
// the token comes from the stored member.
func (s *DefaultMemberService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	member, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		s.logger().Info("failed login", zap.String("memberID", member.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.GenerateToken(member.ID, member.Email, member.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.AuthResponse{Token: token, Member: *member}, nil
}
