package member

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"clubhouse/database/repository"
	"clubhouse/metrics"
	"clubhouse/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a member with a zero balance.
func (s *DefaultMemberService) Register(ctx context.Context, in models.RegistrationInput) (*models.Member, error) {
	member, err := s.create(ctx, in, models.RoleMember)
	if err != nil {
		return nil, err
	}
	metrics.MembersRegistered.Inc()
	s.logger().Info("member registered", zap.String("memberID", member.ID))
	return member, nil
}

func (s *DefaultMemberService) create(ctx context.Context, in models.RegistrationInput, role string) (*models.Member, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         role,
		JoinedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save member: %w", err)
	}
	return member, nil
}

// EnsureAdmin creates the administrator account if it does not exist yet.
func (s *DefaultMemberService) EnsureAdmin(ctx context.Context, email, password string) error {
	if password == "" {
		s.logger().Warn("ADMIN_PASSWORD not set, skipping admin account seeding")
		return nil
	}
	_, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	_, err = s.create(ctx, models.RegistrationInput{
		Name:            "Administrator",
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	}, models.RoleAdmin)
	if err != nil && !errors.Is(err, ErrEmailTaken) {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	s.logger().Info("admin account ready", zap.String("email", normalizeEmail(email)))
	return nil
}

func (s *DefaultMemberService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
