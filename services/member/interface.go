package member

import (
	"context"

	memberRepo "clubhouse/database/repository/member"
	"clubhouse/models"
	"clubhouse/utils"

	"go.uber.org/zap"
)

// MemberService covers registration, login and balances.
type MemberService interface {
	Register(ctx context.Context, in models.RegistrationInput) (*models.Member, error)
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)
	EnsureAdmin(ctx context.Context, email, password string) error
	Get(ctx context.Context, id string) (*models.Member, error)
	Search(ctx context.Context, term string) ([]models.Member, error)
	CreditBalance(ctx context.Context, id string, amount float64) error
}

// DefaultMemberService is the production implementation.
type DefaultMemberService struct {
	Repo   memberRepo.MemberRepository
	Tokens *utils.TokenIssuer
	Logger *zap.Logger
}
