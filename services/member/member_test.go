package member

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubhouse/database"
	memberRepo "clubhouse/database/repository/member"
	"clubhouse/models"
	"clubhouse/utils"

	"go.uber.org/zap"
)

func newTestService(t *testing.T) *DefaultMemberService {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &DefaultMemberService{
		Repo:   memberRepo.NewSQLiteMemberRepo(db),
		Tokens: utils.NewTokenIssuer("test-secret", time.Hour),
		Logger: zap.NewNop(),
	}
}

func registration(email string) models.RegistrationInput {
	return models.RegistrationInput{
		Name:            "Ann Court",
		Email:           email,
		Phone:           "555-0101",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.Register(ctx, registration("Ann@Example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if m.Email != "ann@example.com" || m.Role != models.RoleMember || m.Balance != 0 {
		t.Errorf("unexpected member %+v", m)
	}
	if m.PasswordHash == "secret1" {
		t.Error("password stored in clear text")
	}

	auth, err := svc.Authenticate(ctx, "ANN@example.com", "secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	claims, err := svc.Tokens.ValidateToken(auth.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Subject != m.ID || claims.Role != models.RoleMember {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := svc.Authenticate(ctx, "ann@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registration("ann@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	dup := registration("ANN@example.com")
	if _, err := svc.Register(ctx, dup); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: err = %v", err)
	}

	mismatch := registration("bob@example.com")
	mismatch.ConfirmPassword = "other1"
	if _, err := svc.Register(ctx, mismatch); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("mismatch: err = %v", err)
	}

	missing := registration("")
	if _, err := svc.Register(ctx, missing); !errors.Is(err, ErrMissingFields) {
		t.Errorf("missing email: err = %v", err)
	}

	bad := registration("not-an-email")
	if _, err := svc.Register(ctx, bad); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("bad email: err = %v", err)
	}
}

func TestSearchAndBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ann, _ := svc.Register(ctx, registration("ann@example.com"))
	bob := registration("bob@example.com")
	bob.Name = "Bob Baseline"
	bob.Phone = "555-0202"
	if _, err := svc.Register(ctx, bob); err != nil {
		t.Fatalf("Register: %v", err)
	}

	all, err := svc.Search(ctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("Search all = %d, %v", len(all), err)
	}
	for term, want := range map[string]int{"baseline": 1, "EXAMPLE": 2, "0202": 1, "zed": 0} {
		got, err := svc.Search(ctx, term)
		if err != nil {
			t.Fatalf("Search(%q): %v", term, err)
		}
		if len(got) != want {
			t.Errorf("Search(%q) = %d members, want %d", term, len(got), want)
		}
	}

	if err := svc.CreditBalance(ctx, ann.ID, 7.5); err != nil {
		t.Fatalf("CreditBalance: %v", err)
	}
	if err := svc.CreditBalance(ctx, ann.ID, 15); err != nil {
		t.Fatalf("CreditBalance: %v", err)
	}
	got, err := svc.Get(ctx, ann.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Balance != 22.5 {
		t.Errorf("balance = %v, want 22.5", got.Balance)
	}

	if err := svc.CreditBalance(ctx, "missing", 1); err == nil {
		t.Error("crediting an unknown member should fail")
	}
	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("Get missing: err = %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin@club.test", "adminpw"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	if err := svc.EnsureAdmin(ctx, "admin@club.test", "adminpw"); err != nil {
		t.Fatalf("EnsureAdmin second call: %v", err)
	}
	auth, err := svc.Authenticate(ctx, "admin@club.test", "adminpw")
	if err != nil {
		t.Fatalf("Authenticate admin: %v", err)
	}
	if !auth.Member.IsAdmin() {
		t.Errorf("seeded account role = %q", auth.Member.Role)
	}
}
