package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	zapAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/zaplogger/adapter"
)

func newLoginManager() *LoginManager {
	return NewLoginManager([]domain.User{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "D101", Password: "driver123", Role: domain.RoleDriver},
	}, zapAdapter.NewNopAppLogger())
}

func TestLoginManager_Authenticate(t *testing.T) {
	m := newLoginManager()

	session, err := m.Authenticate(context.Background(), "D101", "driver123", domain.RoleDriver)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if session.DriverID() != "D101" || session.Role() != domain.RoleDriver {
		t.Errorf("unexpected session %+v", session)
	}
}

func TestLoginManager_LogoutClearsSession(t *testing.T) {
	m := newLoginManager()

	session, err := m.Authenticate(context.Background(), "admin", "admin123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	m.Logout(context.Background(), session)
	if session.User != (domain.User{}) || !session.LoggedInAt.IsZero() {
		t.Errorf("session after logout = %+v, want zero value", session)
	}
	if session.Role() == domain.RoleAdmin {
		t.Error("a cleared session must not keep admin privileges")
	}

	m.Logout(context.Background(), nil)
}

func TestLoginManager_DistinctFailures(t *testing.T) {
	m := newLoginManager()
	ctx := context.Background()

	if _, err := m.Authenticate(ctx, "ghost", "x", domain.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := m.Authenticate(ctx, "admin", "wrong", domain.RoleAdmin); !errors.Is(err, ErrIncorrectPassword) {
		t.Errorf("expected ErrIncorrectPassword, got %v", err)
	}

	_, err := m.Authenticate(ctx, "admin", "admin123", domain.RoleDriver)
	var mismatch *RoleMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected RoleMismatchError, got %v", err)
	}
	if err.Error() != "You don't have Driver privileges" {
		t.Errorf("unexpected message %q", err.Error())
	}

	if _, err := m.Authenticate(ctx, "", "admin123", domain.RoleAdmin); !errors.Is(err, ErrEmptyCredentials) {
		t.Errorf("expected ErrEmptyCredentials, got %v", err)
	}
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	session := &Session{User: domain.User{Username: "D101", Role: domain.RoleDriver}}

	token, err := issuer.Issue(session)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != "D101" || claims.UserRole() != domain.RoleDriver {
		t.Errorf("unexpected claims %+v", claims)
	}

	other := NewTokenIssuer("other-secret", time.Hour)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token signed with another secret must be rejected, got %v", err)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Issue(&Session{User: domain.User{Username: "admin", Role: domain.RoleAdmin}})
	if err != nil {
		t.Fatal(err)
	}

	issuer.now = time.Now
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token accepted, err = %v", err)
	}
}
