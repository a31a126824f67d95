package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
)

var (
	ErrEmptyCredentials  = errors.New("username and password cannot be empty")
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// RoleMismatchError é devolvido quando a senha confere mas o papel pedido não.
type RoleMismatchError struct {
	Requested domain.Role
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("You don't have %s privileges", e.Requested)
}

// Session é o usuário autenticado, repassado explicitamente aos painéis.
type Session struct {
	User       domain.User
	LoggedInAt time.Time
}

// DriverID é o próprio username para sessões de motorista.
func (s *Session) DriverID() string {
	return s.User.Username
}

func (s *Session) Role() domain.Role {
	return s.User.Role
}

// LoginManager compara credenciais por igualdade simples contra a lista carregada.
type LoginManager struct {
	users  []domain.User
	logger pkgApp.AppLogger
}

func NewLoginManager(users []domain.User, logger pkgApp.AppLogger) *LoginManager {
	return &LoginManager{
		users:  append([]domain.User(nil), users...),
		logger: logger,
	}
}

func (m *LoginManager) Authenticate(ctx context.Context, username, password string, role domain.Role) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	user, found := m.FindUser(username)
	if !found {
		m.reject(ctx, username, ErrUserNotFound)
		return nil, ErrUserNotFound
	}

	if user.Password != password {
		m.reject(ctx, username, ErrIncorrectPassword)
		return nil, ErrIncorrectPassword
	}

	if user.Role != role {
		err := &RoleMismatchError{Requested: role}
		m.reject(ctx, username, err)
		return nil, err
	}

	pkgApp.LogInfo(ctx, m.logger, "login successful", map[string]interface{}{
		"username": username,
		"role":     role.String(),
	})
	return &Session{User: user, LoggedInAt: time.Now()}, nil
}

// Logout encerra a sessão: registra a saída e zera o valor apontado, que
// deixa de identificar qualquer usuário.
func (m *LoginManager) Logout(ctx context.Context, session *Session) {
	if session == nil {
		return
	}
	pkgApp.LogInfo(ctx, m.logger, "logout", map[string]interface{}{
		"username": session.User.Username,
	})
	*session = Session{}
}

func (m *LoginManager) FindUser(username string) (domain.User, bool) {
	for _, u := range m.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

func (m *LoginManager) reject(ctx context.Context, username string, err error) {
	pkgApp.LogDebug(ctx, m.logger, "login rejected", map[string]interface{}{
		"username": username,
		"reason":   err.Error(),
	})
}
