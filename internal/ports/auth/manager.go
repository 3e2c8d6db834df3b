package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Manager es el único que escribe en la Cell. Envuelve al Provider y publica
// los eventos de sesión (sign-in, refresh, sign-out, recovery).
type Manager struct {
	provider Provider
	cell     *Cell
	now      func() time.Time
}

func NewManager(p Provider, initial *Session) *Manager {
	return &Manager{
		provider: p,
		cell:     newCell(initial),
		now:      time.Now,
	}
}

// Cell expone el lado de lectura/suscripción.
func (m *Manager) Cell() *Cell {
	return m.cell
}

func (m *Manager) Current() (Session, bool) {
	return m.cell.Current()
}

func (m *Manager) Subscribe(fn Listener) func() {
	return m.cell.Subscribe(fn)
}

// UserID devuelve el id del usuario de la sesión ("" si anónimo).
func (m *Manager) UserID() string {
	s, ok := m.cell.Current()
	if !ok {
		return ""
	}
	return s.User.ID
}

func (m *Manager) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	if m.provider == nil {
		return User{}, ErrNotConfigured
	}
	s, u, err := m.provider.SignUp(ctx, in)
	if err != nil {
		return User{}, err
	}
	if s != nil {
		m.cell.publish(EventSignedIn, s)
	}
	return u, nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (Session, error) {
	if m.provider == nil {
		return Session{}, ErrNotConfigured
	}
	s, err := m.provider.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return Session{}, err
	}
	m.cell.publish(EventSignedIn, &s)
	return s, nil
}

// SignOut limpia la sesión local aunque el proveedor falle; el error se devuelve igual.
func (m *Manager) SignOut(ctx context.Context) error {
	s, ok := m.cell.Current()
	var err error
	if ok && m.provider != nil && s.AccessToken != "" {
		err = m.provider.SignOut(ctx, s.AccessToken)
	}
	m.cell.publish(EventSignedOut, nil)
	return err
}

func (m *Manager) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	if m.provider == nil {
		return ErrNotConfigured
	}
	return m.provider.RequestPasswordReset(ctx, strings.TrimSpace(email), redirectTo)
}

// BeginRecovery instala la sesión temporal que viene en el link de recuperación.
func (m *Manager) BeginRecovery(accessToken, refreshToken string, expiresAt time.Time) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return ErrInvalidRecovery
	}
	m.cell.publish(EventPasswordRecovery, &Session{
		AccessToken:  accessToken,
		RefreshToken: strings.TrimSpace(refreshToken),
		ExpiresAt:    expiresAt,
	})
	return nil
}

func (m *Manager) UpdatePassword(ctx context.Context, newPassword string) (User, error) {
	if m.provider == nil {
		return User{}, ErrNotConfigured
	}
	token, err := m.AccessToken(ctx)
	if err != nil {
		return User{}, err
	}
	u, err := m.provider.UpdatePassword(ctx, token, newPassword)
	if err != nil {
		return User{}, err
	}

	s, ok := m.cell.Current()
	if ok {
		s.User = u
		m.cell.publish(EventUserUpdated, &s)
	}
	return u, nil
}

// AccessToken devuelve un token vigente, refrescando si hace falta.
// Sin sesión devuelve ErrNoSession.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	s, ok := m.cell.Current()
	if !ok || s.AccessToken == "" {
		return "", ErrNoSession
	}
	if !s.Expired(m.now()) {
		return s.AccessToken, nil
	}
	if s.RefreshToken == "" || m.provider == nil {
		m.cell.publish(EventSignedOut, nil)
		return "", ErrNoSession
	}

	fresh, err := m.provider.Refresh(ctx, s.RefreshToken)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) {
			// refresh token revocado/vencido: la sesión ya no existe
			m.cell.publish(EventSignedOut, nil)
			return "", ErrNoSession
		}
		return "", err
	}
	if fresh.User.ID == "" {
		fresh.User = s.User
	}
	m.cell.publish(EventTokenRefreshed, &fresh)
	return fresh.AccessToken, nil
}
