package auth

import (
	"context"
	"errors"
)

type ctxKey string

const managerKey ctxKey = "session-manager"

func WithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerKey, m)
}

func ManagerFrom(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(managerKey).(*Manager)
	return m, ok && m != nil
}

// UserID del request actual ("" si anónimo).
func UserID(ctx context.Context) string {
	m, ok := ManagerFrom(ctx)
	if !ok {
		return ""
	}
	return m.UserID()
}

// BearerToken es lo que usan los adapters salientes. Anónimo => "" sin error.
func BearerToken(ctx context.Context) (string, error) {
	m, ok := ManagerFrom(ctx)
	if !ok {
		return "", nil
	}
	tok, err := m.AccessToken(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	return tok, err
}
