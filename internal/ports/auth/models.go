package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrTokenExpired    = errors.New("token expired")
	ErrInvalidToken    = errors.New("invalid token")
	ErrNotConfigured   = errors.New("auth provider not configured")
	ErrInvalidRecovery = errors.New("invalid recovery link")
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// User es la proyección del usuario que devuelve el proveedor de auth.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

// Session es la sesión vigente del proveedor (access + refresh token).
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// margen para refrescar antes de que el proveedor rechace el token
const expiryMargin = 30 * time.Second

// Expired indica si el access token ya no sirve (o está por vencer).
// ExpiresAt cero = no sabemos, se asume vigente.
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(s.ExpiresAt.Add(-expiryMargin))
}

// Event nombra los cambios de estado de la sesión.
type Event string

const (
	EventSignedIn         Event = "SIGNED_IN"
	EventSignedOut        Event = "SIGNED_OUT"
	EventTokenRefreshed   Event = "TOKEN_REFRESHED"
	EventUserUpdated      Event = "USER_UPDATED"
	EventPasswordRecovery Event = "PASSWORD_RECOVERY"
)

type SignUpInput struct {
	Email    string
	Password string
	Data     map[string]any // user_metadata (name, phone, ...)
}

// ProviderError es un error "de negocio" del proveedor (credenciales inválidas,
// email ya registrado, etc). El mensaje se muestra tal cual al usuario.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("auth provider: status=%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("auth provider: status=%d code=%s: %s", e.StatusCode, e.Code, e.Message)
}
