package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// Un token vencido devuelve ErrTokenExpired (envuelto) junto con los claims leídos.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Provider es el proveedor externo de auth (Supabase GoTrue en producción).
type Provider interface {
	// SignUp devuelve sesión nil cuando el proveedor exige confirmar el email.
	SignUp(ctx context.Context, in SignUpInput) (*Session, User, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	RequestPasswordReset(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, accessToken, newPassword string) (User, error)
	GetUser(ctx context.Context, accessToken string) (User, error)
}
