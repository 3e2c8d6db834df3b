package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pura-pata/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier validando el JWT de Supabase (HS256 con
// el JWT secret del proyecto). Si no hay secret, lee los claims sin verificar
// firma: el backend vuelve a validar el token en cada llamada.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(jwtSecret string) *Verifier {
	return &Verifier{
		secret: []byte(strings.TrimSpace(jwtSecret)),
		now:    time.Now,
	}
}

type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims := new(supabaseClaims)
	var err error
	if len(v.secret) == 0 {
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
		if err == nil && claims.ExpiresAt != nil && !v.now().Before(claims.ExpiresAt.Time) {
			err = jwt.ErrTokenExpired
		}
	} else {
		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithTimeFunc(v.now),
		)
		_, err = parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return v.secret, nil
		})
	}

	out := auth.Claims{
		UserID: strings.TrimSpace(claims.Subject),
		Email:  strings.TrimSpace(claims.Email),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// devolvemos claims igual: el refresh token puede recuperar la sesión
			return out, fmt.Errorf("%w: %v", auth.ErrTokenExpired, err)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", auth.ErrInvalidToken)
	}
	return out, nil
}
