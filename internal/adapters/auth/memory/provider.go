// Package memory es el proveedor de auth de modo dev: usuarios en memoria y
// access tokens JWT firmados con un secret local.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pura-pata/internal/ports/auth"
)

const DefaultTTL = time.Hour

type account struct {
	user auth.User
	hash []byte
}

// Provider implementa auth.Provider y auth.AuthVerifier.
type Provider struct {
	mu       sync.Mutex
	secret   []byte
	ttl      time.Duration
	byEmail  map[string]*account
	byID     map[string]*account
	refresh  map[string]string // refresh token -> user id
	recovery map[string]string // email -> redirect del último reset pedido
	now      func() time.Time
}

func NewProvider(secret string, ttl time.Duration) *Provider {
	if strings.TrimSpace(secret) == "" {
		secret = "dev-secret"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Provider{
		secret:   []byte(secret),
		ttl:      ttl,
		byEmail:  make(map[string]*account),
		byID:     make(map[string]*account),
		refresh:  make(map[string]string),
		recovery: make(map[string]string),
		now:      time.Now,
	}
}

var (
	errInvalidCredentials = &auth.ProviderError{StatusCode: 400, Code: "invalid_credentials", Message: "Invalid login credentials"}
	errUserExists         = &auth.ProviderError{StatusCode: 422, Code: "user_already_exists", Message: "User already registered"}
	errWeakPassword       = &auth.ProviderError{StatusCode: 422, Code: "weak_password", Message: "Password should be at least 6 characters."}
	errBadRefresh         = &auth.ProviderError{StatusCode: 400, Code: "refresh_token_not_found", Message: "Invalid Refresh Token: Refresh Token Not Found"}
	errBadJWT             = &auth.ProviderError{StatusCode: 401, Code: "bad_jwt", Message: "invalid JWT"}
)

func (p *Provider) SignUp(ctx context.Context, in auth.SignUpInput) (*auth.Session, auth.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, auth.User{}, &auth.ProviderError{StatusCode: 400, Code: "validation_failed", Message: "Unable to validate email address: invalid format"}
	}
	if len(in.Password) < 6 {
		return nil, auth.User{}, errWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, auth.User{}, fmt.Errorf("hash password: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		return nil, auth.User{}, errUserExists
	}
	a := &account{
		user: auth.User{ID: uuid.NewString(), Email: email, Metadata: in.Data},
		hash: hash,
	}
	p.byEmail[email] = a
	p.byID[a.user.ID] = a

	s, err := p.issue(a.user)
	if err != nil {
		return nil, auth.User{}, err
	}
	return &s, a.user, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok || bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return auth.Session{}, errInvalidCredentials
	}
	return p.issue(a.user)
}

// SignOut revoca todos los refresh tokens del usuario (scope global).
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	c, err := p.Verify(ctx, accessToken)
	if err != nil && !errors.Is(err, auth.ErrTokenExpired) {
		return errBadJWT
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for rt, uid := range p.refresh {
		if uid == c.UserID {
			delete(p.refresh, rt)
		}
	}
	return nil
}

// Refresh rota el refresh token: el viejo deja de servir.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	uid, ok := p.refresh[refreshToken]
	if !ok {
		return auth.Session{}, errBadRefresh
	}
	delete(p.refresh, refreshToken)
	a, ok := p.byID[uid]
	if !ok {
		return auth.Session{}, errBadRefresh
	}
	return p.issue(a.user)
}

// RequestPasswordReset no revela si el email existe.
func (p *Provider) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := p.byEmail[email]; ok {
		p.recovery[email] = redirectTo
	}
	return nil
}

// RecoveryLink arma el link que llegaría por correo para el último reset pedido.
func (p *Provider) RecoveryLink(email string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	redirect, ok := p.recovery[email]
	if !ok {
		return "", false
	}
	s, err := p.issue(p.byEmail[email].user)
	if err != nil {
		return "", false
	}
	delete(p.recovery, email)
	return fmt.Sprintf("%s#access_token=%s&refresh_token=%s&expires_in=%d&type=recovery",
		redirect, s.AccessToken, s.RefreshToken, int64(p.ttl/time.Second)), true
}

func (p *Provider) UpdatePassword(ctx context.Context, accessToken, newPassword string) (auth.User, error) {
	c, err := p.Verify(ctx, accessToken)
	if err != nil {
		return auth.User{}, errBadJWT
	}
	if len(newPassword) < 6 {
		return auth.User{}, errWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return auth.User{}, fmt.Errorf("hash password: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.byID[c.UserID]
	if !ok {
		return auth.User{}, errBadJWT
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(newPassword)) == nil {
		return auth.User{}, &auth.ProviderError{StatusCode: 422, Code: "same_password", Message: "New password should be different from the old password."}
	}
	a.hash = hash
	return a.user, nil
}

func (p *Provider) GetUser(ctx context.Context, accessToken string) (auth.User, error) {
	c, err := p.Verify(ctx, accessToken)
	if err != nil {
		return auth.User{}, errBadJWT
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.byID[c.UserID]
	if !ok {
		return auth.User{}, errBadJWT
	}
	return a.user, nil
}

type devClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (p *Provider) Verify(ctx context.Context, token string) (auth.Claims, error) {
	claims := new(devClaims)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	)
	_, err := parser.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	})

	out := auth.Claims{UserID: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return out, fmt.Errorf("%w: %v", auth.ErrTokenExpired, err)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	return out, nil
}

// issue firma un access token y registra un refresh token nuevo. Llamar con el lock tomado.
func (p *Provider) issue(u auth.User) (auth.Session, error) {
	now := p.now()
	exp := now.Add(p.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, devClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	})
	signed, err := tok.SignedString(p.secret)
	if err != nil {
		return auth.Session{}, fmt.Errorf("sign token: %w", err)
	}

	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return auth.Session{}, fmt.Errorf("refresh token: %w", err)
	}
	rt := hex.EncodeToString(b[:])
	p.refresh[rt] = u.ID

	return auth.Session{
		AccessToken:  signed,
		RefreshToken: rt,
		ExpiresAt:    exp.Truncate(time.Second),
		User:         u,
	}, nil
}
