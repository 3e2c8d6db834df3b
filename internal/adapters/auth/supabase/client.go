package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pura-pata/internal/platform/httpclient"
	"pura-pata/internal/ports/auth"
)

var (
	ErrUpstream = errors.New("supabase auth upstream error")
)

// Config del cliente GoTrue (auth de Supabase).
// URL y AnonKey normalmente vienen de SUPABASE_URL / SUPABASE_ANON_KEY.
type Config struct {
	URL     string
	AnonKey string

	// Timeout HTTP (si es 0 se usa httpclient.DefaultTimeout).
	Timeout time.Duration
}

// Client implementa auth.Provider contra la API REST de GoTrue.
type Client struct {
	anonKey string
	http    *httpclient.Client
	now     func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, auth.ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(base+"/auth/v1", cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		anonKey: strings.TrimSpace(cfg.AnonKey),
		http:    hc,
		now:     time.Now,
	}, nil
}

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (u userResponse) toUser() auth.User {
	return auth.User{
		ID:       strings.TrimSpace(u.ID),
		Email:    strings.TrimSpace(u.Email),
		Metadata: u.UserMetadata,
	}
}

type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	ExpiresAt    int64         `json:"expires_at"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user"`

	// signup con confirmación de email pendiente devuelve el user en la raíz
	userResponse
}

func (c *Client) toSession(tr tokenResponse) auth.Session {
	s := auth.Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	switch {
	case tr.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(tr.ExpiresAt, 0).UTC()
	case tr.ExpiresIn > 0:
		s.ExpiresAt = c.now().Add(time.Duration(tr.ExpiresIn) * time.Second).UTC()
	}
	if tr.User != nil {
		s.User = tr.User.toUser()
	}
	return s
}

func (c *Client) headers(token string) map[string]string {
	if strings.TrimSpace(token) == "" {
		token = c.anonKey
	}
	h := httpclient.Bearer(token)
	h["apikey"] = c.anonKey
	return h
}

func (c *Client) SignUp(ctx context.Context, in auth.SignUpInput) (*auth.Session, auth.User, error) {
	body := map[string]any{
		"email":    strings.TrimSpace(in.Email),
		"password": in.Password,
	}
	if len(in.Data) > 0 {
		body["data"] = in.Data
	}

	var out tokenResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "/signup", c.headers(""), body, &out); err != nil {
		return nil, auth.User{}, mapError(err)
	}

	if out.AccessToken == "" {
		// confirmación de email pendiente: no hay sesión todavía
		return nil, out.userResponse.toUser(), nil
	}
	s := c.toSession(out)
	return &s, s.User, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	var out tokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=password", c.headers(""), map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return auth.Session{}, mapError(err)
	}
	if out.AccessToken == "" {
		return auth.Session{}, fmt.Errorf("%w: token response without access_token", ErrUpstream)
	}
	return c.toSession(out), nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.http.DoJSON(ctx, http.MethodPost, "/logout", c.headers(accessToken), nil, nil); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	var out tokenResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=refresh_token", c.headers(""), map[string]string{
		"refresh_token": refreshToken,
	}, &out)
	if err != nil {
		return auth.Session{}, mapError(err)
	}
	return c.toSession(out), nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if strings.TrimSpace(redirectTo) != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, path, c.headers(""), map[string]string{"email": email}, nil); err != nil {
		return mapError(err)
	}
	return nil
}

func (c *Client) UpdatePassword(ctx context.Context, accessToken, newPassword string) (auth.User, error) {
	var out userResponse
	err := c.http.DoJSON(ctx, http.MethodPut, "/user", c.headers(accessToken), map[string]string{
		"password": newPassword,
	}, &out)
	if err != nil {
		return auth.User{}, mapError(err)
	}
	return out.toUser(), nil
}

func (c *Client) GetUser(ctx context.Context, accessToken string) (auth.User, error) {
	var out userResponse
	if err := c.http.DoJSON(ctx, http.MethodGet, "/user", c.headers(accessToken), nil, &out); err != nil {
		return auth.User{}, mapError(err)
	}
	return out.toUser(), nil
}

// mapError convierte errores 4xx de GoTrue en auth.ProviderError (mensaje tal cual);
// el resto queda como ErrUpstream.
func mapError(err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if he.StatusCode >= 500 {
		return fmt.Errorf("%w: %w", ErrUpstream, he)
	}

	// GoTrue ha usado dos formatos de error a lo largo de sus versiones.
	var body struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorCode        string `json:"error_code"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal([]byte(he.Body), &body)

	pe := &auth.ProviderError{StatusCode: he.StatusCode}
	pe.Code = firstNonEmpty(body.ErrorCode, body.Error)
	pe.Message = firstNonEmpty(body.Msg, body.ErrorDescription, body.Message, body.Error, he.Body, http.StatusText(he.StatusCode))
	return pe
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
