// Package account agrupa los flujos de cuenta: registro (auth + perfil),
// inicio/cierre de sesión y recuperación de contraseña.
package account

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pura-pata/internal/domain/users"
	"pura-pata/internal/platform/logger"
	"pura-pata/internal/ports/auth"
)

const MinPasswordLength = 6

const (
	MsgPasswordMismatch = "Las contraseñas no coinciden"
	MsgPasswordTooShort = "La contraseña debe tener al menos 6 caracteres"
	MsgSignUpFailed     = "Ocurrió un error al crear la cuenta"
	MsgProfileFailed    = "Error al crear el perfil. Por favor intenta nuevamente."
	MsgSignInFailed     = "Ocurrió un error al iniciar sesión"
	MsgResetRejected    = "Error al enviar el correo de recuperación. Verifica que el correo sea correcto."
	MsgResetFailed      = "Ocurrió un error al enviar el correo de recuperación"
	MsgInvalidRecovery  = "El enlace de recuperación es inválido o ha expirado."
	MsgUpdateRejected   = "Error al actualizar la contraseña. Por favor, intenta de nuevo."
	MsgUpdateFailed     = "Ocurrió un error al actualizar la contraseña"
	MsgNoSession        = "Debes iniciar sesión"
)

// FormError es lo que ve el formulario: status HTTP + mensaje.
type FormError struct {
	Status  int
	Message string
	Err     error
}

func (e *FormError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *FormError) Unwrap() error {
	return e.Err
}

func formErr(status int, msg string, err error) *FormError {
	return &FormError{Status: status, Message: msg, Err: err}
}

// ProfileCreator crea el perfil en el backend (users.Service).
type ProfileCreator interface {
	CreateProfile(ctx context.Context, in users.CreateInput) (users.User, error)
}

type Service struct {
	profiles      ProfileCreator
	resetRedirect string
	log           logger.Logger
	now           func() time.Time
}

func NewService(profiles ProfileCreator, publicBaseURL string, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		profiles:      profiles,
		resetRedirect: strings.TrimRight(publicBaseURL, "/") + "/auth/reset-password",
		log:           log,
		now:           time.Now,
	}
}

// CheckPasswords valida la contraseña nueva antes de llamar al proveedor.
func CheckPasswords(password, confirm string) error {
	if password != confirm {
		return formErr(http.StatusBadRequest, MsgPasswordMismatch, nil)
	}
	if len([]rune(password)) < MinPasswordLength {
		return formErr(http.StatusBadRequest, MsgPasswordTooShort, nil)
	}
	return nil
}

type SignUpInput struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	Province        string   `json:"province"`
	Canton          string   `json:"canton"`
	Address         string   `json:"address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

type SignUpResult struct {
	User    auth.User   `json:"user"`
	Profile *users.User `json:"profile,omitempty"`
	// false = el proveedor pide confirmar el email antes de iniciar sesión
	SessionStarted bool   `json:"session_started"`
	Redirect       string `json:"redirect,omitempty"`
}

// SignUp registra en el proveedor y después crea el perfil en el backend.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (SignUpResult, error) {
	if err := CheckPasswords(in.Password, in.ConfirmPassword); err != nil {
		return SignUpResult{}, err
	}
	m, err := manager(ctx)
	if err != nil {
		return SignUpResult{}, err
	}

	u, err := m.SignUp(ctx, auth.SignUpInput{
		Email:    in.Email,
		Password: in.Password,
		Data: map[string]any{
			"name":  strings.TrimSpace(in.Name),
			"phone": strings.TrimSpace(in.Phone),
		},
	})
	if err != nil {
		return SignUpResult{}, providerErr(err, MsgSignUpFailed)
	}

	res := SignUpResult{User: u}
	_, res.SessionStarted = m.Current()
	if u.ID == "" {
		return res, nil
	}

	p, err := s.profiles.CreateProfile(ctx, users.CreateInput{
		Email:     strings.TrimSpace(in.Email),
		Name:      in.Name,
		Phone:     in.Phone,
		Province:  strings.TrimSpace(in.Province),
		Canton:    strings.TrimSpace(in.Canton),
		Address:   strings.TrimSpace(in.Address),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	})
	if err != nil {
		s.log.Error("profile creation failed after sign-up", map[string]any{"user_id": u.ID, "err": err})
		return res, formErr(http.StatusBadGateway, MsgProfileFailed, err)
	}
	res.Profile = &p
	res.Redirect = "/"
	return res, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	m, err := manager(ctx)
	if err != nil {
		return auth.Session{}, err
	}
	sess, err := m.SignIn(ctx, email, password)
	if err != nil {
		return auth.Session{}, providerErr(err, MsgSignInFailed)
	}
	return sess, nil
}

// SignOut siempre deja la sesión local limpia; un error del proveedor solo se loguea.
func (s *Service) SignOut(ctx context.Context) {
	m, err := manager(ctx)
	if err != nil {
		return
	}
	if err := m.SignOut(ctx); err != nil {
		s.log.Warn("provider sign-out failed", map[string]any{"err": err})
	}
}

// Session devuelve la sesión vigente (refrescándola si hace falta).
func (s *Service) Session(ctx context.Context) (auth.Session, bool) {
	m, err := manager(ctx)
	if err != nil {
		return auth.Session{}, false
	}
	if _, err := m.AccessToken(ctx); err != nil {
		if !errors.Is(err, auth.ErrNoSession) {
			s.log.Warn("session refresh failed", map[string]any{"err": err})
		}
		return auth.Session{}, false
	}
	return m.Current()
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return formErr(http.StatusBadRequest, MsgResetRejected, nil)
	}
	m, err := manager(ctx)
	if err != nil {
		return err
	}
	if err := m.RequestPasswordReset(ctx, email, s.resetRedirect); err != nil {
		var pe *auth.ProviderError
		if errors.As(err, &pe) {
			return formErr(http.StatusBadRequest, MsgResetRejected, err)
		}
		return formErr(http.StatusBadGateway, MsgResetFailed, err)
	}
	return nil
}

// Recovery es lo que trae el fragmento del link de recuperación.
type Recovery struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// ParseRecoveryFragment lee "#access_token=...&refresh_token=...&expires_in=3600&type=recovery".
func ParseRecoveryFragment(fragment string, now time.Time) (Recovery, error) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	q, err := url.ParseQuery(fragment)
	if err != nil {
		return Recovery{}, auth.ErrInvalidRecovery
	}
	if q.Get("type") != "recovery" || strings.TrimSpace(q.Get("access_token")) == "" {
		return Recovery{}, auth.ErrInvalidRecovery
	}

	r := Recovery{
		AccessToken:  strings.TrimSpace(q.Get("access_token")),
		RefreshToken: strings.TrimSpace(q.Get("refresh_token")),
	}
	if at, err := strconv.ParseInt(q.Get("expires_at"), 10, 64); err == nil && at > 0 {
		r.ExpiresAt = time.Unix(at, 0).UTC()
	} else if in, err := strconv.ParseInt(q.Get("expires_in"), 10, 64); err == nil && in > 0 {
		r.ExpiresAt = now.Add(time.Duration(in) * time.Second).UTC()
	}
	return r, nil
}

type UpdatePasswordInput struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	// Fragmento del link de recuperación; vacío = cambiar la de la sesión actual.
	RecoveryFragment string `json:"recovery_fragment"`
}

func (s *Service) UpdatePassword(ctx context.Context, in UpdatePasswordInput) (auth.User, error) {
	m, err := manager(ctx)
	if err != nil {
		return auth.User{}, err
	}

	if strings.TrimSpace(in.RecoveryFragment) != "" {
		rec, err := ParseRecoveryFragment(in.RecoveryFragment, s.now())
		if err != nil {
			return auth.User{}, formErr(http.StatusBadRequest, MsgInvalidRecovery, err)
		}
		if err := CheckPasswords(in.Password, in.ConfirmPassword); err != nil {
			return auth.User{}, err
		}
		if err := m.BeginRecovery(rec.AccessToken, rec.RefreshToken, rec.ExpiresAt); err != nil {
			return auth.User{}, formErr(http.StatusBadRequest, MsgInvalidRecovery, err)
		}
	} else if err := CheckPasswords(in.Password, in.ConfirmPassword); err != nil {
		return auth.User{}, err
	}

	u, err := m.UpdatePassword(ctx, in.Password)
	if err != nil {
		var pe *auth.ProviderError
		switch {
		case errors.Is(err, auth.ErrNoSession):
			return auth.User{}, formErr(http.StatusUnauthorized, MsgNoSession, err)
		case errors.As(err, &pe):
			return auth.User{}, formErr(http.StatusBadRequest, MsgUpdateRejected, err)
		default:
			return auth.User{}, formErr(http.StatusBadGateway, MsgUpdateFailed, err)
		}
	}
	return u, nil
}

// providerErr: los errores "de negocio" del proveedor se muestran tal cual.
func providerErr(err error, fallback string) error {
	var pe *auth.ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		status := pe.StatusCode
		if status < 400 || status >= 500 {
			status = http.StatusBadRequest
		}
		return formErr(status, pe.Message, err)
	}
	if errors.Is(err, auth.ErrNotConfigured) {
		return formErr(http.StatusServiceUnavailable, fallback, err)
	}
	return formErr(http.StatusBadGateway, fallback, err)
}

var errNoManager = formErr(http.StatusInternalServerError, "sesión no disponible", errors.New("no session manager in context"))

func manager(ctx context.Context) (*auth.Manager, error) {
	m, ok := auth.ManagerFrom(ctx)
	if !ok {
		return nil, errNoManager
	}
	return m, nil
}
