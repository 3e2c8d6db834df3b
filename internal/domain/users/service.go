package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pura-pata/internal/platform/httpclient"
	"pura-pata/internal/ports/auth"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	MsgLoadFailed   = "Error al cargar el perfil"
	MsgUpdateFailed = "Error al actualizar el perfil"
	MsgCreateFailed = "Error al crear el perfil. Por favor intenta nuevamente."
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Me(ctx context.Context) (User, error) {
	if auth.UserID(ctx) == "" {
		return User{}, ErrUnauthorized
	}
	return s.repo.Me(ctx)
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileUpdate) (User, error) {
	if auth.UserID(ctx) == "" {
		return User{}, ErrUnauthorized
	}
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return User{}, ErrInvalidInput
		}
		in.Name = &v
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return User{}, ErrInvalidInput
	}
	return s.repo.UpdateMe(ctx, in)
}

// CreateProfile crea el perfil en el backend justo después del sign-up.
func (s *Service) CreateProfile(ctx context.Context, in CreateInput) (User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Email == "" || in.Name == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, in)
}

// UserMessage: detail del backend si lo hay, si no el fallback.
func UserMessage(err error, fallback string) string {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		list, single := he.DetailMessages()
		if len(list) > 0 {
			return strings.Join(list, ", ")
		}
		if single != "" {
			return single
		}
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "Debes iniciar sesión"
	case errors.Is(err, ErrInvalidInput):
		return "Revisa los datos del perfil"
	}
	return fallback
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	if code := httpclient.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
