package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pura-pata/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", signUpHandler(svc))
		ar.Post("/signin", signInHandler(svc))
		ar.Post("/signout", signOutHandler(svc))
		ar.Get("/session", sessionHandler(svc))
		ar.Post("/password/reset", resetHandler(svc))
		ar.Post("/password/update", updatePasswordHandler(svc))
	})
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func toSessionResponse(s auth.Session, ok bool) sessionResponse {
	if !ok {
		return sessionResponse{}
	}
	resp := sessionResponse{Authenticated: true, User: &s.User}
	if !s.ExpiresAt.IsZero() {
		at := s.ExpiresAt
		resp.ExpiresAt = &at
	}
	return resp
}

// signUpHandler godoc
// @Summary  Registro (proveedor de auth + perfil en el backend)
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  SignUpInput  true  "datos del registro"
// @Success  201  {object}  SignUpResult
// @Failure  400  {object}  map[string]string
// @Router   /auth/signup [post]
func signUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in SignUpInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": MsgSignUpFailed})
			return
		}
		res, err := svc.SignUp(r.Context(), in)
		if err != nil {
			writeError(w, r, err, MsgSignUpFailed)
			return
		}
		writeJSON(w, r, http.StatusCreated, res)
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signInHandler godoc
// @Summary  Inicio de sesión con email y contraseña
// @Tags     auth
// @Accept   json
// @Produce  json
// @Success  200  {object}  sessionResponse
// @Failure  400  {object}  map[string]string
// @Router   /auth/signin [post]
func signInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": MsgSignInFailed})
			return
		}
		s, err := svc.SignIn(r.Context(), in.Email, in.Password)
		if err != nil {
			writeError(w, r, err, MsgSignInFailed)
			return
		}
		writeJSON(w, r, http.StatusOK, toSessionResponse(s, true))
	}
}

func signOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.SignOut(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

func sessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, toSessionResponse(svc.Session(r.Context())))
	}
}

// resetHandler godoc
// @Summary  Envía el correo de recuperación de contraseña
// @Tags     auth
// @Accept   json
// @Success  204
// @Failure  400  {object}  map[string]string
// @Router   /auth/password/reset [post]
func resetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email string `json:"email"`
		}
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": MsgResetRejected})
			return
		}
		if err := svc.RequestPasswordReset(r.Context(), in.Email); err != nil {
			writeError(w, r, err, MsgResetFailed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// updatePasswordHandler godoc
// @Summary  Cambia la contraseña (sesión actual o link de recuperación)
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  UpdatePasswordInput  true  "contraseña nueva"
// @Success  200  {object}  map[string]any
// @Failure  400  {object}  map[string]string
// @Router   /auth/password/update [post]
func updatePasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in UpdatePasswordInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": MsgUpdateFailed})
			return
		}
		u, err := svc.UpdatePassword(r.Context(), in)
		if err != nil {
			writeError(w, r, err, MsgUpdateFailed)
			return
		}
		// después del cambio se vuelve al login
		writeJSON(w, r, http.StatusOK, map[string]any{"user": u, "redirect": "/auth/login"})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var fe *FormError
	if errors.As(err, &fe) {
		writeJSON(w, r, fe.Status, map[string]string{"error": fe.Message})
		return
	}
	writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": fallback})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
