package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Post("/", createProfileHandler(svc))
		ur.Get("/me", getMeHandler(svc))
		ur.Put("/me", updateMeHandler(svc))
	})
}

// getMeHandler godoc
// @Summary  Perfil del usuario de la sesión
// @Tags     users
// @Produce  json
// @Success  200  {object}  User
// @Failure  401  {object}  map[string]string
// @Router   /users/me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Me(r.Context())
		if err != nil {
			writeError(w, r, err, MsgLoadFailed)
			return
		}
		writeJSON(w, r, http.StatusOK, u)
	}
}

func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ProfileUpdate
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			writeError(w, r, ErrInvalidInput, MsgUpdateFailed)
			return
		}
		u, err := svc.UpdateProfile(r.Context(), in)
		if err != nil {
			writeError(w, r, err, MsgUpdateFailed)
			return
		}
		writeJSON(w, r, http.StatusOK, u)
	}
}

func createProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CreateInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			writeError(w, r, ErrInvalidInput, MsgCreateFailed)
			return
		}
		u, err := svc.CreateProfile(r.Context(), in)
		if err != nil {
			writeError(w, r, err, MsgCreateFailed)
			return
		}
		writeJSON(w, r, http.StatusCreated, u)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	writeJSON(w, r, httpStatus(err), map[string]string{"error": UserMessage(err, fallback)})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
