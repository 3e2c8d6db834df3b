package dogs

import (
	"errors"
	"net/http"
	"strings"

	"pura-pata/internal/domain/photos"
	"pura-pata/internal/platform/httpclient"
)

var (
	ErrNotFound     = errors.New("dog not found")
	ErrForbidden    = errors.New("not the publisher of this dog")
	ErrUnauthorized = errors.New("authentication required")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	MsgCreateFailed  = "Error al publicar el perro"
	MsgUpdateFailed  = "Error al actualizar el perro"
	MsgLoadFailed    = "Error al cargar el perro"
	MsgListFailed    = "Error al cargar los perros"
	MsgMineFailed    = "Error al cargar tus perros"
	MsgDeleteFailed  = "Error al eliminar el perro"
	MsgStatusFailed  = "Error al actualizar el estado"
	MsgUploadFailed  = "Error al subir las fotos. Intenta de nuevo."
	MsgForbidden     = "No tienes permiso para editar este perro"
	MsgUnauthorized  = "Debes iniciar sesión"
	MsgNotFound      = "Perro no encontrado"
	MsgTooManyPhotos = "Máximo 5 fotos"
)

// ValidationError es un error de validación local (antes de cualquier red).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// UserMessage arma el único mensaje que ve el usuario, con esta precedencia:
// lista de validación del backend (unida con ", ") > detail simple > fallback.
// Los errores locales y de fotos tienen su propio texto.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if msg := photos.Message(err); msg != "" {
		return msg
	}
	var ue *photos.UploadError
	if errors.As(err, &ue) {
		return MsgUploadFailed
	}

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
	case errors.Is(err, ErrForbidden):
		return MsgForbidden
	case errors.Is(err, ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	}
	return fallback
}

// HTTPStatus elige el status de la respuesta del BFF para un error.
func HTTPStatus(err error) int {
	var ue *photos.UploadError
	switch {
	case errors.Is(err, ErrInvalidInput), photos.Message(err) != "":
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ue):
		return http.StatusBadGateway
	}
	if code := httpclient.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
