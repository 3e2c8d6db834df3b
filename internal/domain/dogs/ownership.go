package dogs

import (
	"context"
	"strings"

	"pura-pata/internal/ports/auth"
)

// EnsurePublisher verifica que el usuario de la sesión sea quien publicó el perro.
// El backend lo vuelve a validar; acá solo evitamos subir fotos en vano.
func EnsurePublisher(ctx context.Context, d Dog) error {
	uid := strings.TrimSpace(auth.UserID(ctx))
	if uid == "" {
		return ErrUnauthorized
	}
	if d.PublisherID != uid {
		return ErrForbidden
	}
	return nil
}
