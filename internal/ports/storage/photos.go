package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotConfigured = errors.New("photo storage not configured")
	ErrForeignURL    = errors.New("url does not belong to the photo bucket")
)

// PhotoStore es el object storage externo donde viven las fotos de los perros.
type PhotoStore interface {
	// Upload crea el objeto en path y devuelve su URL pública.
	Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (string, error)
	// Delete borra los objetos indicados (paths dentro del bucket).
	Delete(ctx context.Context, paths []string) error
	// PathFromURL traduce una URL pública al path del objeto.
	PathFromURL(publicURL string) (string, error)
}
