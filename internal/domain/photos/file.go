package photos

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const (
	MaxFiles    = 5
	MaxFileSize = 5 << 20 // 5 MiB
)

var (
	ErrTooManyFiles    = errors.New("too many photos")
	ErrFileTooLarge    = errors.New("photo exceeds max size")
	ErrUnsupportedType = errors.New("unsupported photo type")
	ErrContentMismatch = errors.New("photo content does not match its type")
	ErrEmptyFile       = errors.New("empty photo")
)

var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
}

// File es una foto ya leída en memoria (máx 5 MiB, así que cabe).
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Ext devuelve la extensión que se usa en el nombre del objeto.
func (f File) Ext() string {
	if ext, ok := allowedTypes[normalizeType(f.ContentType)]; ok {
		return ext
	}
	return "bin"
}

// Validate revisa cantidad, tamaño y tipo antes de subir nada.
func Validate(files []File) error {
	if len(files) > MaxFiles {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyFiles, len(files), MaxFiles)
	}
	for _, f := range files {
		if err := validateOne(f); err != nil {
			return err
		}
	}
	return nil
}

func validateOne(f File) error {
	if len(f.Data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, f.Name)
	}
	if f.Size() > MaxFileSize {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Name)
	}
	ct := normalizeType(f.ContentType)
	if _, ok := allowedTypes[ct]; !ok {
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, f.Name, f.ContentType)
	}

	// el navegador declara el tipo por extensión; confirmamos con los bytes
	sniffed := http.DetectContentType(f.Data)
	if allowedTypes[sniffed] != allowedTypes[ct] {
		return fmt.Errorf("%w: %s declared %s, got %s", ErrContentMismatch, f.Name, ct, sniffed)
	}
	return nil
}

func normalizeType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// FromMultipart lee los archivos del form. No lee más de MaxFileSize+1 bytes por archivo.
func FromMultipart(headers []*multipart.FileHeader) ([]File, error) {
	if len(headers) > MaxFiles {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyFiles, len(headers), MaxFiles)
	}

	out := make([]File, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > MaxFileSize {
			return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		out = append(out, File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return out, nil
}

// Message traduce los errores de validación a un texto para el formulario.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrTooManyFiles):
		return "Máximo 5 fotos"
	case errors.Is(err, ErrFileTooLarge):
		return "Cada foto debe pesar como máximo 5MB"
	case errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrContentMismatch):
		return "Solo se permiten imágenes JPG o PNG"
	case errors.Is(err, ErrEmptyFile):
		return "La foto está vacía"
	default:
		return ""
	}
}
