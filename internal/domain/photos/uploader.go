package photos

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"pura-pata/internal/platform/logger"
	"pura-pata/internal/platform/metrics"
	"pura-pata/internal/ports/storage"
)

// UploadError es la falla agregada de un lote. Uploaded trae, en orden, las URLs
// que sí se crearon: quedan huérfanas si nadie las borra.
type UploadError struct {
	Uploaded []string
	Failed   int
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("photo upload failed (%d failed, %d uploaded): %v", e.Failed, len(e.Uploaded), e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

type Uploader struct {
	store   storage.PhotoStore
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewUploader(store storage.PhotoStore, log logger.Logger, m *metrics.Metrics) *Uploader {
	if log == nil {
		log = logger.Nop()
	}
	return &Uploader{
		store:   store,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// UploadAll sube todas las fotos en paralelo y espera a que terminen todas.
// Devuelve las URLs en el mismo orden de entrada (la primera es la principal).
// Si alguna falla el lote entero falla con *UploadError; no hay reintentos.
func (u *Uploader) UploadAll(ctx context.Context, files []File) ([]string, error) {
	if err := Validate(files); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []string{}, nil
	}

	batch := ulid.MustNew(ulid.Timestamp(u.now()), ulid.Monotonic(rand.Reader, 0)).String()
	urls := make([]string, len(files))
	failed := make([]bool, len(files))

	// sin WithContext: una falla no cancela a las hermanas, así sabemos exactamente qué quedó subido
	var g errgroup.Group
	for i, f := range files {
		path := fmt.Sprintf("dogs/%s_%d.%s", batch, i, f.Ext())
		g.Go(func() error {
			url, err := u.store.Upload(ctx, path, normalizeType(f.ContentType), bytes.NewReader(f.Data), f.Size())
			u.metrics.UploadResult(err == nil)
			if err != nil {
				failed[i] = true
				u.log.Warn("photo upload failed", map[string]any{"path": path, "file": f.Name, "err": err})
				return fmt.Errorf("upload %s: %w", f.Name, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		ue := &UploadError{Err: err}
		for i, url := range urls {
			if failed[i] {
				ue.Failed++
				continue
			}
			ue.Uploaded = append(ue.Uploaded, url)
		}
		return nil, ue
	}
	return urls, nil
}

// Cleanup borra las fotos indicadas, una llamada por URL. Es best effort:
// los errores se loguean y se cuentan, nunca se devuelven al usuario.
// Devuelve cuántos deletes fallaron.
func (u *Uploader) Cleanup(ctx context.Context, urls []string) int {
	failures := 0
	for _, raw := range urls {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		path, err := u.store.PathFromURL(raw)
		if err == nil {
			err = u.store.Delete(ctx, []string{path})
		}
		u.metrics.CleanupResult(err == nil)
		if err != nil {
			failures++
			u.log.Warn("photo cleanup failed", map[string]any{"url": raw, "err": err})
		}
	}
	return failures
}
