package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"pura-pata/internal/ports/storage"
)

// PhotoRoute es donde el router monta Handler() en modo dev.
const PhotoRoute = "/dev-photos"

type photoObject struct {
	contentType string
	data        []byte
}

// PhotoStore guarda las fotos en memoria y las sirve bajo PhotoRoute.
type PhotoStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]photoObject
}

func NewPhotoStore(publicBaseURL string) *PhotoStore {
	return &PhotoStore{
		baseURL: strings.TrimRight(publicBaseURL, "/") + PhotoRoute,
		objects: make(map[string]photoObject),
	}
}

func (s *PhotoStore) Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (string, error) {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return "", errors.New("photo path required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read photo %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// x-upsert=false, igual que el bucket real
	if _, exists := s.objects[path]; exists {
		return "", fmt.Errorf("photo %s already exists", path)
	}
	s.objects[path] = photoObject{contentType: contentType, data: data}
	return s.baseURL + "/" + path, nil
}

func (s *PhotoStore) Delete(ctx context.Context, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range paths {
		delete(s.objects, strings.TrimLeft(p, "/"))
	}
	return nil
}

func (s *PhotoStore) PathFromURL(publicURL string) (string, error) {
	p, ok := strings.CutPrefix(strings.TrimSpace(publicURL), s.baseURL+"/")
	if !ok || p == "" {
		return "", fmt.Errorf("%w: %s", storage.ErrForeignURL, publicURL)
	}
	return p, nil
}

// Len es la cantidad de objetos guardados.
func (s *PhotoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Handler sirve GET PhotoRoute/{path}. Montar con http.StripPrefix(PhotoRoute, ...).
func (s *PhotoStore) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		obj, ok := s.objects[strings.TrimLeft(r.URL.Path, "/")]
		s.mu.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", obj.contentType)
		w.Header().Set("Cache-Control", "max-age=3600")
		_, _ = w.Write(obj.data)
	})
}
