package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pura-pata/internal/platform/httpclient"
	"pura-pata/internal/ports/auth"
	"pura-pata/internal/ports/storage"
)

var (
	ErrUpstream = errors.New("supabase storage upstream error")
)

type Config struct {
	URL     string
	AnonKey string
	Bucket  string // default dog-photos

	// CacheControl en segundos para los objetos subidos (default 3600).
	CacheControl int
	Timeout      time.Duration
}

// PhotoStore implementa storage.PhotoStore sobre Supabase Storage.
// Sube con el token del usuario (RLS del bucket) o con la anon key si no hay sesión.
type PhotoStore struct {
	baseURL      string
	anonKey      string
	bucket       string
	cacheControl string
	http         *httpclient.Client
}

func NewPhotoStore(cfg Config) (*PhotoStore, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, storage.ErrNotConfigured
	}
	bucket := strings.Trim(strings.TrimSpace(cfg.Bucket), "/")
	if bucket == "" {
		bucket = "dog-photos"
	}
	cc := cfg.CacheControl
	if cc <= 0 {
		cc = 3600
	}

	hc, err := httpclient.NewWithBaseURL(base+"/storage/v1", cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &PhotoStore{
		baseURL:      base,
		anonKey:      strings.TrimSpace(cfg.AnonKey),
		bucket:       bucket,
		cacheControl: fmt.Sprintf("%d", cc),
		http:         hc,
	}, nil
}

func (s *PhotoStore) headers(ctx context.Context) (map[string]string, error) {
	token, err := auth.BearerToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		token = s.anonKey
	}
	h := httpclient.Bearer(token)
	h["apikey"] = s.anonKey
	return h, nil
}

func (s *PhotoStore) Upload(ctx context.Context, path, contentType string, body io.Reader, _ int64) (string, error) {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return "", errors.New("photo path required")
	}

	h, err := s.headers(ctx)
	if err != nil {
		return "", err
	}
	h["cache-control"] = "max-age=" + s.cacheControl
	h["x-upsert"] = "false"

	if err := s.http.DoRaw(ctx, http.MethodPost, "/object/"+s.bucket+"/"+escapePath(path), h, contentType, body, nil); err != nil {
		return "", fmt.Errorf("%w: upload %s: %w", ErrUpstream, path, err)
	}
	return s.PublicURL(path), nil
}

func (s *PhotoStore) Delete(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	h, err := s.headers(ctx)
	if err != nil {
		return err
	}
	if err := s.http.DoJSON(ctx, http.MethodDelete, "/object/"+s.bucket, h, map[string][]string{"prefixes": paths}, nil); err != nil {
		return fmt.Errorf("%w: delete: %w", ErrUpstream, err)
	}
	return nil
}

// PublicURL arma la URL pública del objeto (bucket público).
func (s *PhotoStore) PublicURL(path string) string {
	return s.baseURL + "/storage/v1/object/public/" + s.bucket + "/" + escapePath(path)
}

// PathFromURL toma lo que sigue a "/<bucket>/" en la URL pública.
func (s *PhotoStore) PathFromURL(publicURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(publicURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrForeignURL, err)
	}
	marker := "/" + s.bucket + "/"
	i := strings.Index(u.Path, marker)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", storage.ErrForeignURL, publicURL)
	}
	p := u.Path[i+len(marker):]
	if p == "" {
		return "", fmt.Errorf("%w: %s", storage.ErrForeignURL, publicURL)
	}
	return p, nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
