// Package restapi habla con el backend REST (FastAPI) en API_URL/api/v1.
package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pura-pata/internal/platform/httpclient"
	"pura-pata/internal/ports/auth"
)

var ErrNotConfigured = errors.New("backend api url not configured")

type Config struct {
	APIURL  string // sin /api/v1
	Timeout time.Duration
}

// Client es compartido por los repos; el token sale de la sesión en ctx.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if base == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(base+"/api/v1", cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	token, err := auth.BearerToken(ctx)
	if err != nil {
		return err
	}
	var headers map[string]string
	if token != "" {
		headers = httpclient.Bearer(token)
	}
	return c.http.DoJSON(ctx, method, path, headers, in, out)
}

// classify envuelve el HTTPError con el sentinel del dominio y conserva
// el error original (para los detail de FastAPI).
func classify(err error, notFound, forbidden, unauthorized error) error {
	if err == nil {
		return nil
	}
	switch httpclient.StatusCode(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", notFound, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", forbidden, err)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", unauthorized, err)
	}
	if errors.Is(err, auth.ErrNoSession) {
		return fmt.Errorf("%w: %w", unauthorized, err)
	}
	return err
}
