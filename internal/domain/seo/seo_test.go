package seo

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pura-pata/internal/domain/dogs"
	"pura-pata/internal/platform/apitime"
)

type fakeSource struct {
	items []dogs.Dog
	err   error
}

func (f fakeSource) Browse(ctx context.Context, fl dogs.Filters) ([]dogs.Dog, error) {
	return f.items, f.err
}

func TestRobots(t *testing.T) {
	txt := Robots("https://pura-pata.com")

	assert.True(t, strings.HasPrefix(txt, "User-Agent: *\nAllow: /\nDisallow: /api/\n"))
	assert.Contains(t, txt, "User-Agent: Googlebot\n")
	assert.Contains(t, txt, "Disallow: /perros/*/editar\n")
	assert.True(t, strings.HasSuffix(txt, "Sitemap: https://pura-pata.com/sitemap.xml\n"))
	// /_next/ solo para el grupo genérico
	assert.Equal(t, 1, strings.Count(txt, "/_next/"))
}

func TestSitemap(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	created := apitime.New(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
	updated := apitime.New(time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC))

	set := Sitemap("https://pura-pata.com", []dogs.Dog{
		{ID: "d1", CreatedAt: created, UpdatedAt: updated},
		{ID: "d2", CreatedAt: created},
	}, now)

	require.Len(t, set.URLs, len(staticPages)+2)
	assert.Equal(t, "https://pura-pata.com", set.URLs[0].Loc)
	assert.Equal(t, 1.0, set.URLs[0].Priority)

	d1 := set.URLs[len(staticPages)]
	assert.Equal(t, "https://pura-pata.com/perros/d1", d1.Loc)
	assert.Equal(t, "2025-05-20T10:00:00Z", d1.LastMod)
	assert.Equal(t, "weekly", d1.ChangeFreq)
	assert.Equal(t, "2025-05-01T10:00:00Z", set.URLs[len(staticPages)+1].LastMod)
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, fakeSource{items: []dogs.Dog{{ID: "d1"}}}, "https://pura-pata.com/", nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var set URLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	assert.Len(t, set.URLs, len(staticPages)+1)
	assert.Equal(t, "https://pura-pata.com/perros/d1", set.URLs[len(staticPages)].Loc)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	assert.Contains(t, rec.Body.String(), "Sitemap: https://pura-pata.com/sitemap.xml")
}

func TestSitemap_BackendDownStillServesStaticPages(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, fakeSource{err: errors.New("down")}, "https://pura-pata.com", nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var set URLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))
	assert.Len(t, set.URLs, len(staticPages))
}
