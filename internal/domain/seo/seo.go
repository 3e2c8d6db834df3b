// Package seo sirve robots.txt, sitemap.xml y el JSON-LD del detalle de cada perro.
package seo

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pura-pata/internal/domain/dogs"
	"pura-pata/internal/platform/logger"
)

// Source son los perros disponibles (dogs.Service).
type Source interface {
	Browse(ctx context.Context, f dogs.Filters) ([]dogs.Dog, error)
}

type robotsGroup struct {
	UserAgent string
	Disallow  []string
}

var robotsGroups = []robotsGroup{
	{UserAgent: "*", Disallow: []string{"/api/", "/auth/", "/_next/", "/publicar", "/perros/*/editar", "/mi-perfil"}},
	{UserAgent: "Googlebot", Disallow: []string{"/api/", "/auth/", "/publicar", "/perros/*/editar", "/mi-perfil"}},
}

// Robots arma el robots.txt; baseURL sin "/" final.
func Robots(baseURL string) string {
	var b strings.Builder
	for i, g := range robotsGroups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User-Agent: %s\nAllow: /\n", g.UserAgent)
		for _, d := range g.Disallow {
			fmt.Fprintf(&b, "Disallow: %s\n", d)
		}
	}
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", baseURL)
	return b.String()
}

type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type staticPage struct {
	path     string
	freq     string
	priority float64
}

var staticPages = []staticPage{
	{"", "daily", 1.0},
	{"/login", "monthly", 0.5},
	{"/registro", "monthly", 0.5},
	{"/publicar", "monthly", 0.7},
	{"/recuperar-password", "yearly", 0.3},
}

// Sitemap: páginas fijas + una por perro disponible.
func Sitemap(baseURL string, items []dogs.Dog, now time.Time) URLSet {
	set := URLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        baseURL + p.path,
			LastMod:    now.UTC().Format(time.RFC3339),
			ChangeFreq: p.freq,
			Priority:   p.priority,
		})
	}
	for _, d := range items {
		mod := d.UpdatedAt.Time
		if mod.IsZero() {
			mod = d.CreatedAt.Time
		}
		u := URL{Loc: baseURL + "/perros/" + d.ID, ChangeFreq: "weekly", Priority: 0.8}
		if !mod.IsZero() {
			u.LastMod = mod.UTC().Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, u)
	}
	return set
}

func RegisterRoutes(r chi.Router, src Source, baseURL string, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	baseURL = strings.TrimRight(baseURL, "/")

	r.Get("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(Robots(baseURL)))
	})

	r.Get("/sitemap.xml", func(w http.ResponseWriter, req *http.Request) {
		items, err := src.Browse(req.Context(), dogs.Filters{})
		if err != nil {
			// sin backend se publican igual las páginas fijas
			log.Warn("sitemap: could not list dogs", map[string]any{"err": err})
			items = nil
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write([]byte(xml.Header))
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(Sitemap(baseURL, items, time.Now())); err != nil {
			log.Error("sitemap: encode failed", map[string]any{"err": err})
		}
	})
}
