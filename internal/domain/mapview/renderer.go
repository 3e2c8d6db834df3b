// Package mapview proyecta la lista de perros a una escena de mapa (tiles OSM +
// marcadores). No trae datos: dibuja lo que le pasan.
package mapview

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	"github.com/mmcloughlin/geohash"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pura-pata/internal/domain/dogs"
)

const (
	DefaultZoom    = 8
	DefaultMaxZoom = 19
	DefaultPadding = 50

	geohashPrecision = 9
)

// Centro de Costa Rica.
var DefaultCenter = LatLng{Lat: 9.7489, Lng: -83.7534}

var OSMTiles = TileLayer{
	URLTemplate: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
	Subdomains:  []string{"a", "b", "c"},
	Attribution: "© OpenStreetMap contributors",
	MaxZoom:     DefaultMaxZoom,
}

type TileLayer struct {
	URLTemplate string   `json:"url_template"`
	Subdomains  []string `json:"subdomains"`
	Attribution string   `json:"attribution"`
	MaxZoom     int      `json:"max_zoom"`
}

type Popup struct {
	Name   string `json:"name"`
	Breed  string `json:"breed"`
	Size   string `json:"size"`
	Gender string `json:"gender"`
	Link   string `json:"link"`
	HTML   string `json:"html"`
}

// Marker es un perro en el mapa. Key = geohash:id, estable entre renders.
type Marker struct {
	Key      string `json:"key"`
	DogID    string `json:"dog_id"`
	Position LatLng `json:"position"`
	Popup    Popup  `json:"popup"`
}

type Scene struct {
	Tiles    TileLayer `json:"tiles"`
	Viewport Viewport  `json:"viewport"`
	Bounds   *Bounds   `json:"bounds,omitempty"`
	Fitted   bool      `json:"fitted"`
	Markers  []Marker  `json:"markers"`
	// Cleared = marcadores del render anterior que se quitaron.
	Cleared int `json:"cleared"`
}

type Options struct {
	Center  LatLng
	Zoom    int
	Size    PixelSize
	Padding int
	Tiles   TileLayer
}

// Renderer mantiene el estado del mapa entre renders: viewport y marcadores.
type Renderer struct {
	mu       sync.Mutex
	opts     Options
	viewport Viewport
	markers  []Marker
	title    cases.Caser
}

func NewRenderer(opts Options) *Renderer {
	if opts.Center == (LatLng{}) {
		opts.Center = DefaultCenter
		if opts.Zoom == 0 {
			opts.Zoom = DefaultZoom
		}
	}
	if opts.Size.W <= 0 || opts.Size.H <= 0 {
		opts.Size = PixelSize{W: 800, H: 500}
	}
	if opts.Padding <= 0 {
		opts.Padding = DefaultPadding
	}
	if opts.Tiles.URLTemplate == "" {
		opts.Tiles = OSMTiles
	}
	if opts.Tiles.MaxZoom <= 0 {
		opts.Tiles.MaxZoom = DefaultMaxZoom
	}

	return &Renderer{
		opts:     opts,
		viewport: Viewport{Center: opts.Center, Zoom: opts.Zoom},
		title:    cases.Title(language.Spanish),
	}
}

// Viewport devuelve el viewport actual.
func (r *Renderer) Viewport() Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

// Render quita todos los marcadores anteriores y dibuja uno por perro.
// Con perros ajusta el viewport a sus bounds; sin perros lo deja como estaba.
func (r *Renderer) Render(items []dogs.Dog) Scene {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := len(r.markers)
	r.markers = nil

	markers := make([]Marker, 0, len(items))
	points := make([]LatLng, 0, len(items))
	for _, d := range items {
		pos := LatLng{Lat: d.Latitude, Lng: d.Longitude}
		markers = append(markers, Marker{
			Key:      geohash.EncodeWithPrecision(pos.Lat, pos.Lng, geohashPrecision) + ":" + d.ID,
			DogID:    d.ID,
			Position: pos,
			Popup:    r.popup(d),
		})
		points = append(points, pos)
	}
	r.markers = markers

	scene := Scene{
		Tiles:   r.opts.Tiles,
		Markers: markers,
		Cleared: cleared,
	}
	if b, ok := BoundsOf(points); ok {
		r.viewport = FitBounds(b, r.opts.Size, r.opts.Padding, r.opts.Tiles.MaxZoom)
		scene.Bounds = &b
		scene.Fitted = true
	}
	scene.Viewport = r.viewport
	return scene
}

var popupTmpl = template.Must(template.New("popup").Parse(
	`<div class="p-2"><h3 class="font-bold text-lg">{{.Name}}</h3>` +
		`<p class="text-sm">{{.Breed}}</p>` +
		`<p class="text-sm">{{.Size}} • {{.Gender}}</p>` +
		`<a href="{{.Link}}" class="text-primary-600 hover:underline text-sm">Ver detalles</a></div>`,
))

func (r *Renderer) popup(d dogs.Dog) Popup {
	p := Popup{
		Name:   d.Name,
		Breed:  d.Breed,
		Size:   r.title.String(strings.TrimSpace(string(d.Size))),
		Gender: r.title.String(strings.TrimSpace(string(d.Gender))),
		Link:   "/perros/" + d.ID,
	}
	var buf bytes.Buffer
	// la plantilla es fija y los datos son strings: no puede fallar
	_ = popupTmpl.Execute(&buf, p)
	p.HTML = buf.String()
	return p
}
