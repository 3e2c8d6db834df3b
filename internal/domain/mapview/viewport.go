package mapview

import "math"

const tileSize = 256.0

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

type Viewport struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

// PixelSize es el tamaño del contenedor del mapa en el navegador.
type PixelSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// BoundsOf devuelve el rectángulo mínimo que contiene todos los puntos.
func BoundsOf(points []LatLng) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
	}
	return b, true
}

// FitBounds calcula el viewport que muestra b entero dentro de size dejando
// padding px por lado, en proyección Web Mercator (la de los tiles OSM).
// El zoom se redondea hacia abajo y queda en [0, maxZoom].
func FitBounds(b Bounds, size PixelSize, padding, maxZoom int) Viewport {
	x1, y1 := project(b.SouthWest)
	x2, y2 := project(b.NorthEast)

	center := unproject((x1+x2)/2, (y1+y2)/2)

	availW := float64(size.W - 2*padding)
	availH := float64(size.H - 2*padding)
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}

	// tamaño del rectángulo en píxeles a zoom 0
	dx := math.Abs(x2-x1) * tileSize
	dy := math.Abs(y2-y1) * tileSize

	zoom := maxZoom
	if dx > 0 || dy > 0 {
		scale := math.Inf(1)
		if dx > 0 {
			scale = availW / dx
		}
		if dy > 0 {
			scale = math.Min(scale, availH/dy)
		}
		zoom = int(math.Floor(math.Log2(scale)))
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	if zoom < 0 {
		zoom = 0
	}
	return Viewport{Center: center, Zoom: zoom}
}

// project lleva lat/lng a coordenadas normalizadas [0,1] de Web Mercator.
func project(p LatLng) (x, y float64) {
	lat := clampLat(p.Lat) * math.Pi / 180
	x = (p.Lng + 180) / 360
	y = (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2
	return x, y
}

func unproject(x, y float64) LatLng {
	lng := x*360 - 180
	n := math.Pi * (1 - 2*y)
	lat := math.Atan(math.Sinh(n)) * 180 / math.Pi
	return LatLng{Lat: lat, Lng: lng}
}

// límite de Web Mercator
func clampLat(lat float64) float64 {
	const max = 85.0511287798
	return math.Max(-max, math.Min(max, lat))
}
