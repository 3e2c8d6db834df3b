package mapview

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pura-pata/internal/domain/dogs"
)

// Source entrega la foto de perros ya filtrada (dogs.Service la implementa).
type Source interface {
	Browse(ctx context.Context, f dogs.Filters) ([]dogs.Dog, error)
}

func RegisterRoutes(r chi.Router, src Source) {
	r.Get("/map", mapHandler(src))
}

// mapHandler godoc
// @Summary  Escena del mapa (tiles + marcadores) para los perros filtrados
// @Tags     map
// @Produce  json
// @Param    center  query  string  false  "lat,lng del viewport actual"
// @Param    zoom    query  int     false  "zoom actual"
// @Param    w       query  int     false  "ancho del mapa en px"
// @Param    h       query  int     false  "alto del mapa en px"
// @Success  200  {object}  Scene
// @Router   /map [get]
func mapHandler(src Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		items, err := src.Browse(r.Context(), dogs.ParseFilters(q))
		if err != nil {
			render.Status(r, dogs.HTTPStatus(err))
			render.JSON(w, r, map[string]string{"error": dogs.UserMessage(err, dogs.MsgListFailed)})
			return
		}

		// Un renderer por request, sembrado con el viewport que tiene el navegador:
		// si no hay perros, el mapa se queda donde estaba.
		opts := Options{Size: PixelSize{W: atoi(q.Get("w")), H: atoi(q.Get("h"))}}
		if c, ok := parseCenter(q.Get("center")); ok {
			opts.Center = c
			opts.Zoom = DefaultZoom
			if z, err := strconv.Atoi(strings.TrimSpace(q.Get("zoom"))); err == nil && z >= 0 {
				opts.Zoom = z
			}
		}

		render.JSON(w, r, NewRenderer(opts).Render(items))
	}
}

func parseCenter(s string) (LatLng, bool) {
	lat, lng, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return LatLng{}, false
	}
	la, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	ln, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err1 != nil || err2 != nil {
		return LatLng{}, false
	}
	return LatLng{Lat: la, Lng: ln}, true
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
