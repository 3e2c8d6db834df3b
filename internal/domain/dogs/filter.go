package dogs

import (
	"net/url"
	"strconv"
	"strings"
)

// Filter devuelve, en el mismo orden, los perros disponibles que cumplen todos
// los criterios indicados. Un criterio vacío no restringe nada.
func Filter(in []Dog, f Filters) []Dog {
	out := make([]Dog, 0, len(in))
	for _, d := range in {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// Match evalúa el predicado sobre un solo perro.
func (f Filters) Match(d Dog) bool {
	if d.Status != StatusAvailable {
		return false
	}
	if len(f.Sizes) > 0 && !containsSize(f.Sizes, d.Size) {
		return false
	}
	if f.Gender != "" && d.Gender != f.Gender {
		return false
	}
	if f.Province != "" && d.Province != f.Province {
		return false
	}
	if f.Vaccinated && !d.Vaccinated {
		return false
	}
	if f.Sterilized && !d.Sterilized {
		return false
	}
	if f.Dewormed && !d.Dewormed {
		return false
	}
	return true
}

func containsSize(sizes []Size, s Size) bool {
	for _, v := range sizes {
		if v == s {
			return true
		}
	}
	return false
}

// ParseFilters lee los criterios de la query string.
// size admite repetirse (?size=grande&size=mediano) o ir separado por comas.
// Valores desconocidos se conservan tal cual: simplemente no matchean.
func ParseFilters(q url.Values) Filters {
	var f Filters

	for _, raw := range q["size"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Sizes = append(f.Sizes, Size(s))
			}
		}
	}
	f.Gender = Gender(strings.TrimSpace(q.Get("gender")))
	f.Province = strings.TrimSpace(q.Get("province"))
	f.Vaccinated = parseFlag(q.Get("vaccinated"))
	f.Sterilized = parseFlag(q.Get("sterilized"))
	f.Dewormed = parseFlag(q.Get("dewormed"))

	f.Latitude = parseFloat(q.Get("latitude"))
	f.Longitude = parseFloat(q.Get("longitude"))
	f.RadiusKm = parseFloat(q.Get("radius"))
	return f
}

func parseFlag(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func parseFloat(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &x
}
