package seo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pura-pata/internal/domain/dogs"
)

const schemaContext = "https://schema.org"

// DogGetter trae el detalle de un perro (dogs.Service).
type DogGetter interface {
	Get(ctx context.Context, id string) (dogs.Dog, error)
}

type PropertyValue struct {
	Type  string `json:"@type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Offer struct {
	Type          string `json:"@type"`
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Availability  string `json:"availability"`
	URL           string `json:"url"`
}

type Brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Product es el aviso de adopción en schema.org.
type Product struct {
	Context            string          `json:"@context"`
	Type               string          `json:"@type"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Image              []string        `json:"image"`
	Offers             Offer           `json:"offers"`
	Brand              Brand           `json:"brand"`
	AdditionalProperty []PropertyValue `json:"additionalProperty"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type ContactPoint struct {
	Type              string `json:"@type"`
	ContactType       string `json:"contactType"`
	AreaServed        string `json:"areaServed"`
	AvailableLanguage string `json:"availableLanguage"`
}

type Country struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Organization struct {
	Context      string       `json:"@context"`
	Type         string       `json:"@type"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	URL          string       `json:"url"`
	Logo         string       `json:"logo"`
	SameAs       []string     `json:"sameAs"`
	ContactPoint ContactPoint `json:"contactPoint"`
	AreaServed   Country      `json:"areaServed"`
}

// StructuredData son los tres bloques JSON-LD de la página de detalle:
// el aviso, las migas de pan y la organización.
type StructuredData struct {
	Product      Product        `json:"product"`
	Breadcrumbs  BreadcrumbList `json:"breadcrumbs"`
	Organization Organization   `json:"organization"`
}

func DogStructuredData(baseURL string, d dogs.Dog) StructuredData {
	detail := baseURL + "/perros/" + d.ID

	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		desc = fmt.Sprintf("%s es un %s de %d años buscando un hogar amoroso en %s, Costa Rica.", d.Name, d.Breed, d.AgeYears, d.Province)
	}

	availability := schemaContext + "/OutOfStock"
	if d.Status == dogs.StatusAvailable {
		availability = schemaContext + "/InStock"
	}

	age := fmt.Sprintf("%d años", d.AgeYears)
	if d.AgeMonths > 0 {
		age += fmt.Sprintf(" y %d meses", d.AgeMonths)
	}
	gender := "Hembra"
	if d.Gender == dogs.GenderMale {
		gender = "Macho"
	}

	images := d.Photos
	if images == nil {
		images = []string{}
	}

	return StructuredData{
		Product: Product{
			Context:     schemaContext,
			Type:        "Product",
			Name:        "Adoptar a " + d.Name,
			Description: desc,
			Image:       images,
			Offers: Offer{
				Type:          "Offer",
				Price:         "0",
				PriceCurrency: "CRC",
				Availability:  availability,
				URL:           detail,
			},
			Brand: Brand{Type: "Organization", Name: "Pura Pata"},
			AdditionalProperty: []PropertyValue{
				prop("Raza", d.Breed),
				prop("Edad", age),
				prop("Género", gender),
				prop("Tamaño", string(d.Size)),
				prop("Ubicación", strings.TrimSpace(d.Canton+" "+d.Province+", Costa Rica")),
				prop("Vacunado", yesNo(d.Vaccinated)),
				prop("Esterilizado", yesNo(d.Sterilized)),
				prop("Desparasitado", yesNo(d.Dewormed)),
			},
		},
		Breadcrumbs: BreadcrumbList{
			Context: schemaContext,
			Type:    "BreadcrumbList",
			ItemListElement: []ListItem{
				{Type: "ListItem", Position: 1, Name: "Inicio", Item: baseURL},
				{Type: "ListItem", Position: 2, Name: "Perros en Adopción", Item: baseURL},
				{Type: "ListItem", Position: 3, Name: d.Name, Item: detail},
			},
		},
		Organization: Organization{
			Context:     schemaContext,
			Type:        "Organization",
			Name:        "Pura Pata",
			Description: "Plataforma de adopción responsable de perros en Costa Rica",
			URL:         baseURL,
			Logo:        baseURL + "/logo.svg",
			SameAs:      []string{},
			ContactPoint: ContactPoint{
				Type:              "ContactPoint",
				ContactType:       "Customer Service",
				AreaServed:        "CR",
				AvailableLanguage: "Spanish",
			},
			AreaServed: Country{Type: "Country", Name: "Costa Rica"},
		},
	}
}

func prop(name, value string) PropertyValue {
	return PropertyValue{Type: "PropertyValue", Name: name, Value: value}
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

// RegisterAPIRoutes monta GET /seo/dogs/{dogID} (JSON-LD del detalle).
func RegisterAPIRoutes(r chi.Router, src DogGetter, baseURL string) {
	baseURL = strings.TrimRight(baseURL, "/")

	r.Get("/seo/dogs/{dogID}", func(w http.ResponseWriter, req *http.Request) {
		d, err := src.Get(req.Context(), chi.URLParam(req, "dogID"))
		if err != nil {
			render.Status(req, dogs.HTTPStatus(err))
			render.JSON(w, req, map[string]string{"error": dogs.UserMessage(err, dogs.MsgLoadFailed)})
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		render.JSON(w, req, DogStructuredData(baseURL, d))
	})
}
