package dogs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed listing.schema.json
var listingSchemaJSON string

var listingSchema = compileListingSchema()

func compileListingSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource("listing.schema.json", strings.NewReader(listingSchemaJSON)); err != nil {
		panic(fmt.Sprintf("dogs: listing schema: %v", err))
	}
	return c.MustCompile("listing.schema.json")
}

const MsgContactRequired = "Debes seleccionar al menos un método de contacto (teléfono o email)"

var fieldLabels = map[string]string{
	"name":          "nombre",
	"breed":         "raza",
	"size":          "tamaño",
	"gender":        "género",
	"color":         "color",
	"description":   "descripción",
	"special_needs": "necesidades especiales",
	"age_years":     "edad (años)",
	"age_months":    "edad (meses)",
	"latitude":      "ubicación",
	"longitude":     "ubicación",
	"contact_phone": "teléfono de contacto",
	"contact_email": "email de contacto",
	"keep_photos":   "fotos",
}

// ValidateListing hace la validación local del formulario. Si falla no se
// hace ninguna llamada de red.
func ValidateListing(in ListingInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return invalid("name", "El nombre es obligatorio")
	case strings.TrimSpace(in.Breed) == "":
		return invalid("breed", "La raza es obligatoria")
	case in.Size == "":
		return invalid("size", "Selecciona el tamaño")
	case in.Gender == "":
		return invalid("gender", "Selecciona el género")
	case in.Latitude == 0 && in.Longitude == 0:
		return invalid("latitude", "Selecciona la ubicación en el mapa")
	case !in.ShowPhone && !in.ShowEmail:
		return invalid("contact", MsgContactRequired)
	case in.ShowPhone && strings.TrimSpace(in.ContactPhone) == "":
		return invalid("contact_phone", "Ingresa un teléfono de contacto")
	case in.ShowEmail && strings.TrimSpace(in.ContactEmail) == "":
		return invalid("contact_email", "Ingresa un email de contacto")
	}

	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	if err := listingSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		field := leafField(ve)
		label := fieldLabels[field]
		if label == "" {
			label = field
		}
		return invalid(field, fmt.Sprintf("Revisa el campo %s", label))
	}
	return nil
}

// leafField baja hasta la causa más específica y devuelve el nombre del campo.
func leafField(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if i := strings.IndexByte(loc, '/'); i >= 0 {
		loc = loc[:i]
	}
	return loc
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// BuildPayload arma el body del backend a partir del formulario y las fotos.
// Los contactos no elegidos viajan como null; WhatsApp solo aplica con teléfono.
func BuildPayload(in ListingInput, photos []string) ListingPayload {
	p := ListingPayload{
		Name:         strings.TrimSpace(in.Name),
		AgeYears:     in.AgeYears,
		AgeMonths:    in.AgeMonths,
		Breed:        strings.TrimSpace(in.Breed),
		Size:         in.Size,
		Gender:       in.Gender,
		Color:        strings.TrimSpace(in.Color),
		Description:  strings.TrimSpace(in.Description),
		SpecialNeeds: strings.TrimSpace(in.SpecialNeeds),
		Vaccinated:   in.Vaccinated,
		Sterilized:   in.Sterilized,
		Dewormed:     in.Dewormed,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Address:      strings.TrimSpace(in.Address),
		Province:     strings.TrimSpace(in.Province),
		Canton:       strings.TrimSpace(in.Canton),
		HasWhatsApp:  in.ShowPhone && in.HasWhatsApp,
		Photos:       photos,
	}
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if in.ShowPhone {
		v := strings.TrimSpace(in.ContactPhone)
		p.ContactPhone = &v
	}
	if in.ShowEmail {
		v := strings.TrimSpace(in.ContactEmail)
		p.ContactEmail = &v
	}
	return p
}
