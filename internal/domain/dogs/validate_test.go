package dogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ListingInput {
	return ListingInput{
		Name:         "Luna",
		AgeYears:     2,
		AgeMonths:    3,
		Breed:        "Zaguate",
		Size:         SizeMedium,
		Gender:       GenderFemale,
		Color:        "Café",
		Latitude:     9.9281,
		Longitude:    -84.0907,
		Province:     "San José",
		ContactPhone: "8888-1234",
		ShowPhone:    true,
		HasWhatsApp:  true,
	}
}

func TestValidateListing_OK(t *testing.T) {
	require.NoError(t, ValidateListing(validInput()))
}

func TestValidateListing_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ListingInput)
		wantField string
		wantMsg   string
	}{
		{"missing contact method", func(in *ListingInput) { in.ShowPhone = false; in.ShowEmail = false }, "contact", MsgContactRequired},
		{"blank name", func(in *ListingInput) { in.Name = "   " }, "name", "El nombre es obligatorio"},
		{"no location", func(in *ListingInput) { in.Latitude, in.Longitude = 0, 0 }, "latitude", "Selecciona la ubicación en el mapa"},
		{"phone shown but empty", func(in *ListingInput) { in.ContactPhone = "" }, "contact_phone", "Ingresa un teléfono de contacto"},
		{"bad size", func(in *ListingInput) { in.Size = "gigante" }, "size", "Revisa el campo tamaño"},
		{"bad gender", func(in *ListingInput) { in.Gender = "otro" }, "gender", "Revisa el campo género"},
		{"months out of range", func(in *ListingInput) { in.AgeMonths = 12 }, "age_months", "Revisa el campo edad (meses)"},
		{"latitude out of range", func(in *ListingInput) { in.Latitude = 123 }, "latitude", "Revisa el campo ubicación"},
		{"invalid email", func(in *ListingInput) { in.ShowEmail = true; in.ContactEmail = "no-es-email" }, "contact_email", "Revisa el campo email de contacto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := ValidateListing(in)
			require.ErrorIs(t, err, ErrInvalidInput)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestBuildPayload_ContactProjection(t *testing.T) {
	in := validInput()
	in.ContactEmail = "ana@example.com" // no elegido: no debe viajar

	p := BuildPayload(in, nil)
	require.NotNil(t, p.ContactPhone)
	assert.Equal(t, "8888-1234", *p.ContactPhone)
	assert.Nil(t, p.ContactEmail)
	assert.True(t, p.HasWhatsApp)
	assert.Equal(t, []string{}, p.Photos)

	in.ShowPhone = false
	in.ShowEmail = true
	p = BuildPayload(in, []string{"u1"})
	assert.Nil(t, p.ContactPhone)
	assert.False(t, p.HasWhatsApp, "whatsapp requires a visible phone")
	require.NotNil(t, p.ContactEmail)
	assert.Equal(t, []string{"u1"}, p.Photos)
}
