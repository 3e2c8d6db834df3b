package dogs

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDogs() []Dog {
	return []Dog{
		{ID: "1", Name: "Luna", Size: SizeSmall, Gender: GenderFemale, Province: "San José", Vaccinated: true, Status: StatusAvailable},
		{ID: "2", Name: "Max", Size: SizeLarge, Gender: GenderMale, Province: "Cartago", Status: StatusAvailable},
		{ID: "3", Name: "Rocky", Size: SizeLarge, Gender: GenderMale, Province: "Cartago", Vaccinated: true, Sterilized: true, Dewormed: true, Status: StatusAvailable},
		{ID: "4", Name: "Canela", Size: SizeMedium, Gender: GenderFemale, Province: "Heredia", Vaccinated: true, Status: StatusAdopted},
		{ID: "5", Name: "Toby", Size: SizeMedium, Gender: GenderMale, Province: "San José", Dewormed: true, Status: StatusReserved},
	}
}

func ids(ds []Dog) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"no criteria keeps only available, in order", Filters{}, []string{"1", "2", "3"}},
		{"size set", Filters{Sizes: []Size{SizeLarge, SizeSmall}}, []string{"1", "2", "3"}},
		{"gender", Filters{Gender: GenderMale}, []string{"2", "3"}},
		{"province", Filters{Province: "Cartago"}, []string{"2", "3"}},
		{"all flags", Filters{Vaccinated: true, Sterilized: true, Dewormed: true}, []string{"3"}},
		{"unknown size matches nothing", Filters{Sizes: []Size{"gigante"}}, []string{}},
		{"unknown province matches nothing", Filters{Province: "Atlántida"}, []string{}},
		{"radius fields are ignored", Filters{Latitude: ptr(9.9), Longitude: ptr(-84.0), RadiusKm: ptr(1)}, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleDogs(), tt.f)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_SubsetAndIdempotent(t *testing.T) {
	criteria := []Filters{
		{},
		{Sizes: []Size{SizeLarge}},
		{Gender: GenderFemale, Vaccinated: true},
		{Province: "San José", Dewormed: true},
	}
	in := sampleDogs()
	for _, f := range criteria {
		once := Filter(in, f)
		for _, d := range once {
			assert.True(t, f.Match(d))
			assert.Contains(t, ids(in), d.ID)
		}
		if diff := cmp.Diff(once, Filter(once, f)); diff != "" {
			t.Errorf("filter not idempotent for %+v:\n%s", f, diff)
		}
	}
}

func TestFilter_LargeVaccinatedScenario(t *testing.T) {
	in := []Dog{
		{ID: "small-vacc", Size: SizeSmall, Vaccinated: true, Status: StatusAvailable},
		{ID: "large-unvacc", Size: SizeLarge, Vaccinated: false, Status: StatusAvailable},
	}
	got := Filter(in, Filters{Sizes: []Size{SizeLarge}, Vaccinated: true})
	assert.Empty(t, got)
}

func TestFilter_Empty(t *testing.T) {
	got := Filter(nil, Filters{Gender: GenderMale})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseFilters(t *testing.T) {
	q, err := url.ParseQuery("size=grande,mediano&size=pequeño&gender=hembra&province=Cartago&vaccinated=true&sterilized=0&dewormed=yes&latitude=9.93&longitude=-84.08&radius=10")
	require.NoError(t, err)

	f := ParseFilters(q)
	assert.Equal(t, []Size{SizeLarge, SizeMedium, SizeSmall}, f.Sizes)
	assert.Equal(t, GenderFemale, f.Gender)
	assert.Equal(t, "Cartago", f.Province)
	assert.True(t, f.Vaccinated)
	assert.False(t, f.Sterilized)
	assert.False(t, f.Dewormed, "unparseable flags are unset")
	require.NotNil(t, f.RadiusKm)
	assert.InDelta(t, 10.0, *f.RadiusKm, 1e-9)
	require.NotNil(t, f.Latitude)
	assert.InDelta(t, 9.93, *f.Latitude, 1e-9)
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "3 meses", FormatAge(0, 3))
	assert.Equal(t, "1 mes", FormatAge(0, 1))
	assert.Equal(t, "1 año", FormatAge(1, 0))
	assert.Equal(t, "2 años y 1 mes", FormatAge(2, 1))
}

func TestWhatsAppLink(t *testing.T) {
	phone := "8888-1234"
	d := Dog{ID: "abc", Name: "Luna", ContactPhone: &phone, HasWhatsApp: true}
	link := WhatsAppLink(d)
	assert.Contains(t, link, "https://wa.me/50688881234?text=")
	assert.Contains(t, link, "Luna")
	assert.NotContains(t, link, "+")

	d.HasWhatsApp = false
	assert.Empty(t, WhatsAppLink(d))
}

func ptr(f float64) *float64 { return &f }
