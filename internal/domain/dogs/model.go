package dogs

import "pura-pata/internal/platform/apitime"

// Size es el tamaño del perro tal como lo maneja el backend.
// @Enum pequeño, mediano, grande
type Size string

const (
	SizeSmall  Size = "pequeño"
	SizeMedium Size = "mediano"
	SizeLarge  Size = "grande"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Gender
// @Enum macho, hembra
type Gender string

const (
	GenderMale   Gender = "macho"
	GenderFemale Gender = "hembra"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Status del aviso. La UI solo avanza (disponible -> reservado -> adoptado),
// pero el cliente no lo impone: el backend decide.
// @Enum disponible, reservado, adoptado
type Status string

const (
	StatusAvailable Status = "disponible"
	StatusReserved  Status = "reservado"
	StatusAdopted   Status = "adoptado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusAdopted:
		return true
	}
	return false
}

// Dog es la copia local (solo lectura) de un aviso del backend.
type Dog struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	AgeYears     int     `json:"age_years"`
	AgeMonths    int     `json:"age_months"`
	Breed        string  `json:"breed"`
	Size         Size    `json:"size"`
	Gender       Gender  `json:"gender"`
	Color        string  `json:"color,omitempty"`
	Description  string  `json:"description,omitempty"`
	SpecialNeeds string  `json:"special_needs,omitempty"`
	Vaccinated   bool    `json:"vaccinated"`
	Sterilized   bool    `json:"sterilized"`
	Dewormed     bool    `json:"dewormed"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address,omitempty"`
	Province     string  `json:"province,omitempty"`
	Canton       string  `json:"canton,omitempty"`

	// nil = el publicador no quiere mostrarlo
	ContactPhone *string `json:"contact_phone"`
	ContactEmail *string `json:"contact_email"`
	HasWhatsApp  bool    `json:"has_whatsapp"`

	Photos      []string `json:"photos"`
	Certificate string   `json:"certificate,omitempty"`

	Status      Status `json:"status"`
	PublisherID string `json:"publisher_id"`

	CreatedAt apitime.Time `json:"created_at"`
	UpdatedAt apitime.Time `json:"updated_at"`
	AdoptedAt apitime.Time `json:"adopted_at"`
}

// PrimaryPhoto devuelve la primera foto ("" si no tiene).
func (d Dog) PrimaryPhoto() string {
	if len(d.Photos) == 0 {
		return ""
	}
	return d.Photos[0]
}

// StatusChange es una entrada del historial de estados.
type StatusChange struct {
	ID        string       `json:"id"`
	DogID     string       `json:"dog_id"`
	OldStatus Status       `json:"old_status,omitempty"`
	NewStatus Status       `json:"new_status"`
	ChangedAt apitime.Time `json:"changed_at"`
}

// ListingInput es lo que llena el usuario en el formulario de publicar/editar.
type ListingInput struct {
	Name         string  `json:"name"`
	AgeYears     int     `json:"age_years"`
	AgeMonths    int     `json:"age_months"`
	Breed        string  `json:"breed"`
	Size         Size    `json:"size"`
	Gender       Gender  `json:"gender"`
	Color        string  `json:"color"`
	Description  string  `json:"description"`
	SpecialNeeds string  `json:"special_needs"`
	Vaccinated   bool    `json:"vaccinated"`
	Sterilized   bool    `json:"sterilized"`
	Dewormed     bool    `json:"dewormed"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
	Province     string  `json:"province"`
	Canton       string  `json:"canton"`

	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`

	// Preferencias de contacto: al menos una de ShowPhone/ShowEmail.
	ShowPhone   bool `json:"show_phone"`
	ShowEmail   bool `json:"show_email"`
	HasWhatsApp bool `json:"has_whatsapp"`

	// Solo en edición: fotos ya publicadas que se conservan (en orden).
	KeepPhotos []string `json:"keep_photos"`
}

// ListingPayload es el body que espera el backend en POST/PUT /dogs.
type ListingPayload struct {
	Name         string   `json:"name"`
	AgeYears     int      `json:"age_years"`
	AgeMonths    int      `json:"age_months"`
	Breed        string   `json:"breed"`
	Size         Size     `json:"size"`
	Gender       Gender   `json:"gender"`
	Color        string   `json:"color,omitempty"`
	Description  string   `json:"description,omitempty"`
	SpecialNeeds string   `json:"special_needs,omitempty"`
	Vaccinated   bool     `json:"vaccinated"`
	Sterilized   bool     `json:"sterilized"`
	Dewormed     bool     `json:"dewormed"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Address      string   `json:"address,omitempty"`
	Province     string   `json:"province,omitempty"`
	Canton       string   `json:"canton,omitempty"`
	ContactPhone *string  `json:"contact_phone"`
	ContactEmail *string  `json:"contact_email"`
	HasWhatsApp  bool     `json:"has_whatsapp"`
	Photos       []string `json:"photos"`
	Status       Status   `json:"status,omitempty"`
}

// Filters son los criterios del buscador. Nunca se persisten.
type Filters struct {
	Sizes      []Size
	Gender     Gender
	Province   string
	Vaccinated bool
	Sterilized bool
	Dewormed   bool

	// Radio geográfico: se parsea y se transporta, pero Filter no lo aplica.
	Latitude  *float64
	Longitude *float64
	RadiusKm  *float64
}
