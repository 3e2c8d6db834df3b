package users

import "pura-pata/internal/platform/apitime"

// User es el perfil del usuario en el backend (el id es el mismo de auth).
type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone,omitempty"`
	WhatsApp  string       `json:"whatsapp,omitempty"`
	Address   string       `json:"address,omitempty"`
	Province  string       `json:"province,omitempty"`
	Canton    string       `json:"canton,omitempty"`
	Latitude  *float64     `json:"latitude,omitempty"`
	Longitude *float64     `json:"longitude,omitempty"`
	CreatedAt apitime.Time `json:"created_at"`
}

// HasLocation indica si el usuario guardó una ubicación por defecto.
func (u User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

type CreateInput struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone,omitempty"`
	Province  string   `json:"province,omitempty"`
	Canton    string   `json:"canton,omitempty"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ProfileUpdate: punteros para PUT parcial, nil = no tocar.
type ProfileUpdate struct {
	Name      *string  `json:"name,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Province  *string  `json:"province,omitempty"`
	Canton    *string  `json:"canton,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
