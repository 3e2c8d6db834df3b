package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"pura-pata/internal/domain/users"
	"pura-pata/internal/platform/apitime"
	"pura-pata/internal/ports/auth"
)

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID: make(map[string]users.User),
	}
}

func (r *userRepo) Me(ctx context.Context) (users.User, error) {
	uid := auth.UserID(ctx)
	if uid == "" {
		return users.User{}, users.ErrUnauthorized
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[uid]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) UpdateMe(ctx context.Context, in users.ProfileUpdate) (users.User, error) {
	uid := auth.UserID(ctx)
	if uid == "" {
		return users.User{}, users.ErrUnauthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[uid]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&u.Name, in.Name)
	set(&u.Phone, in.Phone)
	set(&u.Province, in.Province)
	set(&u.Canton, in.Canton)
	set(&u.Address, in.Address)
	if in.Latitude != nil && in.Longitude != nil {
		lat, lng := *in.Latitude, *in.Longitude
		u.Latitude, u.Longitude = &lat, &lng
	}
	r.byID[uid] = u
	return u, nil
}

// Create usa el id de la sesión (el perfil comparte id con auth).
// Sin sesión (email por confirmar) el perfil no se puede asociar.
func (r *userRepo) Create(ctx context.Context, in users.CreateInput) (users.User, error) {
	uid := auth.UserID(ctx)
	if uid == "" {
		return users.User{}, users.ErrUnauthorized
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[uid]; exists {
		return users.User{}, users.ErrInvalidInput
	}
	u := users.User{
		ID:        uid,
		Email:     in.Email,
		Name:      in.Name,
		Phone:     in.Phone,
		Province:  in.Province,
		Canton:    in.Canton,
		Address:   in.Address,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedAt: apitime.New(time.Now()),
	}
	r.byID[uid] = u
	return u, nil
}
