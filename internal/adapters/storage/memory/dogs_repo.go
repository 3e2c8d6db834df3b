package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pura-pata/internal/domain/dogs"
	"pura-pata/internal/platform/apitime"
	"pura-pata/internal/ports/auth"
)

// dogRepo es el backend de dogs en modo dev: mismo contrato que el REST,
// el publicador sale de la sesión en ctx.
type dogRepo struct {
	mu      sync.RWMutex
	byID    map[string]dogs.Dog
	history map[string][]dogs.StatusChange
	now     func() time.Time
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		byID:    make(map[string]dogs.Dog),
		history: make(map[string][]dogs.StatusChange),
		now:     time.Now,
	}
}

func (r *dogRepo) List(ctx context.Context, status dogs.Status) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		if status == "" || d.Status == status {
			out = append(out, clone(d))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *dogRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return clone(d), nil
}

func (r *dogRepo) ListMine(ctx context.Context) ([]dogs.Dog, error) {
	uid := auth.UserID(ctx)
	if uid == "" {
		return nil, dogs.ErrUnauthorized
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0)
	for _, d := range r.byID {
		if d.PublisherID == uid {
			out = append(out, clone(d))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *dogRepo) Create(ctx context.Context, p dogs.ListingPayload) (dogs.Dog, error) {
	uid := auth.UserID(ctx)
	if uid == "" {
		return dogs.Dog{}, dogs.ErrUnauthorized
	}
	if strings.TrimSpace(p.Name) == "" {
		return dogs.Dog{}, errors.New("dog name required")
	}

	now := apitime.New(r.now())
	d := fromPayload(dogs.Dog{
		ID:          uuid.NewString(),
		PublisherID: uid,
		Status:      dogs.StatusAvailable,
		CreatedAt:   now,
	}, p)
	d.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[d.ID] = d
	r.appendHistory(d.ID, "", d.Status, now)
	return clone(d), nil
}

func (r *dogRepo) Update(ctx context.Context, id string, p dogs.ListingPayload) (dogs.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.owned(ctx, id)
	if err != nil {
		return dogs.Dog{}, err
	}
	d := fromPayload(cur, p)
	d.UpdatedAt = apitime.New(r.now())
	r.byID[d.ID] = d
	return clone(d), nil
}

func (r *dogRepo) UpdateStatus(ctx context.Context, id string, status dogs.Status) (dogs.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.owned(ctx, id)
	if err != nil {
		return dogs.Dog{}, err
	}
	if d.Status == status {
		return clone(d), nil
	}

	now := apitime.New(r.now())
	old := d.Status
	d.Status = status
	d.UpdatedAt = now
	if status == dogs.StatusAdopted {
		d.AdoptedAt = now
	} else {
		d.AdoptedAt = apitime.Time{}
	}
	r.byID[d.ID] = d
	r.appendHistory(d.ID, old, status, now)
	return clone(d), nil
}

func (r *dogRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.owned(ctx, id)
	if err != nil {
		return err
	}
	delete(r.byID, d.ID)
	delete(r.history, d.ID)
	return nil
}

func (r *dogRepo) History(ctx context.Context, id string) ([]dogs.StatusChange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id = strings.TrimSpace(id)
	if _, ok := r.byID[id]; !ok {
		return nil, dogs.ErrNotFound
	}
	out := make([]dogs.StatusChange, len(r.history[id]))
	copy(out, r.history[id])
	return out, nil
}

// owned exige sesión y que el usuario sea el publicador. Llamar con el lock tomado.
func (r *dogRepo) owned(ctx context.Context, id string) (dogs.Dog, error) {
	uid := auth.UserID(ctx)
	if uid == "" {
		return dogs.Dog{}, dogs.ErrUnauthorized
	}
	d, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	if d.PublisherID != uid {
		return dogs.Dog{}, dogs.ErrForbidden
	}
	return d, nil
}

func (r *dogRepo) appendHistory(dogID string, old, next dogs.Status, at apitime.Time) {
	r.history[dogID] = append(r.history[dogID], dogs.StatusChange{
		ID:        uuid.NewString(),
		DogID:     dogID,
		OldStatus: old,
		NewStatus: next,
		ChangedAt: at,
	})
}

// fromPayload copia los campos editables; status solo si viene.
func fromPayload(d dogs.Dog, p dogs.ListingPayload) dogs.Dog {
	d.Name = strings.TrimSpace(p.Name)
	d.AgeYears = p.AgeYears
	d.AgeMonths = p.AgeMonths
	d.Breed = p.Breed
	d.Size = p.Size
	d.Gender = p.Gender
	d.Color = p.Color
	d.Description = p.Description
	d.SpecialNeeds = p.SpecialNeeds
	d.Vaccinated = p.Vaccinated
	d.Sterilized = p.Sterilized
	d.Dewormed = p.Dewormed
	d.Latitude = p.Latitude
	d.Longitude = p.Longitude
	d.Address = p.Address
	d.Province = p.Province
	d.Canton = p.Canton
	d.ContactPhone = p.ContactPhone
	d.ContactEmail = p.ContactEmail
	d.HasWhatsApp = p.HasWhatsApp
	d.Photos = append([]string{}, p.Photos...)
	if p.Status != "" {
		d.Status = p.Status
	}
	return d
}

func clone(d dogs.Dog) dogs.Dog {
	d.Photos = append([]string{}, d.Photos...)
	return d
}

// Orden estable por created_at desc, como el listado del backend.
func sortNewestFirst(out []dogs.Dog) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
}
