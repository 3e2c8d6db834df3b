package memory

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pura-pata/internal/domain/dogs"
	"pura-pata/internal/domain/users"
	"pura-pata/internal/ports/auth"
	"pura-pata/internal/ports/storage"
)

func as(uid string) context.Context {
	m := auth.NewManager(nil, &auth.Session{AccessToken: "tok-" + uid, User: auth.User{ID: uid}})
	return auth.WithManager(context.Background(), m)
}

func TestDogRepo_CreateListAndOwnership(t *testing.T) {
	repo := NewDogRepo()

	_, err := repo.Create(context.Background(), dogs.ListingPayload{Name: "Luna"})
	require.ErrorIs(t, err, dogs.ErrUnauthorized)

	d, err := repo.Create(as("ana"), dogs.ListingPayload{Name: "Luna", Size: dogs.SizeSmall, Photos: []string{"p1"}, Status: dogs.StatusAvailable})
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "ana", d.PublisherID)
	assert.Equal(t, dogs.StatusAvailable, d.Status)

	all, err := repo.List(context.Background(), dogs.StatusAvailable)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// la copia devuelta no comparte fotos con el repo
	all[0].Photos[0] = "mutated"
	again, _ := repo.GetByID(context.Background(), d.ID)
	assert.Equal(t, []string{"p1"}, again.Photos)

	_, err = repo.Update(as("beto"), d.ID, dogs.ListingPayload{Name: "Otro"})
	require.ErrorIs(t, err, dogs.ErrForbidden)
	require.ErrorIs(t, repo.Delete(as("beto"), d.ID), dogs.ErrForbidden)

	mine, err := repo.ListMine(as("ana"))
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	mine, err = repo.ListMine(as("beto"))
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestDogRepo_StatusHistory(t *testing.T) {
	repo := NewDogRepo()
	d, err := repo.Create(as("ana"), dogs.ListingPayload{Name: "Luna"})
	require.NoError(t, err)

	_, err = repo.UpdateStatus(as("ana"), d.ID, dogs.StatusReserved)
	require.NoError(t, err)
	adopted, err := repo.UpdateStatus(as("ana"), d.ID, dogs.StatusAdopted)
	require.NoError(t, err)
	assert.False(t, adopted.AdoptedAt.IsZero())

	h, err := repo.History(context.Background(), d.ID)
	require.NoError(t, err)
	require.Len(t, h, 3)
	assert.Equal(t, dogs.Status(""), h[0].OldStatus)
	assert.Equal(t, dogs.StatusReserved, h[1].NewStatus)
	assert.Equal(t, dogs.StatusReserved, h[2].OldStatus)
	assert.Equal(t, dogs.StatusAdopted, h[2].NewStatus)

	avail, _ := repo.List(context.Background(), dogs.StatusAvailable)
	assert.Empty(t, avail)

	require.NoError(t, repo.Delete(as("ana"), d.ID))
	_, err = repo.GetByID(context.Background(), d.ID)
	require.ErrorIs(t, err, dogs.ErrNotFound)
}

func TestUserRepo(t *testing.T) {
	repo := NewUserRepo()

	_, err := repo.Create(context.Background(), users.CreateInput{Email: "a@b.cr", Name: "Ana"})
	require.ErrorIs(t, err, users.ErrUnauthorized)

	_, err = repo.Create(as("ana"), users.CreateInput{Email: "a@b.cr", Name: "Ana"})
	require.NoError(t, err)

	lat, lng := 9.9, -84.1
	name := " Ana María "
	u, err := repo.UpdateMe(as("ana"), users.ProfileUpdate{Name: &name, Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)
	assert.True(t, u.HasLocation())

	_, err = repo.Me(as("beto"))
	require.ErrorIs(t, err, users.ErrNotFound)
}

func TestPhotoStore(t *testing.T) {
	s := NewPhotoStore("http://localhost:8080/")

	url, err := s.Upload(context.Background(), "dogs/a_0.jpg", "image/jpeg", bytes.NewReader([]byte("jpeg")), 4)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/dev-photos/dogs/a_0.jpg", url)

	_, err = s.Upload(context.Background(), "dogs/a_0.jpg", "image/jpeg", bytes.NewReader([]byte("x")), 1)
	require.Error(t, err)

	p, err := s.PathFromURL(url)
	require.NoError(t, err)
	assert.Equal(t, "dogs/a_0.jpg", p)

	_, err = s.PathFromURL("https://elsewhere.com/x.jpg")
	require.ErrorIs(t, err, storage.ErrForeignURL)

	rec := httptest.NewRecorder()
	http.StripPrefix(PhotoRoute, s.Handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dev-photos/dogs/a_0.jpg", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg", rec.Body.String())

	require.NoError(t, s.Delete(context.Background(), []string{p}))
	assert.Zero(t, s.Len())
}
