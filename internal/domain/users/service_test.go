package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pura-pata/internal/platform/httpclient"
	"pura-pata/internal/ports/auth"
)

type fakeRepo struct {
	me        User
	createErr error
	updated   *ProfileUpdate
	created   *CreateInput
}

func (f *fakeRepo) Me(ctx context.Context) (User, error) { return f.me, nil }

func (f *fakeRepo) UpdateMe(ctx context.Context, in ProfileUpdate) (User, error) {
	f.updated = &in
	u := f.me
	if in.Name != nil {
		u.Name = *in.Name
	}
	return u, nil
}

func (f *fakeRepo) Create(ctx context.Context, in CreateInput) (User, error) {
	f.created = &in
	if f.createErr != nil {
		return User{}, f.createErr
	}
	return User{ID: "u-1", Email: in.Email, Name: in.Name}, nil
}

func withUser(id string) context.Context {
	m := auth.NewManager(nil, &auth.Session{AccessToken: "tok", User: auth.User{ID: id}})
	return auth.WithManager(context.Background(), m)
}

func TestService_RequiresSession(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_UpdateProfile(t *testing.T) {
	repo := &fakeRepo{me: User{ID: "u-1", Name: "Ana"}}
	svc := NewService(repo)

	blank := "  "
	_, err := svc.UpdateProfile(withUser("u-1"), ProfileUpdate{Name: &blank})
	require.ErrorIs(t, err, ErrInvalidInput)

	lat := 9.9
	_, err = svc.UpdateProfile(withUser("u-1"), ProfileUpdate{Latitude: &lat})
	require.ErrorIs(t, err, ErrInvalidInput, "latitude without longitude")

	name := " Ana María "
	u, err := svc.UpdateProfile(withUser("u-1"), ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)
}

func TestCreateProfileHandler_BackendDetail(t *testing.T) {
	repo := &fakeRepo{createErr: &httpclient.HTTPError{StatusCode: 400, Body: `{"detail":"User already exists"}`}}
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(repo))

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"ana@example.com","name":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, rec.Body.String())
}

func TestGetMeHandler(t *testing.T) {
	repo := &fakeRepo{me: User{ID: "u-1", Email: "ana@example.com", Name: "Ana"}}
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(repo))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil).WithContext(withUser("u-1"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ana@example.com"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
