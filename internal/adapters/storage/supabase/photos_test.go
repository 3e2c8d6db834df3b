package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pura-pata/internal/ports/auth"
	"pura-pata/internal/ports/storage"
)

func TestPhotoStore_UploadReturnsPublicURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/dog-photos/dogs/01H_0.jpg", r.URL.Path)
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		assert.Equal(t, "false", r.Header.Get("x-upsert"))
		assert.Equal(t, int64(8), r.ContentLength)
		b, _ := io.ReadAll(r.Body)
		assert.Equal(t, "jpegdata", string(b))
		_, _ = w.Write([]byte(`{"Key":"dog-photos/dogs/01H_0.jpg"}`))
	}))
	defer ts.Close()

	s, err := NewPhotoStore(Config{URL: ts.URL, AnonKey: "anon", Timeout: time.Second})
	require.NoError(t, err)

	m := auth.NewManager(nil, &auth.Session{AccessToken: "user-token", User: auth.User{ID: "u-1"}})
	ctx := auth.WithManager(context.Background(), m)

	u, err := s.Upload(ctx, "dogs/01H_0.jpg", "image/jpeg", strings.NewReader("jpegdata"), 8)
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/storage/v1/object/public/dog-photos/dogs/01H_0.jpg", u)

	p, err := s.PathFromURL(u)
	require.NoError(t, err)
	assert.Equal(t, "dogs/01H_0.jpg", p)
}

func TestPhotoStore_DeleteSendsPrefixes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/dog-photos", r.URL.Path)
		assert.Equal(t, "Bearer anon", r.Header.Get("Authorization"))
		var body map[string][]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"dogs/a.png"}, body["prefixes"])
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	s, err := NewPhotoStore(Config{URL: ts.URL, AnonKey: "anon"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), []string{"dogs/a.png"}))
}

func TestPhotoStore_UploadErrorIsUpstream(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"statusCode":"403","error":"Unauthorized","message":"new row violates row-level security policy"}`))
	}))
	defer ts.Close()

	s, err := NewPhotoStore(Config{URL: ts.URL, AnonKey: "anon"})
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "dogs/x.jpg", "image/jpeg", strings.NewReader("x"), 1)
	require.ErrorIs(t, err, ErrUpstream)
}

func TestPhotoStore_PathFromForeignURL(t *testing.T) {
	s, err := NewPhotoStore(Config{URL: "https://abc.supabase.co", AnonKey: "anon"})
	require.NoError(t, err)

	_, err = s.PathFromURL("https://cdn.example.com/other/x.jpg")
	require.ErrorIs(t, err, storage.ErrForeignURL)
}
