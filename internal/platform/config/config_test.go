package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"API_URL=http://backend:8000/\n"+
			"SUPABASE_URL=https://abc.supabase.co\n"+
			"SUPABASE_ANON_KEY=anon\n"+
			"HTTP_TIMEOUT=3s\n"+
			"CORS_ALLOWED_ORIGINS=https://a.cr, https://b.cr\n"+
			"COOKIE_SECURE=false\n",
	), 0o600))

	for _, k := range []string{"API_URL", "SUPABASE_URL", "SUPABASE_ANON_KEY", "HTTP_TIMEOUT", "CORS_ALLOWED_ORIGINS", "COOKIE_SECURE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8000", cfg.APIURL)
	assert.True(t, cfg.Supabase.Enabled())
	assert.Equal(t, "dog-photos", cfg.Supabase.Bucket)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"https://a.cr", "https://b.cr"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_RequiresAnonKeyWithSupabaseURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "")

	envFile := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(envFile, nil, 0o600))

	_, err := Load(envFile)
	require.ErrorContains(t, err, "SUPABASE_ANON_KEY")
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoad_MissingDefaultEnvIsOptional(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("HTTP_TIMEOUT", "nope")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Supabase.Enabled())
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}
