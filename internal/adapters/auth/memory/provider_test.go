package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pura-pata/internal/ports/auth"
)

func TestProvider_SignUpSignInVerify(t *testing.T) {
	p := NewProvider("", 0)
	ctx := context.Background()

	s, u, err := p.SignUp(ctx, auth.SignUpInput{Email: " Ana@Example.com ", Password: "secret1", Data: map[string]any{"name": "Ana"}})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "Ana", u.Metadata["name"])

	_, _, err = p.SignUp(ctx, auth.SignUpInput{Email: "ana@example.com", Password: "secret1"})
	var pe *auth.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "User already registered", pe.Message)

	_, err = p.SignIn(ctx, "ana@example.com", "wrong")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Invalid login credentials", pe.Message)

	signed, err := p.SignIn(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)

	c, err := p.Verify(ctx, signed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, c.UserID)
	assert.Equal(t, "ana@example.com", c.Email)
}

func TestProvider_ExpiredTokenStillYieldsClaims(t *testing.T) {
	p := NewProvider("s3cret", time.Minute)
	start := time.Now()
	p.now = func() time.Time { return start }

	s, u, err := p.SignUp(context.Background(), auth.SignUpInput{Email: "a@b.cr", Password: "secret1"})
	require.NoError(t, err)

	p.now = func() time.Time { return start.Add(2 * time.Minute) }
	c, err := p.Verify(context.Background(), s.AccessToken)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
	assert.Equal(t, u.ID, c.UserID)

	_, err = NewProvider("other", 0).Verify(context.Background(), s.AccessToken)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestProvider_RefreshRotatesAndSignOutRevokes(t *testing.T) {
	p := NewProvider("", 0)
	ctx := context.Background()
	s, _, err := p.SignUp(ctx, auth.SignUpInput{Email: "a@b.cr", Password: "secret1"})
	require.NoError(t, err)

	fresh, err := p.Refresh(ctx, s.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, s.RefreshToken, fresh.RefreshToken)

	_, err = p.Refresh(ctx, s.RefreshToken)
	require.Error(t, err)

	require.NoError(t, p.SignOut(ctx, fresh.AccessToken))
	_, err = p.Refresh(ctx, fresh.RefreshToken)
	require.Error(t, err)
}

func TestProvider_RecoveryFlow(t *testing.T) {
	p := NewProvider("", 0)
	ctx := context.Background()
	_, _, err := p.SignUp(ctx, auth.SignUpInput{Email: "a@b.cr", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, p.RequestPasswordReset(ctx, "nadie@b.cr", "https://x/auth/reset-password"))
	_, ok := p.RecoveryLink("nadie@b.cr")
	assert.False(t, ok)

	require.NoError(t, p.RequestPasswordReset(ctx, "a@b.cr", "https://x/auth/reset-password"))
	link, ok := p.RecoveryLink("a@b.cr")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(link, "https://x/auth/reset-password#access_token="))
	assert.Contains(t, link, "&type=recovery")

	_, frag, _ := strings.Cut(link, "#")
	token := strings.TrimPrefix(strings.Split(frag, "&")[0], "access_token=")

	_, err = p.UpdatePassword(ctx, token, "secret1")
	require.Error(t, err)

	_, err = p.UpdatePassword(ctx, token, "nueva123")
	require.NoError(t, err)
	_, err = p.SignIn(ctx, "a@b.cr", "nueva123")
	require.NoError(t, err)
}
