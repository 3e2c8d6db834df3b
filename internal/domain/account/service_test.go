package account

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pura-pata/internal/domain/users"
	"pura-pata/internal/platform/logger"
	"pura-pata/internal/ports/auth"
)

type fakeProvider struct {
	signUpErr    error
	confirmEmail bool
	resetErr     error
	resetTo      string
	updateErr    error
	updateToken  string
}

func (p *fakeProvider) SignUp(ctx context.Context, in auth.SignUpInput) (*auth.Session, auth.User, error) {
	if p.signUpErr != nil {
		return nil, auth.User{}, p.signUpErr
	}
	u := auth.User{ID: "u-new", Email: in.Email, Metadata: in.Data}
	if p.confirmEmail {
		return nil, u, nil
	}
	return &auth.Session{AccessToken: "tok-new", User: u}, u, nil
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	if password != "secret1" {
		return auth.Session{}, &auth.ProviderError{StatusCode: 400, Message: "Invalid login credentials"}
	}
	return auth.Session{AccessToken: "tok-1", User: auth.User{ID: "u-1", Email: email}}, nil
}

func (p *fakeProvider) SignOut(ctx context.Context, accessToken string) error {
	return errors.New("network down")
}

func (p *fakeProvider) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	return auth.Session{}, errors.New("unused")
}

func (p *fakeProvider) RequestPasswordReset(ctx context.Context, email, redirectTo string) error {
	p.resetTo = redirectTo
	return p.resetErr
}

func (p *fakeProvider) UpdatePassword(ctx context.Context, accessToken, newPassword string) (auth.User, error) {
	p.updateToken = accessToken
	if p.updateErr != nil {
		return auth.User{}, p.updateErr
	}
	return auth.User{ID: "u-1"}, nil
}

func (p *fakeProvider) GetUser(ctx context.Context, accessToken string) (auth.User, error) {
	return auth.User{ID: "u-1"}, nil
}

type fakeProfiles struct {
	err     error
	created *users.CreateInput
	userID  string
}

func (f *fakeProfiles) CreateProfile(ctx context.Context, in users.CreateInput) (users.User, error) {
	f.created = &in
	f.userID = auth.UserID(ctx)
	if f.err != nil {
		return users.User{}, f.err
	}
	return users.User{ID: "u-new", Email: in.Email, Name: in.Name}, nil
}

func newCtx(p auth.Provider, s *auth.Session) (context.Context, *auth.Manager) {
	m := auth.NewManager(p, s)
	return auth.WithManager(context.Background(), m), m
}

func formMessage(t *testing.T, err error) string {
	t.Helper()
	var fe *FormError
	require.ErrorAs(t, err, &fe)
	return fe.Message
}

func TestCheckPasswords(t *testing.T) {
	assert.Equal(t, MsgPasswordMismatch, formMessage(t, CheckPasswords("secret1", "secret2")))
	assert.Equal(t, MsgPasswordTooShort, formMessage(t, CheckPasswords("abc", "abc")))
	assert.NoError(t, CheckPasswords("secret1", "secret1"))
	// seis caracteres multibyte cuentan como seis
	assert.NoError(t, CheckPasswords("ñññççç", "ñññççç"))
}

func TestSignUp_CreatesProfileWithSession(t *testing.T) {
	profiles := &fakeProfiles{}
	svc := NewService(profiles, "https://purapata.cr/", logger.Nop())
	ctx, m := newCtx(&fakeProvider{}, nil)

	res, err := svc.SignUp(ctx, SignUpInput{
		Email: " ana@example.com ", Password: "secret1", ConfirmPassword: "secret1",
		Name: " Ana ", Phone: "8888-8888", Province: "San José",
	})
	require.NoError(t, err)
	assert.True(t, res.SessionStarted)
	require.NotNil(t, res.Profile)
	assert.Equal(t, "/", res.Redirect)

	require.NotNil(t, profiles.created)
	assert.Equal(t, "ana@example.com", profiles.created.Email)
	assert.Equal(t, "San José", profiles.created.Province)
	// el perfil se crea con la sesión recién abierta
	assert.Equal(t, "u-new", profiles.userID)
	assert.Equal(t, "Ana", res.User.Metadata["name"])
	assert.Equal(t, "u-new", m.UserID())
}

func TestSignUp_Errors(t *testing.T) {
	t.Run("passwords do not match", func(t *testing.T) {
		profiles := &fakeProfiles{}
		svc := NewService(profiles, "", nil)
		ctx, _ := newCtx(&fakeProvider{}, nil)
		_, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.cr", Password: "secret1", ConfirmPassword: "secret9"})
		assert.Equal(t, MsgPasswordMismatch, formMessage(t, err))
		assert.Nil(t, profiles.created)
	})

	t.Run("provider message shown verbatim", func(t *testing.T) {
		p := &fakeProvider{signUpErr: &auth.ProviderError{StatusCode: 422, Message: "User already registered"}}
		svc := NewService(&fakeProfiles{}, "", nil)
		ctx, _ := newCtx(p, nil)
		_, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.cr", Password: "secret1", ConfirmPassword: "secret1"})

		var fe *FormError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "User already registered", fe.Message)
		assert.Equal(t, http.StatusUnprocessableEntity, fe.Status)
	})

	t.Run("unexpected provider failure", func(t *testing.T) {
		p := &fakeProvider{signUpErr: errors.New("connection reset")}
		svc := NewService(&fakeProfiles{}, "", nil)
		ctx, _ := newCtx(p, nil)
		_, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.cr", Password: "secret1", ConfirmPassword: "secret1"})
		assert.Equal(t, MsgSignUpFailed, formMessage(t, err))
	})

	t.Run("profile creation fails", func(t *testing.T) {
		svc := NewService(&fakeProfiles{err: errors.New("backend down")}, "", nil)
		ctx, _ := newCtx(&fakeProvider{}, nil)
		res, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.cr", Password: "secret1", ConfirmPassword: "secret1", Name: "Ana"})
		assert.Equal(t, MsgProfileFailed, formMessage(t, err))
		assert.Equal(t, "u-new", res.User.ID)
		assert.Nil(t, res.Profile)
	})
}

func TestSignUp_EmailConfirmationPending(t *testing.T) {
	profiles := &fakeProfiles{}
	svc := NewService(profiles, "", nil)
	ctx, _ := newCtx(&fakeProvider{confirmEmail: true}, nil)

	res, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.cr", Password: "secret1", ConfirmPassword: "secret1", Name: "Ana"})
	require.NoError(t, err)
	assert.False(t, res.SessionStarted)
	require.NotNil(t, profiles.created)
	assert.Empty(t, profiles.userID)
}

func TestSignInAndSignOut(t *testing.T) {
	svc := NewService(&fakeProfiles{}, "", nil)
	ctx, m := newCtx(&fakeProvider{}, nil)

	_, err := svc.SignIn(ctx, "a@b.cr", "wrong")
	assert.Equal(t, "Invalid login credentials", formMessage(t, err))

	_, err = svc.SignIn(ctx, "a@b.cr", "secret1")
	require.NoError(t, err)
	s, ok := svc.Session(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", s.User.ID)

	// el proveedor falla pero la sesión local queda limpia
	svc.SignOut(ctx)
	_, ok = m.Current()
	assert.False(t, ok)
	_, ok = svc.Session(ctx)
	assert.False(t, ok)
}

func TestRequestPasswordReset(t *testing.T) {
	p := &fakeProvider{}
	svc := NewService(&fakeProfiles{}, "https://purapata.cr/", nil)
	ctx, _ := newCtx(p, nil)

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@b.cr"))
	assert.Equal(t, "https://purapata.cr/auth/reset-password", p.resetTo)

	p.resetErr = &auth.ProviderError{StatusCode: 429, Message: "rate limited"}
	assert.Equal(t, MsgResetRejected, formMessage(t, svc.RequestPasswordReset(ctx, "a@b.cr")))

	p.resetErr = errors.New("timeout")
	assert.Equal(t, MsgResetFailed, formMessage(t, svc.RequestPasswordReset(ctx, "a@b.cr")))
}

func TestParseRecoveryFragment(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r, err := ParseRecoveryFragment("#access_token=abc&refresh_token=def&expires_in=3600&type=recovery", now)
	require.NoError(t, err)
	assert.Equal(t, "abc", r.AccessToken)
	assert.Equal(t, "def", r.RefreshToken)
	assert.Equal(t, now.Add(time.Hour), r.ExpiresAt)

	r, err = ParseRecoveryFragment("access_token=abc&expires_at=1748779200&type=recovery", now)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1748779200, 0).UTC(), r.ExpiresAt)

	for _, bad := range []string{"", "#type=recovery", "#access_token=abc&type=signup", "%zz"} {
		_, err := ParseRecoveryFragment(bad, now)
		assert.ErrorIs(t, err, auth.ErrInvalidRecovery, bad)
	}
}

func TestUpdatePassword(t *testing.T) {
	t.Run("with recovery link", func(t *testing.T) {
		p := &fakeProvider{}
		svc := NewService(&fakeProfiles{}, "", nil)
		ctx, _ := newCtx(p, nil)

		u, err := svc.UpdatePassword(ctx, UpdatePasswordInput{
			Password: "nueva123", ConfirmPassword: "nueva123",
			RecoveryFragment: "#access_token=rec&type=recovery",
		})
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, "rec", p.updateToken)
	})

	t.Run("invalid link", func(t *testing.T) {
		svc := NewService(&fakeProfiles{}, "", nil)
		ctx, _ := newCtx(&fakeProvider{}, nil)
		_, err := svc.UpdatePassword(ctx, UpdatePasswordInput{Password: "nueva123", ConfirmPassword: "nueva123", RecoveryFragment: "#type=recovery"})
		assert.Equal(t, MsgInvalidRecovery, formMessage(t, err))
	})

	t.Run("no session", func(t *testing.T) {
		svc := NewService(&fakeProfiles{}, "", nil)
		ctx, _ := newCtx(&fakeProvider{}, nil)
		_, err := svc.UpdatePassword(ctx, UpdatePasswordInput{Password: "nueva123", ConfirmPassword: "nueva123"})
		var fe *FormError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusUnauthorized, fe.Status)
	})

	t.Run("provider rejects", func(t *testing.T) {
		p := &fakeProvider{updateErr: &auth.ProviderError{StatusCode: 422, Message: "same password"}}
		svc := NewService(&fakeProfiles{}, "", nil)
		ctx, _ := newCtx(p, &auth.Session{AccessToken: "tok", User: auth.User{ID: "u-1"}})
		_, err := svc.UpdatePassword(ctx, UpdatePasswordInput{Password: "nueva123", ConfirmPassword: "nueva123"})
		assert.Equal(t, MsgUpdateRejected, formMessage(t, err))
	})

	t.Run("unexpected failure", func(t *testing.T) {
		p := &fakeProvider{updateErr: errors.New("boom")}
		svc := NewService(&fakeProfiles{}, "", nil)
		ctx, _ := newCtx(p, &auth.Session{AccessToken: "tok", User: auth.User{ID: "u-1"}})
		_, err := svc.UpdatePassword(ctx, UpdatePasswordInput{Password: "nueva123", ConfirmPassword: "nueva123"})
		assert.Equal(t, MsgUpdateFailed, formMessage(t, err))
	})
}

func TestHandlers(t *testing.T) {
	svc := NewService(&fakeProfiles{}, "", nil)
	m := auth.NewManager(&fakeProvider{}, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(auth.WithManager(req.Context(), m)))
		})
	})
	RegisterRoutes(r, svc)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodGet, "/auth/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	rec = do(http.MethodPost, "/auth/signin", `{"email":"a@b.cr","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid login credentials")

	rec = do(http.MethodPost, "/auth/signin", `{"email":"a@b.cr","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)

	rec = do(http.MethodPost, "/auth/password/update", `{"password":"abc","confirm_password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgPasswordTooShort)

	rec = do(http.MethodPost, "/auth/signout", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "", m.UserID())
}
