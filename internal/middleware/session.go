package middleware

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pura-pata/internal/platform/logger"
	"pura-pata/internal/ports/auth"
)

const (
	SessionCookie  = "pp_session"
	DebugUserIDHdr = "X-Debug-User-ID"

	sessionCookieMaxAge = 30 * 24 * time.Hour
)

type SessionOptions struct {
	Provider auth.Provider     // nil => sign-in/up responden ErrNotConfigured
	Verifier auth.AuthVerifier // nil => modo dev (acepta X-Debug-User-ID)
	Secure   bool
	Log      logger.Logger
}

// Session arma un auth.Manager por request y lo deja en ctx.
// La sesión inicial sale de (en orden): cookie pp_session, Bearer token,
// o en modo dev el header X-Debug-User-ID. Si no hay nada, el request sigue
// anónimo; los handlers deciden 401/403.
// Cada cambio de sesión (login, refresh, logout) reescribe la cookie.
func Session(opts SessionOptions) func(http.Handler) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initial, fromCookie := initialSession(r, opts, log)

			m := auth.NewManager(opts.Provider, initial)
			unsub := m.Subscribe(func(ev auth.Event, s *auth.Session) {
				writeSessionCookie(w, s, opts.Secure)
			})
			defer unsub()

			// cookie ilegible o vencida sin remedio: se borra
			if initial == nil && fromCookie {
				writeSessionCookie(w, nil, opts.Secure)
			}

			next.ServeHTTP(w, r.WithContext(auth.WithManager(r.Context(), m)))
		})
	}
}

func initialSession(r *http.Request, opts SessionOptions, log logger.Logger) (s *auth.Session, fromCookie bool) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		s, err := decodeSession(c.Value)
		if err != nil {
			log.Debug("discarding unreadable session cookie", map[string]any{"err": err})
			return nil, true
		}
		if opts.Verifier != nil {
			claims, err := opts.Verifier.Verify(r.Context(), s.AccessToken)
			if err != nil && !errors.Is(err, auth.ErrTokenExpired) {
				log.Debug("discarding session cookie with invalid token", map[string]any{"err": err})
				return nil, true
			}
			// la identidad sale del token, nunca del JSON de la cookie
			if claims.UserID == "" || (s.User.ID != "" && s.User.ID != claims.UserID) {
				log.Warn("discarding session cookie whose user does not match its token", map[string]any{"token_sub": claims.UserID})
				return nil, true
			}
			s.User.ID = claims.UserID
			if claims.Email != "" {
				s.User.Email = claims.Email
			}
		}
		return s, true
	}

	if token := bearerToken(r.Header.Get("Authorization")); token != "" && opts.Verifier != nil {
		claims, err := opts.Verifier.Verify(r.Context(), token)
		if err != nil {
			// sin refresh token un Bearer vencido no se puede recuperar
			return nil, false
		}
		return &auth.Session{
			AccessToken: token,
			ExpiresAt:   claims.ExpiresAt,
			User:        auth.User{ID: claims.UserID, Email: claims.Email},
		}, false
	}

	if opts.Verifier == nil {
		if uid := strings.TrimSpace(r.Header.Get(DebugUserIDHdr)); uid != "" {
			return &auth.Session{AccessToken: "debug:" + uid, User: auth.User{ID: uid}}, false
		}
	}
	return nil, false
}

func encodeSession(s auth.Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeSession(v string) (*auth.Session, error) {
	b, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil, err
	}
	var s auth.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.AccessToken) == "" {
		return nil, errors.New("session without access token")
	}
	return &s, nil
}

// writeSessionCookie reemplaza cualquier Set-Cookie previo de la sesión.
// s nil => borra la cookie.
func writeSessionCookie(w http.ResponseWriter, s *auth.Session, secure bool) {
	c := &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s == nil {
		c.MaxAge = -1
	} else {
		v, err := encodeSession(*s)
		if err != nil {
			return
		}
		c.Value = v
		c.MaxAge = int(sessionCookieMaxAge / time.Second)
	}

	h := w.Header()
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, SessionCookie+"=") {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	http.SetCookie(w, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
