package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"papochat/internal/pkg/auth/jwt"
	"papochat/internal/pkg/logx"
	"papochat/internal/pkg/randx"
	"papochat/internal/pkg/resp"
)

// CookieName is the name of the session cookie.
const CookieName = "papochat.sid"

// Manager binds sessions in a Store to browser cookies.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration

	// secure marks the cookie Secure; off in development where the server runs on plain HTTP.
	secure bool

	logger zerolog.Logger
}

// NewManager creates a Manager signing cookies with secret. ttl is the sliding lifetime
// of both the cookie and the stored session.
func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
		secure: secure,
		logger: logx.Component("session"),
	}
}

// New returns an unsaved session with a fresh random id.
func (m *Manager) New() (*Session, error) {
	id, err := randx.SessionID()
	if err != nil {
		return nil, err
	}
	return &Session{ID: id}, nil
}

// Load is a middleware that resolves the session cookie into a Session stored in the
// request context. A live session has its expiry pushed forward and its cookie reissued,
// which restarts the window. The stored contents are not rewritten, so concurrent requests
// do not overwrite each other's changes. Missing, forged or expired cookies leave the
// request anonymous.
func (m *Manager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		payload, err := jwt.ParseToken(cookie.Value, m.secret)
		if err != nil || !randx.IsValidSessionID(payload.SessionID) {
			m.logger.Debug().Err(err).Msg("Discarding invalid session cookie.")
			m.expireCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.store.Get(r.Context(), payload.SessionID)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				m.logger.Error().Err(err).Msg("Failed to load session, continuing as anonymous.")
			}
			m.expireCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		expiresAt, err := m.store.Touch(r.Context(), sess.ID)
		switch {
		case errors.Is(err, ErrNotFound):
			m.expireCookie(w)
			next.ServeHTTP(w, r)
			return
		case err != nil:
			m.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("Failed to refresh session expiry.")
		default:
			sess.ExpiresAt = expiresAt
			if err := m.issueCookie(w, sess); err != nil {
				m.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("Failed to reissue session cookie.")
			}
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// Guard returns a middleware that redirects requests without a logged-in user to
// loginPath. Requests for loginPath itself always pass.
func (m *Manager) Guard(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !FromContext(r.Context()).Authenticated() && r.URL.Path != loginPath {
				resp.Redirect(w, r, loginPath)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Save persists sess and (re)issues its cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, sess *Session) error {
	if err := m.store.Save(r.Context(), sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return m.issueCookie(w, sess)
}

// Active reports whether the session with the given id is still live in the store with a
// user logged in. It does not extend the session.
func (m *Manager) Active(ctx context.Context, id string) bool {
	sess, err := m.store.Get(ctx, id)
	return err == nil && sess.Authenticated()
}

func (m *Manager) issueCookie(w http.ResponseWriter, sess *Session) error {
	token, err := jwt.GenerateToken(sess.ID, m.secret, m.ttl)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}

	m.setCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Destroy deletes the request's session from the store and expires the cookie.
// On a store failure the cookie is left in place and the error returned.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	if sess := FromContext(r.Context()); sess != nil {
		if err := m.store.Destroy(r.Context(), sess.ID); err != nil {
			return fmt.Errorf("destroy session %s: %w", sess.ID, err)
		}
	}

	m.expireCookie(w)
	return nil
}

func (m *Manager) expireCookie(w http.ResponseWriter) {
	m.setCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// setCookie replaces any session cookie already queued on w, so a request that saves
// its session twice still sends a single Set-Cookie for it.
func (m *Manager) setCookie(w http.ResponseWriter, c *http.Cookie) {
	header := w.Header()
	prefix := CookieName + "="

	kept := header.Values("Set-Cookie")[:0:0]
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	http.SetCookie(w, c)
}
