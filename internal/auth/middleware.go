package auth

import (
	"context"
	"net/http"

	"github.com/sakif/hackhub/internal/model"
)

// CookieName is the HttpOnly cookie the session token travels in.
const CookieName = "hackhub_token"

// SessionSource yields the persisted session record, or nil when nobody
// is signed in.
type SessionSource interface {
	CurrentSession(ctx context.Context) (*model.Session, error)
}

// contextKey is unexported so only this package can read or write
// session values in a request context.
type contextKey string

const sessionKey contextKey = "session"

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the session cookie, validates it, and then
// cross-checks the subject against the persisted session record: a
// signed token whose user has since signed out is rejected. On success
// the session is stored in the request context.
func RequireAuth(tokens *TokenService, sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := resolveSession(r, tokens, sessions)
			if err != nil || session == nil {
				http.Error(w, `{"success":false,"message":"User not authenticated"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the session when a valid token is present but
// never blocks the request. Anonymous users fall through to guest
// behavior in the handlers.
func OptionalAuth(tokens *TokenService, sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, err := resolveSession(r, tokens, sessions); err == nil && session != nil {
				ctx := context.WithValue(r.Context(), sessionKey, session)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext retrieves the authenticated session from the
// request context. Returns nil for anonymous requests.
func SessionFromContext(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionKey).(*model.Session)
	return session
}

// resolveSession validates the cookie and matches it against the
// persisted session record.
func resolveSession(r *http.Request, tokens *TokenService, sessions SessionSource) (*model.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, err
	}

	userID, err := tokens.Validate(cookie.Value)
	if err != nil {
		return nil, err
	}

	session, err := sessions.CurrentSession(r.Context())
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID {
		return nil, nil
	}

	return session, nil
}

// SetSessionCookie writes the HttpOnly session cookie on sign-in.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TokenLifetime.Seconds()),
	})
}

// ClearSessionCookie expires the session cookie on sign-out.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
