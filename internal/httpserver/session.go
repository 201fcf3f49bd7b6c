// internal/httpserver/session.go
//
// Session cookie handling. Each browser session gets a stable identifier
// carried in an HS256 JWT cookie; the id scopes every persisted snapshot.
// There are no accounts: the cookie is minted on first contact and
// verified on every request after that.

package httpserver

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ctxSessionKey is the context key type for storing the session id.
type ctxSessionKey struct{}

// withSession resolves the session id from the request cookie, minting a
// fresh session (and cookie) when none is present or the token fails to
// verify. It never rejects a request.
func (s *Server) withSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionFromToken(bearerOrCookie(r))
			if sid == "" {
				sid = uuid.NewString()
				tok, exp, err := signSession(sid)
				if err != nil {
					log.Warn().Err(err).Msg("sign session token")
				} else {
					setSessionCookie(w, tok, exp)
				}
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionID reads the session id placed into context by withSession.
func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionKey{}).(string)
	return sid
}

// sessionFromToken verifies a session JWT and extracts the sid claim.
// Returns "" for missing/invalid tokens.
func sessionFromToken(tok string) string {
	if tok == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(getEnv("SESSION_SECRET", "dev_secret_change_me")), nil
	})
	if err != nil || !t.Valid {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}

// signSession creates an HS256 JWT carrying the session id, with a
// configurable expiry (SESSION_EXPIRES_DAYS; default 30).
func signSession(sid string) (string, time.Time, error) {
	secret := []byte(getEnv("SESSION_SECRET", "dev_secret_change_me"))
	days := envInt("SESSION_EXPIRES_DAYS", 30)
	exp := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	ss, err := t.SignedString(secret)
	return ss, exp, err
}

// setSessionCookie writes the session cookie with appropriate security
// attributes.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	name := getEnv("COOKIE_NAME", "molkky_session")
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a session token from Authorization header or
// the session cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(getEnv("COOKIE_NAME", "molkky_session")); err == nil {
		return c.Value
	}
	return ""
}
