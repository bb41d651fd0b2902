package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
)

const (
	// SessionCookie holds the signed session marker.
	SessionCookie = "librarydesk_session"
	// LoginPath is where the gate sends unauthenticated requests.
	LoginPath = "/login"

	sessionKey = "session"
	roleKey    = "role"
)

var errBadMarker = errors.New("invalid session marker")

// SessionResolver looks a session id up in the session store.
type SessionResolver interface {
	Current(ctx context.Context, id string) (*domain.Session, error)
}

// SignSessionID wraps a session id in an HS256 token. The token carries no
// expiry; the session store decides how long the session lives.
func SignSessionID(secret, sid string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  sid,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies the signature and returns the session id.
func ParseSessionToken(secret, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", errBadMarker
	}
	return claims.Subject, nil
}

// SessionCookieFor builds the cookie set after login.
func SessionCookieFor(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the marker.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
}

// Session is the auth gate for pages. A request without a usable session
// marker is redirected to the login screen before the page runs.
func Session(secret string, sessions SessionResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return gate(secret, sessions, log, func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, LoginPath)
	})
}

// SessionAPI is the auth gate for JSON routes; it answers 401 instead of redirecting.
func SessionAPI(secret string, sessions SessionResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return gate(secret, sessions, log, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	})
}

func gate(secret string, sessions SessionResolver, log zerolog.Logger, deny func(echo.Context) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return deny(c)
			}

			sid, err := ParseSessionToken(secret, cookie.Value)
			if err != nil {
				return deny(c)
			}

			req := c.Request()
			sess, err := sessions.Current(req.Context(), sid)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Warn().Err(err).Str("path", req.URL.Path).Msg("session lookup failed")
				}
				return deny(c)
			}

			c.Set(sessionKey, sess)
			c.Set(roleKey, sess.Role)
			c.SetRequest(req.WithContext(ports.WithBackendToken(req.Context(), sess.BackendToken)))
			return next(c)
		}
	}
}

// CurrentSession returns the session set by the gate, or nil on public routes.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionKey).(*domain.Session)
	return sess
}
