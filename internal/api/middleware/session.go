package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

const (
	sessionKey = "session"
	managerKey = "manager"
)

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	Store      ports.SessionStore
	Secret     string
	CookieName string
	TTL        time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
	Log    zerolog.Logger
}

// Session loads the server-side session named by the signed cookie and puts
// it in the echo context. Handlers mutate it through the services. Every
// response for a live session re-signs the cookie with a fresh expiry, in step
// with the store renewing the session's TTL on load; a reset session gets its
// cookie expired. Nothing is stored for visitors whose session is never
// written.
//
// A store failure other than a missing session fails the request rather than
// starting a fresh session that would replace the visitor's cookie.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := loadSession(c, cfg)
			if err != nil {
				return err
			}
			originalID := sess.ID
			c.Set(sessionKey, sess)

			c.Response().Before(func() {
				switch {
				case sess.ID != "":
					token, err := SignSessionID(cfg.Secret, sess.ID, cfg.TTL)
					if err != nil {
						cfg.Log.Error().Err(err).Msg("sign session cookie")
						return
					}
					c.SetCookie(sessionCookie(cfg, token, int(cfg.TTL.Seconds())))
				case originalID != "":
					c.SetCookie(sessionCookie(cfg, "", -1))
				}
			})

			return next(c)
		}
	}
}

// SessionFrom returns the session loaded by Session. Outside that middleware
// it returns an empty, unsaved session.
func SessionFrom(c echo.Context) *domain.Session {
	if sess, ok := c.Get(sessionKey).(*domain.Session); ok && sess != nil {
		return sess
	}
	sess := &domain.Session{}
	c.Set(sessionKey, sess)
	return sess
}

// SignSessionID wraps a session id in an HS256 token so the cookie cannot be
// forged without the secret.
func SignSessionID(secret, id string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:       id,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken verifies the token and returns the session id it carries.
func ParseSessionToken(secret, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if !tkn.Valid || claims.ID == "" {
		return "", errors.New("parse session token: missing session id")
	}
	return claims.ID, nil
}

func loadSession(c echo.Context, cfg SessionConfig) (*domain.Session, error) {
	cookie, err := c.Cookie(cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return &domain.Session{}, nil
	}

	id, err := ParseSessionToken(cfg.Secret, cookie.Value)
	if err != nil {
		cfg.Log.Debug().Err(err).Msg("ignoring invalid session cookie")
		return &domain.Session{}, nil
	}

	sess, err := cfg.Store.Load(c.Request().Context(), id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return &domain.Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return sess, nil
}

func sessionCookie(cfg SessionConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
