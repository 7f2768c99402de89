// Package middleware provides the HTTP middleware of the reservation
// service: the admin Basic-auth gate, the availability response cache
// and the booking rate limiter.
package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ingri/reservations/internal/config"
)

const basicPrefix = "basic "

// AdminBasicAuth gates the admin surface behind a single shared static
// credential.  Absent or mismatched credentials receive a 401 challenge
// with a WWW-Authenticate header; there is no lockout or rate limiting
// on failures.  When cfg.AdminPassHash is set the password is verified
// against the bcrypt hash, otherwise a constant-time comparison against
// the plain configured password is used.
func AdminBasicAuth(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if user, pass, ok := decodeBasic(header); ok && credentialsMatch(cfg, user, pass) {
				return next(c)
			}
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="ingri admin"`)
			return c.String(http.StatusUnauthorized, "Authentication required")
		}
	}
}

func decodeBasic(header string) (user, pass string, ok bool) {
	if len(header) <= len(basicPrefix) || !strings.EqualFold(header[:len(basicPrefix)], basicPrefix) {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(header[len(basicPrefix):])
	if err != nil {
		return "", "", false
	}
	user, pass, ok = strings.Cut(string(raw), ":")
	return user, pass, ok
}

func credentialsMatch(cfg config.Config, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUser)) == 1
	if cfg.AdminPassHash != "" {
		return userOK && bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassHash), []byte(pass)) == nil
	}
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.AdminPass)) == 1
	return userOK && passOK
}
