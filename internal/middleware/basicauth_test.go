package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ingri/reservations/internal/config"
)

func adminRequest(t *testing.T, cfg config.Config, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/reservations", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := AdminBasicAuth(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))
	return rec
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestMissingCredentialsChallenged(t *testing.T) {
	cfg := config.Config{AdminUser: "admin", AdminPass: "s3cret"}

	rec := adminRequest(t, cfg, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderWWWAuthenticate), "Basic realm=")
}

func TestWrongCredentialsChallenged(t *testing.T) {
	cfg := config.Config{AdminUser: "admin", AdminPass: "s3cret"}

	for _, auth := range []string{
		basic("admin", "wrong"),
		basic("intruder", "s3cret"),
		"Basic not-base64!!",
		"Bearer sometoken",
	} {
		rec := adminRequest(t, cfg, auth)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, auth)
	}
}

func TestCorrectCredentialsPass(t *testing.T) {
	cfg := config.Config{AdminUser: "admin", AdminPass: "s3cret"}

	rec := adminRequest(t, cfg, basic("admin", "s3cret"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestBcryptHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Config{
		AdminUser:     "admin",
		AdminPass:     "ignored-when-hash-set",
		AdminPassHash: string(hash),
	}

	assert.Equal(t, http.StatusOK, adminRequest(t, cfg, basic("admin", "hunter2")).Code)
	assert.Equal(t, http.StatusUnauthorized, adminRequest(t, cfg, basic("admin", "ignored-when-hash-set")).Code)
}
