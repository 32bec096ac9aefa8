package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	helper "almanar_backend/internals/helpers"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func newTestApp(opts AuthJWTOpts) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthJWT(opts), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    c.Locals(helper.LocUserID),
			"student_id": c.Locals(helper.LocStudentID),
		})
	})
	return app
}

func TestAuthJWT_MissingToken(t *testing.T) {
	app := newTestApp(AuthJWTOpts{Secret: testSecret})

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWT_ValidBearer(t *testing.T) {
	app := newTestApp(AuthJWTOpts{Secret: testSecret})

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":         "11111111-1111-1111-1111-111111111111",
		"roles":      []string{"student"},
		"student_id": "22222222-2222-2222-2222-222222222222",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	app := newTestApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true})

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":  "11111111-1111-1111-1111-111111111111",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	app := newTestApp(AuthJWTOpts{Secret: testSecret})

	token := signToken(t, "other-secret", jwt.MapClaims{
		"id":  "x",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	app := newTestApp(AuthJWTOpts{Secret: testSecret})

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":  "x",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthJWT_BlacklistedToken(t *testing.T) {
	app := newTestApp(AuthJWTOpts{
		Secret:           testSecret,
		BlacklistChecker: func(string) (bool, error) { return true, nil },
	})

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":  "x",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
