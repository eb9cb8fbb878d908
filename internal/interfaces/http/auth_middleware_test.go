package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kawok-pos/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/kawok-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/kawok-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testIssuer     = "kawok-pos-test"
	testExpMin     = 60
	testCookieName = "auth-token"
)

// failingChecker simula una caída del almacén de revocaciones.
type failingChecker struct{}

func (failingChecker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireAdmin en /admin
//   - Handlers dummy que devuelven 200 si pasan los middlewares
func buildTestApp(revocations apphttp.RevocationChecker) *fiber.App {
	app := fiber.New()
	auth := apphttp.AuthMiddleware(apphttp.AuthConfig{
		Secret:      testJWTSecret,
		CookieName:  testCookieName,
		Revocations: revocations,
	})
	app.Get("/protected", auth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId":  apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
			"isAdmin": apphttp.GetIsAdmin(c),
		})
	})
	app.Get("/admin", auth, apphttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

// tokenFor genera un JWT para el usuario de prueba.
func tokenFor(t *testing.T, isAdmin bool, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID:  testUserID,
		Email:   "kasir@kawokvape.com",
		Name:    "Kasir",
		IsAdmin: isAdmin,
	}, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// doRequest lanza una petición GET con header Authorization y/o cookie.
func doRequest(t *testing.T, app *fiber.App, path, authHeader, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_BearerValido(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "/protected", "Bearer "+tokenFor(t, false, testExpMin), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, "kasir@kawokvape.com", body["email"])
	assert.Equal(t, false, body["isAdmin"])
}

func TestAuthMiddleware_CookieValida(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "/protected", "", tokenFor(t, false, testExpMin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "la cookie de sesión sustituye al header")
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "/protected", "", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "/protected", "Token "+tokenFor(t, false, testExpMin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "/protected", "Bearer "+tokenFor(t, false, -1), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret", pkgjwt.Identity{UserID: testUserID}, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp(nil)
	resp := doRequest(t, app, "/protected", "Bearer "+tok, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	denylist := memory.NewTokenDenylist()
	tok := tokenFor(t, false, testExpMin)
	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	require.NoError(t, denylist.Revoke(context.Background(), claims.ID, time.Hour))

	app := buildTestApp(denylist)
	resp := doRequest(t, app, "/protected", "Bearer "+tok, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "REVOKED_TOKEN")
}

func TestAuthMiddleware_FalloAlVerificarRevocacion(t *testing.T) {
	app := buildTestApp(failingChecker{})
	resp := doRequest(t, app, "/protected", "Bearer "+tokenFor(t, false, testExpMin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"sin poder consultar revocaciones no se deja pasar el token")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "/admin", "Bearer "+tokenFor(t, true, testExpMin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_CajeroBloqueado(t *testing.T) {
	app := buildTestApp(nil)
	resp := doRequest(t, app, "/admin", "Bearer "+tokenFor(t, false, testExpMin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireAdmin_SinAuthMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", apphttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
