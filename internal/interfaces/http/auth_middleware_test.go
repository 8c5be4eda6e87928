package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/ssilapps/billbook-api/internal/interfaces/http"
	pkgjwt "github.com/ssilapps/billbook-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "billbook-test"
	testExpMin    = 60
)

func testManager(t *testing.T) *pkgjwt.Manager {
	t.Helper()
	m, err := pkgjwt.NewManager(testJWTSecret, testIssuer, testExpMin)
	require.NoError(t, err)
	return m
}

// buildTestApp wires a minimal Fiber app with AuthMiddleware, RequireRole
// and a dummy handler that returns 200 when both pass.
func buildTestApp(t *testing.T, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testManager(t)),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := testManager(t).Generate(testUserID, role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminReachesAdminRoute(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_StaffBlockedOnAdminRoute(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, tokenForRole(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenWithoutRoleIsRejected(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRole_MissingAuthHeaderIsRejected(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_MalformedTokenIsRejected(t *testing.T) {
	app := buildTestApp(t, "admin")
	resp := doRequest(t, app, "Bearer not.a.token")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware claim extraction
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractsClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testManager(t)), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "staff"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "staff", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT manager round trip
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	m := testManager(t)
	tok, err := m.Generate(testUserID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "admin", role)
}

func TestJWT_ExpiredTokenFails(t *testing.T) {
	m, err := pkgjwt.NewManager(testJWTSecret, testIssuer, -1)
	require.NoError(t, err)
	tok, err := m.Generate(testUserID, "admin")
	require.NoError(t, err)

	_, _, err = m.Parse(tok)
	assert.Error(t, err)
}

func TestJWT_WrongSecretFails(t *testing.T) {
	tok, err := testManager(t).Generate(testUserID, "admin")
	require.NoError(t, err)

	other, err := pkgjwt.NewManager("a-completely-different-secret", testIssuer, testExpMin)
	require.NoError(t, err)
	_, _, err = other.Parse(tok)
	assert.Error(t, err)
}
