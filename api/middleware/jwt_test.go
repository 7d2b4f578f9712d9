package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdeck/proofdeck-api/common"
	"github.com/proofdeck/proofdeck-api/common/util"
	"github.com/proofdeck/proofdeck-api/type/response"
	"github.com/proofdeck/proofdeck-api/type/shared"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	secret := "unit-test-secret"
	common.Config = &shared.Config{JWTSecret: &secret}

	app := fiber.New()
	app.Use(Jwt())
	app.Get("/me", func(c *fiber.Ctx) error {
		userId, ok := GetUserFromContext(c)
		if !ok {
			return response.SendError(c, "Failed to read user")
		}
		return response.SendSuccess(c, "ok", fiber.Map{"user_id": userId})
	})
	return app
}

func TestJwtAcceptsMintedToken(t *testing.T) {
	app := testApp(t)

	token, err := util.GenerateAuthToken("issuer-1")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "issuer-1")
}

func TestJwtRejectsMissingOrBadToken(t *testing.T) {
	app := testApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}
