package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/proofdeck/proofdeck-api/type/shared"
)

// GetUserFromContext extracts the issuer id placed in the request
// context by the Jwt middleware.
func GetUserFromContext(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals("auth").(*jwt.Token)
	if !ok {
		return "", false
	}

	claims, ok := token.Claims.(*shared.UserClaims)
	if !ok || claims.UserId == nil || *claims.UserId == "" {
		return "", false
	}
	return *claims.UserId, true
}
