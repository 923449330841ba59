package middleware

import (
	"strings"

	"getwealthos-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// TokenVerifier turns a bearer token into a session user map. Wired from
// the auth package so API clients without a cookie can still authenticate.
type TokenVerifier func(token string) (map[string]interface{}, error)

// RequireAuth ensures a user is present, from the session or from a
// Bearer token when a verifier is configured. Returns 401 with the
// standard error format if not.
func RequireAuth(verify TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil && verify != nil {
			if token := bearerToken(c); token != "" {
				if u, err := verify(token); err == nil {
					c.Locals(userLocal, u)
					user = u
				}
			}
		}
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}
