package middleware

import (
	"crypto/subtle"

	"rental-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireCaller ensures the session is bound to an account. Returns 401 otherwise.
func RequireCaller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetCaller(c); !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// RequireAdminKey guards operator endpoints with the ?key= query parameter.
// An empty configured key disables the endpoint.
func RequireAdminKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Query("key")
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}
