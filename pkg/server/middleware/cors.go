package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var defaultAllowMethods = []string{
	fiber.MethodGet,
	fiber.MethodPost,
	fiber.MethodDelete,
	fiber.MethodOptions,
}

type corsMiddleware struct {
	allowOrigins []string
	allowMethods []string
}

// NewCORSMiddleware lets the dashboard call the API from another origin.
func NewCORSMiddleware(allowOrigins []string) Middleware {
	return &corsMiddleware{
		allowOrigins: allowOrigins,
		allowMethods: defaultAllowMethods,
	}
}

func (m *corsMiddleware) allowed(origin string) (string, bool) {
	for _, o := range m.allowOrigins {
		if o == "*" {
			return "*", true
		}
		if strings.EqualFold(o, origin) {
			return origin, true
		}
	}
	return "", false
}

func (m *corsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		allowOrigin, ok := m.allowed(origin)
		if !ok {
			return c.Next()
		}

		c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
		c.Set(fiber.HeaderAccessControlAllowOrigin, allowOrigin)

		if c.Method() == fiber.MethodOptions && c.Get(fiber.HeaderAccessControlRequestMethod) != "" {
			c.Set(fiber.HeaderAccessControlAllowMethods, strings.Join(m.allowMethods, ", "))
			if reqHeaders := c.Get(fiber.HeaderAccessControlRequestHeaders); reqHeaders != "" {
				c.Set(fiber.HeaderAccessControlAllowHeaders, reqHeaders)
			} else {
				c.Set(fiber.HeaderAccessControlAllowHeaders, fiber.HeaderContentType)
			}
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
