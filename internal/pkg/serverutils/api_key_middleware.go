package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// ApiKeyMiddleware protects knowledge base endpoints with a shared key
// sent in the x-api-key header. An empty configured key locks the
// endpoints entirely.
func ApiKeyMiddleware(expected string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		provided := ctx.Get("x-api-key")
		if expected == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Unauthorized"))
		}
		return ctx.Next()
	}
}
