package serverutils

import (
	"time"

	"ai-support-chat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIdMiddleware tags every request with an x-request-id (caller's
// or generated) and logs method, path, status and latency.
func RequestIdMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestId := ctx.Get("x-request-id")
		if requestId == "" {
			requestId = uuid.NewString()
		}
		ctx.Locals("request_id", requestId)

		start := time.Now()
		err := ctx.Next()
		latency := time.Since(start)

		ctx.Set("x-request-id", requestId)
		log.Info("http", "request completed", map[string]interface{}{
			"request_id": requestId,
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": latency.Milliseconds(),
		})
		return err
	}
}
