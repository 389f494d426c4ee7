package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

// RequestID: X-Request-ID + timeout guard (selaras dengan statement_timeout DB).
func RequestID(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if dur := time.Since(start); dur > time.Second {
			log.Printf("[WARN] slow request id=%s %s %s dur=%s", id, c.Method(), c.OriginalURL(), dur)
		}
		return err
	}
}
