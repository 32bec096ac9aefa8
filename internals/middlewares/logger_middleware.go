package middlewares

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LoggerMiddleware tags every request with an id and logs the outcome.
// Slow requests (>1s) get their own tag so they stand out in the noise.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals("request_id", reqID)
		c.Set("X-Request-ID", reqID)

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		tag := "[REQ]"
		if elapsed > time.Second {
			tag = "[REQ-SLOW]"
		}
		log.Printf("%s %s %s %d %s id=%s", tag, c.Method(), c.Path(), c.Response().StatusCode(), elapsed, reqID)

		return err
	}
}
