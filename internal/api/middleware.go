package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/alexisbeaulieu97/calgrid/internal/logger"
)

// RequestLogger logs one line per request once the handler chain has finished.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = errorStatus(err)
		}
		log.Request(c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
