package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

// RequestLogger registra cada peticion con logrus
func RequestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}

	entry := log.WithFields(log.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"latency":    time.Since(start).String(),
		"ip":         c.IP(),
		"request_id": c.Locals(requestid.ConfigDefault.ContextKey),
	})
	switch {
	case status >= fiber.StatusInternalServerError:
		entry.Error("request")
	case status >= fiber.StatusBadRequest:
		entry.Warn("request")
	default:
		entry.Info("request")
	}
	return err
}
