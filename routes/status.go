package routes

import (
	"github.com/gofiber/fiber/v2"
)

func GetRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"msg": "Hello World",
	})
}

func (h *Handler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"active":        true,
		"ffmpeg":        h.Muxer != nil && h.Muxer.Available(),
		"transcription": h.Transcriber != nil,
	})
}
