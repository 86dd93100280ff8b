package routes

import (
	"yt-media-api/pkg"

	"github.com/gofiber/fiber/v2"
)

// Comprueba si hay un cookies.txt para el extractor
func (h *Handler) GetCookiesInfo(c *fiber.Ctx) error {
	info, err := pkg.CheckCookiesFile(h.CookiesPath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	return c.JSON(info)
}
