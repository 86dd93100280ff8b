package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"yt-media-api/middleware"
)

// NewApp crea la aplicacion fiber con todas las rutas
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "yt-media-api",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger)
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin,Content-Type,Accept,Content-Length,Accept-Language,Accept-Encoding,Connection,Access-Control-Allow-Origin",
		AllowOrigins: "*",
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	app.Get("/", GetRoot)

	// Status e historial
	api := app.Group("/api")
	api.Get("/status", h.GetStatus)
	api.Get("/videos", h.GetHistory)
	api.Get("/cookies", h.GetCookiesInfo)

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             YOUTUBE                               |
	|                                                                   |
	------------------------------------------------------------------- */
	youtube := app.Group("/youtube")
	youtube.Get("/video/metadata", h.GetVideoMetadata)  // Metadatos y resoluciones disponibles
	youtube.Get("/video/download", h.DownloadVideo)     // Video + audio unidos con ffmpeg
	youtube.Get("/audio/download", h.DownloadAudio)     // Solo la pista de audio
	youtube.Get("/video/transcribe", h.TranscribeVideo) // Transcripcion con whisper

	return app
}
