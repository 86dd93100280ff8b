package routes

import (
	"context"
	"time"

	"yt-media-api/models"
	"yt-media-api/pkg"
)

// History es lo que las rutas necesitan del historial
type History interface {
	Start(ctx context.Context, rec models.RequestRecord) (int64, error)
	Finish(ctx context.Context, id int64, status string, errMsg string) error
	List(ctx context.Context, limit int) ([]models.RequestRecord, error)
}

// Handler agrupa las dependencias de las rutas
type Handler struct {
	Extractor pkg.Extractor
	Muxer     *pkg.Muxer
	// Transcriber a nil desactiva /youtube/video/transcribe
	Transcriber *pkg.Transcriber
	// History puede ser nil
	History     History
	TempDir     string
	CookiesPath string
	Timeout     time.Duration
}

func (h *Handler) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.Timeout)
}
