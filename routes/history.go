package routes

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"yt-media-api/models"
	"yt-media-api/pkg"
)

// GetHistory obtiene las ultimas descargas y transcripciones
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	if h.History == nil {
		return c.JSON([]models.RequestRecord{})
	}
	records, err := h.History.List(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		log.WithError(err).Error("failed to list history")
		return sendDetail(c, http.StatusInternalServerError, msgHistoryFailed)
	}
	return c.JSON(records)
}

// tracker registra una peticion en el historial. Un fallo del historial nunca
// hace fallar la peticion.
type tracker struct {
	history History
	id      int64
}

func (h *Handler) track(c *fiber.Ctx, video *pkg.YoutubeVideo, kind, resolution string) *tracker {
	t := &tracker{history: h.History}
	if h.History == nil {
		return t
	}
	id, err := h.History.Start(context.Background(), models.RequestRecord{
		VideoID:       video.ID,
		Title:         video.Title,
		Kind:          kind,
		Resolution:    resolution,
		RequestedByIP: c.IP(),
	})
	if err != nil {
		log.WithError(err).WithField("video_id", video.ID).Warn("failed to record request")
		t.history = nil
		return t
	}
	t.id = id
	return t
}

func (t *tracker) done(err error) {
	if t.history == nil {
		return
	}
	status, msg := models.Completed, ""
	if err != nil {
		status, msg = models.Failed, err.Error()
	}
	if ferr := t.history.Finish(context.Background(), t.id, status, msg); ferr != nil {
		log.WithError(ferr).WithField("id", t.id).Warn("failed to update request")
	}
}
