package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"yt-media-api/pkg"
)

const (
	msgInvalidURL       = "Invalid video URL."
	msgExtraction       = "An error occurred while processing the video."
	msgUnexpected       = "An unexpected error occurred."
	msgVideoNotFound    = "Video stream not found"
	msgAudioNotFound    = "Audio stream not found"
	msgDownloadFailed   = "Error downloading video or audio stream."
	msgMergeFailed      = "Error merging video and audio streams."
	msgMergedMissing    = "Merged video not found"
	msgTranscribeFailed = "Error transcribing audio."
	msgTranscribeOff    = "Transcription is disabled."
	msgHistoryFailed    = "Error retrieving request history."
)

// errorStatus traduce un error del extractor a codigo HTTP y detalle
func errorStatus(err error, videoURL string) (int, string) {
	switch {
	case errors.Is(err, pkg.ErrInvalidURL):
		return http.StatusBadRequest, msgInvalidURL
	case errors.Is(err, pkg.ErrVideoUnavailable):
		return http.StatusBadRequest, fmt.Sprintf("Video %s is unavailable.", videoURL)
	case errors.Is(err, pkg.ErrAgeRestricted):
		return http.StatusForbidden, fmt.Sprintf("Video %s is age restricted.", videoURL)
	case errors.Is(err, pkg.ErrStreamNotFound):
		return http.StatusNotFound, "Stream not found"
	case errors.Is(err, pkg.ErrExtraction):
		return http.StatusInternalServerError, msgExtraction
	default:
		return http.StatusInternalServerError, msgUnexpected
	}
}

func sendError(c *fiber.Ctx, err error, videoURL string) error {
	status, detail := errorStatus(err, videoURL)
	entry := log.WithError(err).WithFields(log.Fields{
		"url":    videoURL,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	return sendDetail(c, status, detail)
}

func sendDetail(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{
		"detail": detail,
	})
}

// ErrorHandler responde con el mismo formato los errores que llegan a fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	detail := msgUnexpected
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		detail = fe.Message
	} else {
		log.WithError(err).Error("unhandled error")
	}
	return sendDetail(c, status, detail)
}
