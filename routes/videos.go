package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"yt-media-api/models"
	"yt-media-api/pkg"
)

// fetchVideo decodifica el parametro url y consulta el extractor
func (h *Handler) fetchVideo(ctx context.Context, c *fiber.Ctx) (string, *pkg.YoutubeVideo, error) {
	videoURL, err := pkg.DecodeURL(c.Query("url"))
	if err != nil {
		return "", nil, err
	}
	// Ni URL ni ID de video: no hace falta preguntar al extractor
	if !pkg.IsUrl(videoURL) && pkg.GetYoutubeVideoID(videoURL) == "" {
		return videoURL, nil, pkg.ErrInvalidURL
	}
	video, err := h.Extractor.Fetch(ctx, videoURL)
	if err != nil {
		return videoURL, nil, err
	}
	return videoURL, video, nil
}

// GetVideoMetadata devuelve los metadatos del video y sus resoluciones mp4
func (h *Handler) GetVideoMetadata(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c.UserContext())
	defer cancel()

	videoURL, video, err := h.fetchVideo(ctx, c)
	if err != nil {
		return sendError(c, err, videoURL)
	}
	return c.JSON(pkg.BuildMetadata(video.VideoInfo))
}

// DownloadVideo descarga las pistas de video y audio, las une con ffmpeg y
// devuelve el mp4. El workspace se borra despues de enviar la respuesta.
func (h *Handler) DownloadVideo(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c.UserContext())
	defer cancel()

	videoURL, video, err := h.fetchVideo(ctx, c)
	if err != nil {
		return sendError(c, err, videoURL)
	}

	// Sin res se elige la mayor resolucion disponible
	res := c.Query("res")
	videoFilter := pkg.StreamFilter{FileExtension: "mp4", OnlyVideo: true, Resolution: res}
	var videoStream models.Stream
	var ok bool
	if res == "" {
		videoStream, ok = pkg.Highest(video.Streams, videoFilter)
	} else {
		videoStream, ok = pkg.First(video.Streams, videoFilter)
	}
	if !ok {
		return sendDetail(c, http.StatusNotFound, msgVideoNotFound)
	}
	audioStream, ok := pkg.First(video.Streams, pkg.StreamFilter{FileExtension: "mp4", OnlyAudio: true})
	if !ok {
		return sendDetail(c, http.StatusNotFound, msgAudioNotFound)
	}

	t := h.track(c, video, models.KindVideo, videoStream.Resolution)

	ws, err := pkg.NewWorkspace(h.TempDir)
	if err != nil {
		t.done(err)
		return sendError(c, err, videoURL)
	}
	sent := false
	defer func() {
		if !sent {
			ws.Remove()
		}
	}()

	videoPath, audioPath, outputPath := ws.Path("video.mp4"), ws.Path("audio.mp4"), ws.Path("output.mp4")
	if _, err := video.Download(ctx, videoStream, videoPath); err != nil {
		t.done(err)
		log.WithError(err).WithField("video_id", video.ID).Error("video stream download failed")
		return sendDetail(c, http.StatusInternalServerError, msgDownloadFailed)
	}
	if _, err := video.Download(ctx, audioStream, audioPath); err != nil {
		t.done(err)
		log.WithError(err).WithField("video_id", video.ID).Error("audio stream download failed")
		return sendDetail(c, http.StatusInternalServerError, msgDownloadFailed)
	}

	if err := h.Muxer.Merge(ctx, videoPath, audioPath, outputPath); err != nil {
		t.done(err)
		log.WithError(err).WithField("video_id", video.ID).Error("merge failed")
		if errors.Is(err, pkg.ErrMergedOutputMissing) {
			return sendDetail(c, http.StatusInternalServerError, msgMergedMissing)
		}
		return sendDetail(c, http.StatusInternalServerError, msgMergeFailed)
	}

	file, size, err := ws.Open("output.mp4")
	if err != nil {
		t.done(err)
		return sendDetail(c, http.StatusInternalServerError, msgMergedMissing)
	}
	t.done(nil)

	sent = true
	c.Attachment(pkg.SafeFilename(video.Title, "mp4"))
	c.Set(fiber.HeaderContentType, "video/mp4")
	return c.SendStream(file, int(size))
}

// DownloadAudio devuelve la primera pista de audio mp4 del video
func (h *Handler) DownloadAudio(c *fiber.Ctx) error {
	ctx, cancel := h.requestContext(c.UserContext())
	defer cancel()

	videoURL, video, err := h.fetchVideo(ctx, c)
	if err != nil {
		return sendError(c, err, videoURL)
	}

	audioStream, ok := pkg.First(video.Streams, pkg.StreamFilter{FileExtension: "mp4", OnlyAudio: true})
	if !ok {
		return sendDetail(c, http.StatusNotFound, msgAudioNotFound)
	}

	t := h.track(c, video, models.KindAudio, "")

	ws, err := pkg.NewWorkspace(h.TempDir)
	if err != nil {
		t.done(err)
		return sendError(c, err, videoURL)
	}
	sent := false
	defer func() {
		if !sent {
			ws.Remove()
		}
	}()

	if _, err := video.Download(ctx, audioStream, ws.Path("audio.m4a")); err != nil {
		t.done(err)
		log.WithError(err).WithField("video_id", video.ID).Error("audio stream download failed")
		return sendDetail(c, http.StatusInternalServerError, msgDownloadFailed)
	}

	file, size, err := ws.Open("audio.m4a")
	if err != nil {
		t.done(err)
		return sendError(c, err, videoURL)
	}
	t.done(nil)

	sent = true
	c.Attachment(pkg.SafeFilename(video.Title, "m4a"))
	c.Set(fiber.HeaderContentType, "audio/mp4")
	return c.SendStream(file, int(size))
}

// TranscribeVideo descarga el audio, lo pasa a WAV y lo transcribe con whisper
func (h *Handler) TranscribeVideo(c *fiber.Ctx) error {
	if h.Transcriber == nil {
		return sendDetail(c, http.StatusNotImplemented, msgTranscribeOff)
	}

	ctx, cancel := h.requestContext(c.UserContext())
	defer cancel()

	videoURL, video, err := h.fetchVideo(ctx, c)
	if err != nil {
		return sendError(c, err, videoURL)
	}

	// Vale cualquier contenedor, ffmpeg lo convierte despues
	audioStream, ok := pkg.First(video.Streams, pkg.StreamFilter{FileExtension: "mp4", OnlyAudio: true})
	if !ok {
		audioStream, ok = pkg.First(video.Streams, pkg.StreamFilter{OnlyAudio: true})
	}
	if !ok {
		return sendDetail(c, http.StatusNotFound, msgAudioNotFound)
	}

	t := h.track(c, video, models.KindTranscript, "")

	ws, err := pkg.NewWorkspace(h.TempDir)
	if err != nil {
		t.done(err)
		return sendError(c, err, videoURL)
	}
	defer ws.Remove()

	audioPath := ws.Path("audio." + audioStream.Subtype)
	if _, err := video.Download(ctx, audioStream, audioPath); err != nil {
		t.done(err)
		log.WithError(err).WithField("video_id", video.ID).Error("audio stream download failed")
		return sendDetail(c, http.StatusInternalServerError, msgDownloadFailed)
	}

	wavPath := ws.Path("audio.wav")
	if err := h.Muxer.ExtractAudio(ctx, audioPath, wavPath); err != nil {
		t.done(err)
		log.WithError(err).WithField("video_id", video.ID).Error("audio extraction failed")
		return sendDetail(c, http.StatusInternalServerError, msgTranscribeFailed)
	}

	transcript, err := h.Transcriber.Transcribe(ctx, wavPath, ws.Dir, c.Query("language"))
	if err != nil {
		t.done(err)
		log.WithError(err).WithField("video_id", video.ID).Error("transcription failed")
		return sendDetail(c, http.StatusInternalServerError, msgTranscribeFailed)
	}
	t.done(nil)

	transcript.VideoID = video.ID
	transcript.Title = video.Title
	log.WithFields(log.Fields{
		"video_id": video.ID,
		"model":    h.Transcriber.Model(),
		"segments": len(transcript.Segments),
	}).Info("video transcribed")
	return c.JSON(transcript)
}
