package pkg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kkdai/youtube/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"yt-media-api/models"
)

// Extractor obtiene la informacion de un video y sus streams
type Extractor interface {
	Fetch(ctx context.Context, videoURL string) (*YoutubeVideo, error)
}

// StreamOpener abre el contenido de un stream concreto
type StreamOpener func(ctx context.Context, s models.Stream) (io.ReadCloser, int64, error)

// YoutubeVideo une la informacion del video con la forma de descargar sus streams
type YoutubeVideo struct {
	models.VideoInfo
	open StreamOpener
}

func NewYoutubeVideo(info models.VideoInfo, open StreamOpener) *YoutubeVideo {
	return &YoutubeVideo{VideoInfo: info, open: open}
}

// Download guarda el stream en dest y devuelve los bytes escritos
func (v *YoutubeVideo) Download(ctx context.Context, s models.Stream, dest string) (int64, error) {
	if v.open == nil {
		return 0, errors.Wrapf(ErrStreamNotFound, "itag %d", s.Itag)
	}
	rc, _, err := v.open(ctx, s)
	if err != nil {
		return 0, errors.Wrapf(err, "open stream itag %d", s.Itag)
	}
	defer rc.Close()

	f, err := os.Create(dest)
	if err != nil {
		return 0, errors.Wrapf(err, "create %s", dest)
	}
	n, err := io.Copy(f, rc)
	if err != nil {
		f.Close()
		return n, errors.Wrapf(err, "download itag %d", s.Itag)
	}
	if err := f.Close(); err != nil {
		return n, errors.Wrapf(err, "close %s", dest)
	}
	log.WithFields(log.Fields{
		"video_id": v.ID,
		"itag":     s.Itag,
		"size":     humanize.Bytes(uint64(n)),
	}).Debug("stream downloaded")
	return n, nil
}

// YoutubeExtractor implementa Extractor con github.com/kkdai/youtube
type YoutubeExtractor struct {
	httpClient *http.Client
}

// NewYoutubeExtractor crea el extractor. httpClient puede ser nil; si lleva
// cookie jar se usa la sesion de las cookies.
func NewYoutubeExtractor(httpClient *http.Client) *YoutubeExtractor {
	return &YoutubeExtractor{httpClient: httpClient}
}

// Fetch usa un youtube.Client nuevo en cada peticion: la libreria cambia el
// cliente innertube al de embed tras un video con login y no lo restaura.
func (e *YoutubeExtractor) Fetch(ctx context.Context, videoURL string) (*YoutubeVideo, error) {
	client := &youtube.Client{HTTPClient: e.httpClient}
	video, err := client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return nil, MapExtractorError(err)
	}

	info := models.VideoInfo{
		ID:          video.ID,
		Title:       video.Title,
		Author:      video.Author,
		ChannelID:   video.ChannelID,
		Description: video.Description,
		Keywords:    []string{},
		PublishDate: video.PublishDate,
		Duration:    video.Duration,
		Views:       video.Views,
	}

	// La miniatura mas grande
	best := -1
	for i, t := range video.Thumbnails {
		if best < 0 || t.Width >= video.Thumbnails[best].Width {
			best = i
			info.Thumbnail = t.URL
		}
	}

	for _, c := range video.CaptionTracks {
		info.Captions = append(info.Captions, c.Name.SimpleText)
	}

	for _, f := range video.Formats {
		info.Streams = append(info.Streams, toStream(f))
	}

	open := func(ctx context.Context, s models.Stream) (io.ReadCloser, int64, error) {
		for i := range video.Formats {
			if video.Formats[i].ItagNo == s.Itag {
				return client.GetStreamContext(ctx, video, &video.Formats[i])
			}
		}
		return nil, 0, errors.Wrapf(ErrStreamNotFound, "itag %d", s.Itag)
	}

	return NewYoutubeVideo(info, open), nil
}

func toStream(f youtube.Format) models.Stream {
	mime := strings.ToLower(f.MimeType)
	s := models.Stream{
		Itag:          f.ItagNo,
		MimeType:      f.MimeType,
		Subtype:       MimeSubtype(f.MimeType),
		HasVideo:      strings.HasPrefix(mime, "video/"),
		HasAudio:      strings.HasPrefix(mime, "audio/") || f.AudioChannels > 0,
		FPS:           f.FPS,
		Bitrate:       f.Bitrate,
		ContentLength: f.ContentLength,
		AudioChannels: f.AudioChannels,
	}
	if s.HasVideo {
		s.Resolution = NormalizeResolution(f.QualityLabel)
	}
	return s
}

// MapExtractorError traduce los errores de la libreria a los errores del paquete
// Usa fmt.Errorf con dos %w para que errors.Is vea el sentinel y el error original.
func MapExtractorError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength):
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	case errors.Is(err, youtube.ErrLoginRequired):
		return fmt.Errorf("%w: %w", ErrAgeRestricted, err)
	case errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrNotPlayableInEmbed):
		return fmt.Errorf("%w: %w", ErrVideoUnavailable, err)
	}

	var playability *youtube.ErrPlayabiltyStatus
	if errors.As(err, &playability) {
		switch playability.Status {
		case "LOGIN_REQUIRED", "AGE_CHECK_REQUIRED", "AGE_VERIFICATION_REQUIRED", "CONTENT_CHECK_REQUIRED":
			return fmt.Errorf("%w: %w", ErrAgeRestricted, err)
		default:
			return fmt.Errorf("%w: %w", ErrVideoUnavailable, err)
		}
	}

	var status youtube.ErrUnexpectedStatusCode
	if errors.As(err, &status) && status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrVideoUnavailable, err)
	}

	return fmt.Errorf("%w: %w", ErrExtraction, err)
}
