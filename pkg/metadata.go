package pkg

import (
	"strings"

	"yt-media-api/models"
)

// BuildMetadata arma la respuesta de metadatos a partir de lo que da el extractor
func BuildMetadata(info models.VideoInfo) models.VideoMetadata {
	meta := models.VideoMetadata{
		Author:      info.Author,
		ChannelURL:  ChannelURL(info.ChannelID),
		ChannelID:   info.ChannelID,
		Title:       info.Title,
		Thumbnail:   info.Thumbnail,
		Keywords:    info.Keywords,
		Resolutions: Resolutions(info.Streams),
		Length:      int(info.Duration.Seconds()),
		Views:       info.Views,
	}
	if meta.Keywords == nil {
		meta.Keywords = []string{}
	}
	if info.Description != "" {
		desc := strings.ReplaceAll(info.Description, "\n", "")
		meta.Description = &desc
	}
	if !info.PublishDate.IsZero() {
		date := info.PublishDate.Format("2006-01-02")
		meta.PublishDate = &date
	}
	if len(info.Captions) > 0 {
		meta.Captions = info.Captions
	}
	return meta
}
