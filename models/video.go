package models

import "time"

// VideoInfo es lo que devuelve el extractor para un video concreto
type VideoInfo struct {
	ID          string
	Title       string
	Author      string
	ChannelID   string
	Description string
	Keywords    []string
	Thumbnail   string
	PublishDate time.Time
	Duration    time.Duration
	Views       int
	Captions    []string
	Streams     []Stream
}

// Stream describe un formato (itag) disponible para el video
type Stream struct {
	Itag          int    `json:"itag"`
	MimeType      string `json:"mime_type"`
	Subtype       string `json:"subtype"` // extension del fichero: mp4, webm...
	HasVideo      bool   `json:"has_video"`
	HasAudio      bool   `json:"has_audio"`
	Resolution    string `json:"resolution,omitempty"`
	FPS           int    `json:"fps,omitempty"`
	Bitrate       int    `json:"bitrate,omitempty"`
	ContentLength int64  `json:"content_length,omitempty"`
	AudioChannels int    `json:"audio_channels,omitempty"`
}

// IsAdaptive indica si el stream solo lleva video o solo audio
func (s Stream) IsAdaptive() bool {
	return s.HasVideo != s.HasAudio
}
