package models

// VideoMetadata es la respuesta de GET /youtube/video/metadata
type VideoMetadata struct {
	Author      string   `json:"author"`
	ChannelURL  string   `json:"channel_url"`
	ChannelID   string   `json:"channel_id"`
	Title       string   `json:"title"`
	Thumbnail   string   `json:"thumbnail"`
	Description *string  `json:"description"`
	Keywords    []string `json:"keywords"`
	Resolutions []string `json:"resolutions"`
	PublishDate *string  `json:"publish_date"`
	Length      int      `json:"length"`
	Rating      *float64 `json:"rating"`
	Views       int      `json:"views"`
	Captions    []string `json:"captions"`
}

// Transcript es la respuesta de GET /youtube/video/transcribe
type Transcript struct {
	VideoID  string              `json:"video_id"`
	Title    string              `json:"title"`
	Language string              `json:"language"`
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
}

type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
