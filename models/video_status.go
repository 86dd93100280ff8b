package models

// RequestRecord es una fila del historial de descargas y transcripciones
type RequestRecord struct {
	ID            int64  `json:"id"`
	VideoID       string `json:"video_id"`
	Title         string `json:"title"`
	Kind          string `json:"kind"`
	Resolution    string `json:"resolution"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
	RequestedByIP string `json:"requested_by_ip"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

const (
	Processing = "processing"
	Completed  = "completed"
	Failed     = "failed"
)

const (
	KindVideo      = "video"
	KindAudio      = "audio"
	KindTranscript = "transcript"
)
