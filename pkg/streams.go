package pkg

import (
	"strconv"
	"strings"

	"yt-media-api/models"
)

// StreamFilter selecciona streams. Los campos vacios no filtran.
type StreamFilter struct {
	FileExtension string
	OnlyVideo     bool
	OnlyAudio     bool
	Resolution    string
}

func (f StreamFilter) match(s models.Stream) bool {
	if f.FileExtension != "" && s.Subtype != f.FileExtension {
		return false
	}
	if f.OnlyVideo && !(s.IsAdaptive() && s.HasVideo) {
		return false
	}
	if f.OnlyAudio && !(s.IsAdaptive() && s.HasAudio) {
		return false
	}
	if f.Resolution != "" && s.Resolution != f.Resolution {
		return false
	}
	return true
}

// Filter devuelve los streams que cumplen el filtro, en el orden original
func Filter(streams []models.Stream, f StreamFilter) []models.Stream {
	var res []models.Stream
	for _, s := range streams {
		if f.match(s) {
			res = append(res, s)
		}
	}
	return res
}

// First devuelve el primer stream que cumple el filtro
func First(streams []models.Stream, f StreamFilter) (models.Stream, bool) {
	for _, s := range streams {
		if f.match(s) {
			return s, true
		}
	}
	return models.Stream{}, false
}

// Highest devuelve el stream con mayor resolucion; a igual resolucion gana el primero
func Highest(streams []models.Stream, f StreamFilter) (models.Stream, bool) {
	var best models.Stream
	found := false
	for _, s := range streams {
		if !f.match(s) {
			continue
		}
		if !found || ResolutionHeight(s.Resolution) > ResolutionHeight(best.Resolution) {
			best = s
			found = true
		}
	}
	return best, found
}

// Resolutions lista las resoluciones de los streams mp4 solo video, sin repetir
func Resolutions(streams []models.Stream) []string {
	res := []string{}
	seen := map[string]bool{}
	for _, s := range Filter(streams, StreamFilter{FileExtension: "mp4", OnlyVideo: true}) {
		if s.Resolution == "" || seen[s.Resolution] {
			continue
		}
		seen[s.Resolution] = true
		res = append(res, s.Resolution)
	}
	return res
}

// NormalizeResolution quita el sufijo de fps o HDR de la etiqueta de calidad:
// "1080p60 HDR" -> "1080p"
func NormalizeResolution(label string) string {
	label = strings.TrimSpace(label)
	idx := strings.IndexByte(label, 'p')
	if idx <= 0 {
		return ""
	}
	if _, err := strconv.Atoi(label[:idx]); err != nil {
		return ""
	}
	return label[:idx+1]
}

// ResolutionHeight devuelve la altura en pixeles de "720p", 0 si no se reconoce
func ResolutionHeight(resolution string) int {
	h, err := strconv.Atoi(strings.TrimSuffix(resolution, "p"))
	if err != nil {
		return 0
	}
	return h
}

// MimeSubtype extrae la extension de un mime type: "video/mp4; codecs=..." -> "mp4"
func MimeSubtype(mimeType string) string {
	mt := mimeType
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	if i := strings.IndexByte(mt, '/'); i >= 0 {
		mt = mt[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
