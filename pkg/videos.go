package pkg

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

var (
	videoIDRegex     = regexp.MustCompile(`(?:v=|/embed/|/shorts/|/v/|/e/|youtu\.be/)([0-9A-Za-z_-]{11})`)
	bareVideoIDRegex = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// DecodeURL decodifica el parametro url recibido por query. Muchos clientes lo
// mandan doblemente codificado, asi que se decodifica una vez mas. Un escape
// invalido deja el valor tal cual.
func DecodeURL(raw string) (string, error) {
	decoded := strings.TrimSpace(raw)
	if unescaped, err := url.PathUnescape(decoded); err == nil {
		decoded = strings.TrimSpace(unescaped)
	}
	if decoded == "" {
		return "", ErrInvalidURL
	}
	return decoded, nil
}

// Comprueba que la URL es válida
func IsUrl(str string) bool {
	u, err := url.Parse(str)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Obtener el ID del video, acepta tambien un ID suelto
func GetYoutubeVideoID(videoURL string) string {
	if bareVideoIDRegex.MatchString(videoURL) {
		return videoURL
	}
	matches := videoIDRegex.FindStringSubmatch(videoURL)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// ChannelURL construye la URL publica de un canal
func ChannelURL(channelID string) string {
	if channelID == "" {
		return ""
	}
	return "https://www.youtube.com/channel/" + channelID
}

// SafeFilename convierte el titulo en un nombre de fichero: espacios a "_" y
// sin separadores de ruta ni caracteres de control
func SafeFilename(title, ext string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r == '/' || r == '\\' || r == '"' || r == ':' || r == '*' || r == '?' || r == '<' || r == '>' || r == '|':
			continue
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	name := strings.Trim(b.String(), ".")
	if name == "" {
		name = "video"
	}
	return name + "." + ext
}
