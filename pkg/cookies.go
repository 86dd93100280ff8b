package pkg

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type CookiesInfo struct {
	Exists       bool      `json:"exists"`
	SizeBytes    int64     `json:"size_bytes,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
	AbsolutePath string    `json:"absolute_path,omitempty"`
}

func CheckCookiesFile(path string) (*CookiesInfo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo ruta absoluta: %w", err)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &CookiesInfo{
			Exists: false,
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("error accediendo al archivo: %w", err)
	}

	return &CookiesInfo{
		Exists:       true,
		SizeBytes:    info.Size(),
		LastModified: info.ModTime(),
		AbsolutePath: absPath,
	}, nil
}

// ParseNetscape lee un cookies.txt en formato Netscape:
// domain flag path secure expiration name value
func ParseNetscape(r io.Reader) ([]*http.Cookie, error) {
	var cookies []*http.Cookie
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Las cookies HttpOnly vienen con este prefijo
		line = strings.TrimPrefix(line, "#HttpOnly_")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 7 {
			continue
		}
		expires, _ := strconv.ParseInt(parts[4], 10, 64)
		c := &http.Cookie{
			Domain: parts[0],
			Path:   parts[2],
			Secure: strings.EqualFold(parts[3], "TRUE"),
			Name:   parts[5],
			Value:  parts[6],
		}
		if expires > 0 {
			c.Expires = time.Unix(expires, 0)
		}
		cookies = append(cookies, c)
	}
	return cookies, scanner.Err()
}

// LoadCookieJar carga el cookies.txt en un jar. Si el fichero no existe
// devuelve nil sin error.
func LoadCookieJar(path string) (http.CookieJar, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error abriendo cookies: %w", err)
	}
	defer f.Close()

	cookies, err := ParseNetscape(f)
	if err != nil {
		return nil, fmt.Errorf("error leyendo cookies: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	// El jar agrupa por host
	byHost := map[string][]*http.Cookie{}
	for _, c := range cookies {
		host := strings.TrimPrefix(c.Domain, ".")
		byHost[host] = append(byHost[host], c)
	}
	for host, cs := range byHost {
		jar.SetCookies(&url.URL{Scheme: "https", Host: host, Path: "/"}, cs)
	}
	return jar, nil
}
