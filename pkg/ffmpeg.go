package pkg

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// CommandRunner ejecuta un binario externo y devuelve stdout+stderr
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

// Muxer envuelve el binario de ffmpeg
type Muxer struct {
	Path   string
	runner CommandRunner
}

// NewMuxer crea el muxer. Si path esta vacio se busca "ffmpeg" en el PATH.
func NewMuxer(path string) *Muxer {
	if path == "" {
		path = "ffmpeg"
	}
	return &Muxer{Path: path, runner: execRunner}
}

// WithCommandRunner cambia el ejecutor de comandos (tests)
func (m *Muxer) WithCommandRunner(runner CommandRunner) *Muxer {
	m.runner = runner
	return m
}

// Available comprueba si ffmpeg se puede ejecutar
func (m *Muxer) Available() bool {
	_, err := exec.LookPath(m.Path)
	return err == nil
}

// Merge une la pista de video y la de audio en outputPath. El video se copia
// tal cual y el audio se recodifica a AAC.
func (m *Muxer) Merge(ctx context.Context, videoPath, audioPath, outputPath string) error {
	if err := m.run(ctx, mergeArgs(videoPath, audioPath, outputPath)); err != nil {
		return errors.Wrap(err, "ffmpeg merge")
	}
	if _, err := os.Stat(outputPath); err != nil {
		return errors.Wrapf(ErrMergedOutputMissing, "%s", outputPath)
	}
	return nil
}

// ExtractAudio genera un WAV mono a 16kHz, que es lo que espera whisper
func (m *Muxer) ExtractAudio(ctx context.Context, source, dest string) error {
	if err := m.run(ctx, extractAudioArgs(source, dest)); err != nil {
		return errors.Wrap(err, "ffmpeg extract audio")
	}
	return nil
}

func (m *Muxer) run(ctx context.Context, args []string) error {
	output, err := m.runner(ctx, m.Path, args...)
	if err != nil {
		return errors.Errorf("%s: %v: %s", m.Path, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func mergeArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-strict", "experimental",
		"-y", outputPath,
	}
}

func extractAudioArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}
