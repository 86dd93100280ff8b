package pkg

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"yt-media-api/models"
)

const (
	DefaultWhisperModel  = "base"
	DefaultWhisperDevice = "cpu"
)

// WhisperConfig agrupa los ajustes del CLI de whisper
type WhisperConfig struct {
	Path   string
	Model  string
	Device string
}

// Transcriber transcribe audio con el CLI de whisper
type Transcriber struct {
	cfg    WhisperConfig
	runner CommandRunner
}

func NewTranscriber(cfg WhisperConfig) *Transcriber {
	if cfg.Path == "" {
		cfg.Path = "whisper"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultWhisperModel
	}
	if cfg.Device == "" {
		cfg.Device = DefaultWhisperDevice
	}
	return &Transcriber{cfg: cfg, runner: execRunner}
}

// WithCommandRunner cambia el ejecutor de comandos (tests)
func (t *Transcriber) WithCommandRunner(runner CommandRunner) *Transcriber {
	t.runner = runner
	return t
}

func (t *Transcriber) Model() string {
	return t.cfg.Model
}

// whisperOutput es el JSON que escribe whisper con --output_format json
type whisperOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe ejecuta whisper sobre source y devuelve el texto. language puede
// ir vacio para que whisper lo detecte.
func (t *Transcriber) Transcribe(ctx context.Context, source, outputDir, language string) (models.Transcript, error) {
	var result models.Transcript
	if source == "" {
		return result, errors.New("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, errors.Wrap(err, "transcribe: ensure output dir")
	}

	args := t.buildArgs(source, outputDir, language)
	if output, err := t.runner(ctx, t.cfg.Path, args...); err != nil {
		return result, errors.Errorf("whisper: %v: %s", err, strings.TrimSpace(string(output)))
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	data, err := os.ReadFile(filepath.Join(outputDir, base+".json"))
	if err != nil {
		return result, errors.Wrap(err, "whisper: read output")
	}
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return result, errors.Wrap(err, "whisper: decode output")
	}

	result.Language = out.Language
	if result.Language == "" {
		result.Language = language
	}
	result.Text = strings.TrimSpace(out.Text)
	result.Segments = make([]models.TranscriptSegment, 0, len(out.Segments))
	for _, s := range out.Segments {
		result.Segments = append(result.Segments, models.TranscriptSegment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return result, nil
}

func (t *Transcriber) buildArgs(source, outputDir, language string) []string {
	args := []string{
		source,
		"--model", t.cfg.Model,
		"--device", t.cfg.Device,
		"--output_dir", outputDir,
		"--output_format", "json",
		"--verbose", "False",
	}
	if t.cfg.Device == DefaultWhisperDevice {
		args = append(args, "--fp16", "False")
	}
	if lang := strings.TrimSpace(language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}
