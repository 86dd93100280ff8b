package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	PortFlag                 = "port"
	ProductionFlag           = "production"
	LogLevelFlag             = "log-level"
	FFmpegPathFlag           = "ffmpeg-path"
	TempDirFlag              = "temp-dir"
	TempMaxAgeFlag           = "temp-max-age"
	TempSweepFlag            = "temp-sweep"
	DBPathFlag               = "db-path"
	CookiesPathFlag          = "cookies-path"
	TranscriptionEnabledFlag = "transcription-enabled"
	WhisperPathFlag          = "whisper-path"
	WhisperModelFlag         = "whisper-model"
	WhisperDeviceFlag        = "whisper-device"
	RequestTimeoutFlag       = "request-timeout"
)

type Config struct {
	Port                 string
	Production           bool
	LogLevel             string
	FFmpegPath           string
	TempDir              string
	TempMaxAge           time.Duration
	TempSweep            time.Duration
	DBPath               string
	CookiesPath          string
	TranscriptionEnabled bool
	WhisperPath          string
	WhisperModel         string
	WhisperDevice        string
	RequestTimeout       time.Duration
}

// LoadEnv carga el .env si existe, antes de que cli lea las variables
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("error loading .env file")
	}
}

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   PortFlag,
			Usage:  "http listen port",
			Value:  "3000",
			EnvVar: "PORT",
		},
		cli.BoolFlag{
			Name:   ProductionFlag,
			Usage:  "production mode (json logs, tables are not recreated)",
			EnvVar: "PRODUCTION",
		},
		cli.StringFlag{
			Name:   LogLevelFlag,
			Usage:  "log level",
			Value:  "info",
			EnvVar: "LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   FFmpegPathFlag,
			Usage:  "ffmpeg binary",
			Value:  "ffmpeg",
			EnvVar: "FFMPEG_PATH",
		},
		cli.StringFlag{
			Name:   TempDirFlag,
			Usage:  "directory for per-request workspaces",
			Value:  filepath.Join(os.TempDir(), "yt-media-api"),
			EnvVar: "TEMP_DIR",
		},
		cli.DurationFlag{
			Name:   TempMaxAgeFlag,
			Usage:  "workspaces older than this are removed by the janitor",
			Value:  time.Hour,
			EnvVar: "TEMP_MAX_AGE",
		},
		cli.DurationFlag{
			Name:   TempSweepFlag,
			Usage:  "janitor interval",
			Value:  10 * time.Minute,
			EnvVar: "TEMP_SWEEP",
		},
		cli.StringFlag{
			Name:   DBPathFlag,
			Usage:  "sqlite database for the request history",
			Value:  "db/database.db",
			EnvVar: "DB_PATH",
		},
		cli.StringFlag{
			Name:   CookiesPathFlag,
			Usage:  "netscape cookies.txt used by the extractor",
			Value:  "cookies.txt",
			EnvVar: "COOKIES_PATH",
		},
		cli.BoolFlag{
			Name:   TranscriptionEnabledFlag,
			Usage:  "enables /youtube/video/transcribe",
			EnvVar: "TRANSCRIPTION_ENABLED",
		},
		cli.StringFlag{
			Name:   WhisperPathFlag,
			Usage:  "whisper binary",
			Value:  "whisper",
			EnvVar: "WHISPER_PATH",
		},
		cli.StringFlag{
			Name:   WhisperModelFlag,
			Usage:  "whisper model",
			Value:  "base",
			EnvVar: "WHISPER_MODEL",
		},
		cli.StringFlag{
			Name:   WhisperDeviceFlag,
			Usage:  "whisper device (cpu or cuda)",
			Value:  "cpu",
			EnvVar: "WHISPER_DEVICE",
		},
		cli.DurationFlag{
			Name:   RequestTimeoutFlag,
			Usage:  "max time for a download or transcription",
			Value:  10 * time.Minute,
			EnvVar: "REQUEST_TIMEOUT",
		},
	)
}

func LoadConfig(c *cli.Context) Config {
	cfg := Config{
		Port:                 c.String(PortFlag),
		Production:           c.Bool(ProductionFlag),
		LogLevel:             c.String(LogLevelFlag),
		FFmpegPath:           c.String(FFmpegPathFlag),
		TempDir:              c.String(TempDirFlag),
		TempMaxAge:           c.Duration(TempMaxAgeFlag),
		TempSweep:            c.Duration(TempSweepFlag),
		DBPath:               c.String(DBPathFlag),
		CookiesPath:          c.String(CookiesPathFlag),
		TranscriptionEnabled: c.Bool(TranscriptionEnabledFlag),
		WhisperPath:          c.String(WhisperPathFlag),
		WhisperModel:         c.String(WhisperModelFlag),
		WhisperDevice:        c.String(WhisperDeviceFlag),
		RequestTimeout:       c.Duration(RequestTimeoutFlag),
	}
	return cfg.withSafeTempMaxAge()
}

// withSafeTempMaxAge evita que el janitor borre un workspace en uso: una
// peticion puede durar REQUEST_TIMEOUT y despues aun se envia el fichero.
func (cfg Config) withSafeTempMaxAge() Config {
	if cfg.RequestTimeout <= 0 {
		return cfg
	}
	floor := 2 * cfg.RequestTimeout
	if cfg.TempMaxAge < floor {
		log.WithFields(log.Fields{
			"temp_max_age":    cfg.TempMaxAge,
			"request_timeout": cfg.RequestTimeout,
		}).Warnf("temp max age too short, using %s", floor)
		cfg.TempMaxAge = floor
	}
	return cfg
}

// ConfigureLogger ajusta logrus segun el modo
func ConfigureLogger(cfg Config) {
	if cfg.Production {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
