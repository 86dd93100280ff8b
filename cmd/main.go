package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"yt-media-api/config"
	"yt-media-api/db"
	"yt-media-api/pkg"
	"yt-media-api/routes"
)

func main() {
	config.LoadEnv()

	app := cli.NewApp()
	app.Name = "yt-media-api"
	app.Usage = "video metadata, download and transcription service"
	app.Version = "0.0.1"

	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Flags:   config.RegisterFlags([]cli.Flag{}),
		Action:  serve,
	}
	cleanCMD := cli.Command{
		Name:   "clean",
		Usage:  "Removes stale temporary workspaces",
		Flags:  config.RegisterFlags([]cli.Flag{}),
		Action: clean,
	}
	app.Commands = []cli.Command{serveCMD, cleanCMD}
	// Sin subcomando se arranca el servidor
	app.Flags = config.RegisterFlags([]cli.Flag{})
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("failed to run app")
	}
}

func serve(c *cli.Context) error {
	cfg := config.LoadConfig(c)
	config.ConfigureLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Iniciar la base de datos
	DB, err := db.InitDB(cfg.DBPath, cfg.Production)
	if err != nil {
		return err
	}
	defer DB.Close()

	// Cookies opcionales para videos que piden sesion
	httpClient := &http.Client{}
	jar, err := pkg.LoadCookieJar(cfg.CookiesPath)
	if err != nil {
		log.WithError(err).Warn("failed to load cookies, continuing without them")
	} else if jar != nil {
		httpClient.Jar = jar
		log.WithField("path", cfg.CookiesPath).Info("cookies loaded")
	}

	muxer := pkg.NewMuxer(cfg.FFmpegPath)
	if !muxer.Available() {
		log.WithField("path", cfg.FFmpegPath).Warn("ffmpeg not found, downloads will fail")
	}

	var transcriber *pkg.Transcriber
	if cfg.TranscriptionEnabled {
		transcriber = pkg.NewTranscriber(pkg.WhisperConfig{
			Path:   cfg.WhisperPath,
			Model:  cfg.WhisperModel,
			Device: cfg.WhisperDevice,
		})
		log.WithField("model", transcriber.Model()).Info("transcription enabled")
	}

	janitor := pkg.NewJanitor(cfg.TempDir, cfg.TempMaxAge, cfg.TempSweep)
	go janitor.Run(ctx)

	app := routes.NewApp(&routes.Handler{
		Extractor:   pkg.NewYoutubeExtractor(httpClient),
		Muxer:       muxer,
		Transcriber: transcriber,
		History:     db.NewStore(DB),
		TempDir:     cfg.TempDir,
		CookiesPath: cfg.CookiesPath,
		Timeout:     cfg.RequestTimeout,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("failed to shutdown server")
		}
	}()

	log.Printf("Server is running on port %s", cfg.Port)
	return app.Listen(":" + cfg.Port)
}

func clean(c *cli.Context) error {
	cfg := config.LoadConfig(c)
	config.ConfigureLogger(cfg)

	n, err := pkg.NewJanitor(cfg.TempDir, cfg.TempMaxAge, 0).Sweep()
	if err != nil {
		return err
	}
	log.WithField("removed", n).Info("temp dir cleaned")
	return nil
}
