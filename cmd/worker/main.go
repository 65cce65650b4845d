package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/amankumarsingh77/cloud-video-transcriber/internal/app"
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/server"
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/tracing"
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/transcription"
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/worker"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
)

func main() {
	configFile := flag.String("config", "config/config.yml", "path to the config file")
	flag.Parse()

	cfg, appLogger, err := app.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(ctx, cfg.Tracing.Endpoint, "transcription-worker", cfg.Server.AppVersion)
	if err != nil {
		appLogger.Fatalf("could not init tracing: %v", err)
	}
	if tp != nil {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	transcriber, err := transcription.NewWhisperTranscriber(cfg.Transcriber)
	if err != nil {
		appLogger.Fatalf("could not load transcription model: %v", err)
	}
	defer transcriber.Close()

	summarizer := transcription.NewOpenAISummarizer(openai.NewClient(cfg.Summarizer.APIKey), cfg.Summarizer, appLogger)
	visibility := worker.NewVisibilityManager(a.Queue, cfg.Visibility, appLogger)
	processor := worker.NewJobProcessor(
		cfg,
		appLogger,
		a.VideoUC,
		a.Objects,
		transcription.NewFFmpegExtractor(cfg.Transcriber.SampleRate),
		transcriber,
		summarizer,
		visibility,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.NewServer(cfg, "worker", appLogger).Run(gctx)
	})
	g.Go(func() error {
		return worker.NewWorker(cfg, appLogger, a.Queue, processor).Run(gctx)
	})
	if err = g.Wait(); err != nil {
		appLogger.Errorf("worker exited: %v", err)
		os.Exit(1)
	}
	appLogger.Info("worker shut down cleanly")
}
