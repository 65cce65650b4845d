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
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/worker"
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

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.NewServer(cfg, "dlq-monitor", appLogger).Run(gctx)
	})
	g.Go(func() error {
		return worker.NewDLQMonitor(cfg, appLogger, a.Queue, a.VideoUC).Run(gctx)
	})
	if err = g.Wait(); err != nil {
		appLogger.Errorf("dlq monitor exited: %v", err)
		os.Exit(1)
	}
	appLogger.Info("dlq monitor shut down cleanly")
}
