package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/onk/blogchecker/internal/application"
	"github.com/onk/blogchecker/internal/model"
	"github.com/onk/blogchecker/internal/transport/server"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Blog Checker Server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  TECHWORDS_PATH        Word list: gs://bucket/key or a local path (required)\n")
		fmt.Printf("  PORT                  Server port (default: 8080)\n")
		fmt.Printf("  HOST                  Server host (default: 0.0.0.0)\n")
		fmt.Printf("  TECHWORD_THRESHOLD    Minimum techword count (default: 3)\n")
		fmt.Printf("  SCHEDULED_SITES       Sites checked on a schedule: kind=url,kind=url\n")
		fmt.Printf("  CHECK_SCHEDULE        Cron spec for scheduled checks (default: @hourly)\n")
		fmt.Printf("  LOG_LEVEL             Log level (default: info)\n")
		fmt.Printf("  LOG_FORMAT            json or text (default: json)\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Blog Checker Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	server.Version = Version

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := application.New(ctx)
	if err != nil {
		logrus.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	logger := app.Logger
	cfg := app.Config

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      server.NewRouter(app),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.FetchTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Scheduled checks run one after another so the fetch delay applies per site
	c := cron.New()
	if len(cfg.ScheduledSites) > 0 {
		_, err := c.AddFunc(cfg.CheckSchedule, func() {
			checkSites(ctx, app, logger, cfg.ScheduledSites)
		})
		if err != nil {
			logger.WithError(err).Errorf("❌ Failed to schedule site checks with cron: %s", cfg.CheckSchedule)
		} else {
			logger.Infof("📅 Scheduled %d site(s) with cron: %s", len(cfg.ScheduledSites), cfg.CheckSchedule)
		}
	}
	c.Start()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("🚀 Starting server on %s:%s", cfg.Host, cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-sigChan
	logger.Info("🛑 Shutting down server...")

	cancel()
	<-c.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown error")
	}

	logger.Info("✅ Server stopped")
}

func checkSites(ctx context.Context, app *application.Application, logger *logrus.Logger, sites []model.Site) {
	for _, site := range sites {
		if ctx.Err() != nil {
			return
		}

		log := logger.WithFields(logrus.Fields{"site": site.URL, "kind": site.Kind})
		log.Info("🕐 Scheduled check starting")

		entries, err := app.TechFeed.Run(ctx, site)
		if err != nil {
			log.WithError(err).Error("❌ Scheduled check failed")
			continue
		}

		body, _ := json.Marshal(entries)
		log.WithField("entries", string(body)).Infof("✅ Scheduled check found %d technical entries", len(entries))
	}
}
