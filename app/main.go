package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bensahar7/howtosolvethis/app/api"
	"github.com/bensahar7/howtosolvethis/app/cache"
	"github.com/bensahar7/howtosolvethis/app/cfg"
	"github.com/bensahar7/howtosolvethis/app/episodes"
	"github.com/bensahar7/howtosolvethis/app/feed"
	"github.com/bensahar7/howtosolvethis/app/metadata"
	"github.com/bensahar7/howtosolvethis/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting How To Solve This episode service", "version", appCfg.Version)

	mapping, err := episodes.LoadMapping(appCfg.MappingFile)
	if err != nil {
		log.Fatalf("Failed to load episode mapping: %v", err)
	}
	slog.Info("Episode mapping loaded", "entries", len(mapping))

	httpClient := &http.Client{
		Timeout: time.Duration(appCfg.FetchTimeout) * time.Second,
	}

	fetcher := feed.NewFetcher(httpClient, appCfg.FeedURL, appCfg.UserAgent,
		appCfg.PlaceholderImage, time.Duration(appCfg.FetchTimeout)*time.Second)
	store := metadata.NewStore(appCfg.EpisodesDir)
	appCache := cache.New(time.Duration(appCfg.CacheTTL) * time.Second)
	service := episodes.NewService(fetcher, store, mapping, appCache, appCfg.PlaceholderImage)

	scheduler := tasks.NewScheduler(service, time.Duration(appCfg.CacheTTL)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(service, appCache, mapping)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
