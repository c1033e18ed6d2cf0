// cmd/detector/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/M0105R/FakeNewsDetector/internal/classifier"
)

var cfg *Config

func main() {
	defer RecoverFromPanic("main")

	fmt.Println("Fake News Detector v" + VERSION + " starting up...")

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded configuration from .env")
	}

	cfg = LoadEnvConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := InitLogger(cfg.LogPath, ParseLogLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", err)
	}
	defer Logger().Close()

	// Load the model artifacts once; a failure degrades classification to
	// an explicit "unavailable" error instead of taking the tool down.
	clf, clfErr := classifier.Load(cfg.VectorizerPath, cfg.ModelPath)
	if clfErr != nil {
		clfErr = NewModelError(ErrModelLoad, "failed to load model artifacts", clfErr)
		Logger().Error("Local model load failed: %v", clfErr)
		RecordError(clfErr)
	} else {
		Logger().Info("Model artifacts loaded (classes: %v)", clf.Classes())
	}

	sources, err := LoadSources(cfg.SourcesPath)
	if err != nil {
		Logger().Error("Failed to load sources: %v", err)
		os.Exit(1)
	}
	Logger().Info("Loaded %d feed sources", len(sources))

	if cfg.FactCheckAPIKey == "" {
		Logger().Warning("No fact-check API key configured; fact-check lookups disabled")
	}

	server := NewServer(cfg, clf, clfErr, sources)

	scheduler := StartScheduler(server)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		Logger().Info("Received signal %v, shutting down", sig)
	case err := <-errCh:
		if err != nil {
			Logger().Error("Server error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		Logger().Error("Shutdown error: %v", err)
	}
	Logger().Info("Shutdown complete")
}
