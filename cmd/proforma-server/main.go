package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/proforma/internal/engine"
	"github.com/iwvelando/proforma/internal/logging"
	"github.com/iwvelando/proforma/internal/server"
	"github.com/iwvelando/proforma/internal/storage"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/defaults"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ds := defaults.Builtin()
	if cfg.Defaults != "" {
		ds, err = defaults.Load(cfg.Defaults)
		if err != nil {
			logger.Fatal("failed to load defaults dataset",
				zap.String("op", "main"),
				zap.String("file", cfg.Defaults),
				zap.Error(err),
			)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, logger, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to open storage",
			zap.String("op", "main"),
			zap.String("backend", cfg.Storage.Backend),
			zap.Error(err),
		)
	}
	if store != nil {
		defer func() {
			_ = store.Close()
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, engine.New(logger, ds), store, cfg.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	logger.Info("starting proforma server",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("version", version),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
