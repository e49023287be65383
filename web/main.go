package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DeafMist/top-headlines/internal/config"
	"github.com/DeafMist/top-headlines/internal/logger"
	"github.com/DeafMist/top-headlines/internal/render"
	"github.com/DeafMist/top-headlines/internal/topstories"
)

func main() {
	envErr := config.LoadDotEnv()
	log := logger.New("web")
	if envErr != nil {
		log.Error("load .env", slog.Any("err", envErr))
		os.Exit(1)
	}

	cfg, err := config.LoadWeb()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	pages, err := render.New()
	if err != nil {
		log.Error("parse templates", slog.Any("err", err))
		os.Exit(1)
	}

	srv := &server{
		log:     log,
		cfg:     cfg,
		stories: topstories.New(cfg.TopStoriesURL, cfg.APIKey, cfg.FetchTimeout, log),
		pages:   pages,
	}

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("web server starting", slog.String("addr", cfg.BindAddr), slog.Bool("debug", cfg.Debug))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}
