package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omarshaarawi/matchbot/internal/api/matchcentre"
	"github.com/omarshaarawi/matchbot/internal/api/whoscored"
	"github.com/omarshaarawi/matchbot/internal/bot"
	"github.com/omarshaarawi/matchbot/internal/config"
	"github.com/omarshaarawi/matchbot/internal/extract"
	"github.com/omarshaarawi/matchbot/internal/repository/memory"
	"github.com/omarshaarawi/matchbot/internal/scheduler"
	"github.com/omarshaarawi/matchbot/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.Log))

	fetcher, err := whoscored.NewFetcher(cfg.WhoScored)
	if err != nil {
		return err
	}
	matchAPI := matchcentre.NewAPI(fetcher, extract.New())

	repo := memory.NewRepository()
	matchService := service.NewMatchService(matchAPI, repo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, url := range cfg.Watch.URLs {
		if _, err := matchService.Watch(ctx, url); err != nil {
			slog.Error("Failed to watch configured match", "url", url, "error", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Starting HTTP server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	if cfg.TelegramBot.Token == "" {
		slog.Warn("TELEGRAM_TOKEN not set, running without chat bot")
	} else {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, matchService)
		if err != nil {
			return err
		}

		sched, err := scheduler.NewScheduler(matchService, telegramBot.SendMessage, cfg.Watch.Interval)
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Error("Error stopping scheduler", "error", err)
			}
		}()

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthCheckHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func newLogger(cfg config.Log) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
