// Package main contains the entrypoint for the userbot relay.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rayjaywolf/telegram-userbot/internal/audit"
	"github.com/rayjaywolf/telegram-userbot/internal/config"
	"github.com/rayjaywolf/telegram-userbot/internal/dexscreener"
	"github.com/rayjaywolf/telegram-userbot/internal/discord"
	"github.com/rayjaywolf/telegram-userbot/internal/logger"
	"github.com/rayjaywolf/telegram-userbot/internal/relay"
	"github.com/rayjaywolf/telegram-userbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components (config, loggers, audit log, lookup
// client, webhook sender, Telegram client, relay worker), blocks until
// shutdown, and returns the process exit code.
func run(ctx context.Context) int {
	envPath := flag.String("env", "./.env", "Path to .env configuration file")
	flag.Parse()

	cfg, err := config.Load(*envPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *envPath, "error", err)
		return 1
	}

	log := logger.New(cfg.LogLevel, cfg.LogJSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.LogLevel, "json", cfg.LogJSON)

	zapLog, err := logger.NewZap(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		log.Error("Failed to build Telegram client logger", "error", err)
		return 1
	}
	defer zapLog.Sync() //nolint:errcheck

	auditLog := audit.New(cfg.LogFile, log)

	lookup := dexscreener.NewClient(&http.Client{Timeout: cfg.LookupTimeout}, log).
		WithBaseURL(cfg.DexScreenerBaseURL)
	webhook := discord.NewWebhook(cfg.WebhookURL, nil, log)

	messages := make(chan relay.Message, 64)
	pipeline := relay.New(log, auditLog, lookup, webhook)
	tgClient := telegram.NewClient(cfg, telegram.NewConsoleAuth(), auditLog, log, zapLog,
		messages, pipeline.SetTarget)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tgClient.Run(gCtx)
	})
	g.Go(func() error {
		return pipeline.Run(gCtx, messages)
	})

	log.Info("Userbot running. Waiting for shutdown signal or error...")
	err = g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Userbot stopped due to error", "error", err)
		auditLog.Appendf("FATAL: %v", err)
		return 1
	}

	log.Info("Userbot stopped gracefully.")
	return 0
}
