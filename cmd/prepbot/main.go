package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"log/slog"

	"prepbot/core/bootstrap"
	"prepbot/core/buildinfo"
	"prepbot/core/command"
	coreconfig "prepbot/core/config"
	"prepbot/core/dispatch"
	"prepbot/core/flows"
	"prepbot/core/friends"
	"prepbot/core/logger"
	"prepbot/core/menu"
	"prepbot/core/question"
	"prepbot/core/session"
	coretelegram "prepbot/core/telegram"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("prepbot: %v", err)
	}
}

func run() error {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	boot, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()
	defer boot.DB.Close()

	logger.L.With("component", "app").Info("starting",
		slog.String("event", "start"),
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
	)

	table := menu.Default()
	if err := table.Audit(); err != nil {
		return fmt.Errorf("menu table audit: %w", err)
	}

	sessions := session.NewPostgresStore(boot.DB)
	questions := question.NewStore(boot.DB)
	friendStore := friends.NewStore(boot.DB)

	dispatcher := dispatch.New(sessions, command.NewParser(table))
	engine := flows.New(questions, friendStore, nil, cfg.Tutor.PracticeBatchSize)
	if err := engine.Register(dispatcher); err != nil {
		return err
	}

	reg := coretelegram.DefaultRegistry(dispatcher, cfg.Tutor.MaxReplyLength)
	routes := coretelegram.TextRoutes(dispatcher, reg, cfg.Tutor.MaxReplyLength)

	startedAt := time.Now()
	runOpts := coretelegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ coretelegram.Runtime) error {
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return coretelegram.RunTelegram(ctx, runOpts)
}
