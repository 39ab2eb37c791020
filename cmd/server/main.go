package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kdvs/nflodds/internal/pipeline"
	"github.com/kdvs/nflodds/internal/pkg/config"
	"github.com/kdvs/nflodds/internal/pkg/logging"
	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/pkg/storage"
	"github.com/kdvs/nflodds/internal/scrape/bmr"
	"github.com/kdvs/nflodds/internal/web"
)

const defaultConfigPath = "configs/local.yaml"

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath, "path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.EnvOverrides()

	logging.Setup(&cfg.Logging, "server")

	markets, err := models.ParseMarkets(cfg.Scrape.Markets)
	if err != nil {
		return fmt.Errorf("invalid markets config: %w", err)
	}

	client := bmr.NewClient(&cfg.Scrape)
	pipe := pipeline.New(client, markets)

	var archive storage.WeeklyArchive
	if cfg.Postgres.DSN != "" {
		pg, err := storage.NewPostgresArchive(&cfg.Postgres)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pg.Close()
		archive = pg
	} else {
		slog.Info("No postgres DSN configured, weekly archive disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.Run(ctx, &cfg.HTTP, pipe, archive)
}
