// Backfill scrapes whole seasons week by week, writing one CSV per week.
// Failed weeks are logged, reported, and skipped so one dead slate does not
// sink a multi-season run.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kdvs/nflodds/internal/pipeline"
	"github.com/kdvs/nflodds/internal/pkg/config"
	"github.com/kdvs/nflodds/internal/pkg/logging"
	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/pkg/notify"
	"github.com/kdvs/nflodds/internal/pkg/season"
	"github.com/kdvs/nflodds/internal/pkg/storage"
	"github.com/kdvs/nflodds/internal/scrape/bmr"
)

type flags struct {
	configPath string
	season     int
	week       int
	outDir     string
}

func main() {
	if err := run(); err != nil {
		slog.Error("Backfill failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var f flags
	flag.StringVar(&f.configPath, "config", "configs/local.yaml", "path to config file")
	flag.IntVar(&f.season, "season", 0, "only this season (default: all from config)")
	flag.IntVar(&f.week, "week", 0, "only this week (requires -season)")
	flag.StringVar(&f.outDir, "out", "data/odds", "output directory for weekly CSVs")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.EnvOverrides()

	logging.Setup(&cfg.Logging, "backfill")

	markets, err := models.ParseMarkets(cfg.Scrape.Markets)
	if err != nil {
		return fmt.Errorf("invalid markets config: %w", err)
	}

	pipe := pipeline.New(bmr.NewClient(&cfg.Scrape), markets)
	notifier := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	var archive storage.WeeklyArchive
	if cfg.Postgres.DSN != "" {
		pg, err := storage.NewPostgresArchive(&cfg.Postgres)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer pg.Close()
		archive = pg
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seasons := cfg.Backfill.Seasons
	if f.season != 0 {
		seasons = []int{f.season}
	}

	failed := 0
	for _, year := range seasons {
		weeks := season.Weeks(year)
		if f.week != 0 {
			weeks = []int{f.week}
		}
		for _, week := range weeks {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := scrapeWeek(ctx, pipe, archive, f.outDir, year, week); err != nil {
				slog.Error("Week failed, skipping", "season", year, "week", week, "error", err)
				notifier.NotifyWeekFailed(year, week, err)
				failed++
			}

			// Politeness pause between week requests.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.Backfill.Delay):
			}
		}
	}

	if failed > 0 {
		slog.Warn("Backfill finished with failures", "failed_weeks", failed)
	} else {
		slog.Info("Backfill finished")
	}
	return nil
}

func scrapeWeek(ctx context.Context, pipe *pipeline.Pipeline, archive storage.WeeklyArchive, outDir string, year, week int) error {
	table, report, err := pipe.Run(ctx, year, week)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pipeline.WriteCSV(&buf, table); err != nil {
		return err
	}

	dir := filepath.Join(outDir, fmt.Sprintf("%d", year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("week%02d.csv", week))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}

	if archive != nil {
		if err := archive.StoreWeek(ctx, year, week, report, buf.Bytes()); err != nil {
			slog.Error("Failed to archive week", "season", year, "week", week, "error", err)
		}
	}

	slog.Info("Week scraped", "season", year, "week", week,
		"rows", report.Rows, "unmatched", report.UnmatchedMeta, "path", path)
	return nil
}
