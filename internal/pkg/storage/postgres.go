package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/kdvs/nflodds/internal/pkg/config"
	"github.com/kdvs/nflodds/internal/pkg/models"
)

var _ WeeklyArchive = (*PostgresArchive)(nil)

// PostgresArchive stores one emitted CSV per (season, week), upserted so a
// re-scrape of a completed week overwrites the previous copy.
type PostgresArchive struct {
	db *sql.DB
}

func NewPostgresArchive(cfg *config.PostgresConfig) (*PostgresArchive, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	a := &PostgresArchive{db: db}
	if err := a.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL weekly archive initialized")
	return a, nil
}

func (a *PostgresArchive) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS weekly_odds (
		season INT NOT NULL,
		week INT NOT NULL,
		emitted_at TIMESTAMP NOT NULL DEFAULT NOW(),
		row_count INT NOT NULL,
		matched INT NOT NULL,
		unmatched_meta INT NOT NULL,
		dropped_odds INT NOT NULL,
		csv BYTEA NOT NULL,
		PRIMARY KEY (season, week)
	);
	`
	_, err := a.db.ExecContext(ctx, query)
	return err
}

func (a *PostgresArchive) StoreWeek(ctx context.Context, season, week int, report models.MergeReport, csvData []byte) error {
	query := `
	INSERT INTO weekly_odds (season, week, emitted_at, row_count, matched, unmatched_meta, dropped_odds, csv)
	VALUES ($1, $2, NOW(), $3, $4, $5, $6, $7)
	ON CONFLICT (season, week) DO UPDATE SET
		emitted_at = NOW(),
		row_count = EXCLUDED.row_count,
		matched = EXCLUDED.matched,
		unmatched_meta = EXCLUDED.unmatched_meta,
		dropped_odds = EXCLUDED.dropped_odds,
		csv = EXCLUDED.csv
	`
	_, err := a.db.ExecContext(ctx, query,
		season, week, report.Rows, report.Matched, report.UnmatchedMeta, report.DroppedOdds, csvData)
	if err != nil {
		return fmt.Errorf("failed to store week %d/%d: %w", season, week, err)
	}
	return nil
}

func (a *PostgresArchive) GetWeek(ctx context.Context, season, week int) ([]byte, error) {
	var data []byte
	err := a.db.QueryRowContext(ctx,
		`SELECT csv FROM weekly_odds WHERE season = $1 AND week = $2`, season, week).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get week %d/%d: %w", season, week, err)
	}
	return data, nil
}

func (a *PostgresArchive) Close() error {
	return a.db.Close()
}
