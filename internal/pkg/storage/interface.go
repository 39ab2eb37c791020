package storage

import (
	"context"

	"github.com/kdvs/nflodds/internal/pkg/models"
)

// WeeklyArchive persists the emitted CSV per (season, week). The pipeline
// itself never persists anything; callers archive only after the full
// in-memory table is built, so a failed week leaves no partial file.
type WeeklyArchive interface {
	StoreWeek(ctx context.Context, season, week int, report models.MergeReport, csvData []byte) error
	GetWeek(ctx context.Context, season, week int) ([]byte, error)
	Close() error
}
