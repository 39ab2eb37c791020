package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/scrape/bmr"
)

// Pipeline runs the full scrape for one week: scoreboard metadata, batched
// line fetch, reshape, merge. Every call re-fetches from both remote sources;
// nothing is cached between invocations.
type Pipeline struct {
	client  *bmr.Client
	markets []models.Market
	books   []int
}

func New(client *bmr.Client, markets []models.Market) *Pipeline {
	return &Pipeline{
		client:  client,
		markets: markets,
		books:   bmr.DefaultBookIDs,
	}
}

// Run produces the merged table for (season, week). An extractor, fetcher or
// reshaper failure fails the whole week — a result silently missing all odds
// is worse than no result.
func (p *Pipeline) Run(ctx context.Context, year, week int) (*models.MergedTable, models.MergeReport, error) {
	meta, err := p.client.ExtractMetadata(ctx, year, week)
	if err != nil {
		return nil, models.MergeReport{}, fmt.Errorf("season %d week %d: extract metadata: %w", year, week, err)
	}
	if len(meta) == 0 {
		return nil, models.MergeReport{}, fmt.Errorf("season %d week %d: %w", year, week,
			&models.MalformedResponseError{Detail: "scoreboard page has no participant rows"})
	}

	eids := eventIDs(meta)
	resp, err := p.client.FetchLines(ctx, eids, p.markets, p.books)
	if err != nil {
		return nil, models.MergeReport{}, fmt.Errorf("season %d week %d: fetch lines: %w", year, week, err)
	}

	odds, err := Reshape(resp, p.markets)
	if err != nil {
		return nil, models.MergeReport{}, fmt.Errorf("season %d week %d: %w", year, week, err)
	}

	merged, report := Merge(meta, odds)
	if report.UnmatchedMeta > 0 || report.DroppedOdds > 0 || report.Unpaired {
		slog.Warn("reconciliation incomplete",
			"season", year, "week", week,
			"unmatched_meta", report.UnmatchedMeta,
			"dropped_odds", report.DroppedOdds,
			"parity_fallback", report.ParityFallback,
			"unpaired", report.Unpaired)
	}
	return merged, report, nil
}

// Meta runs only the scoreboard extraction, for callers that want the
// identifier records without odds.
func (p *Pipeline) Meta(ctx context.Context, year, week int) ([]models.GameMeta, error) {
	return p.client.ExtractMetadata(ctx, year, week)
}

// eventIDs collects the distinct non-empty event ids in scrape order.
func eventIDs(meta []models.GameMeta) []string {
	seen := make(map[string]bool)
	var eids []string
	for _, m := range meta {
		if m.EID == "" || seen[m.EID] {
			continue
		}
		seen[m.EID] = true
		eids = append(eids, m.EID)
	}
	return eids
}
