// Package pipeline turns one week's scraped inputs into the final merged
// table: pivot the odds service's long-format records into wide per-team
// rows, then reconcile them with the scoreboard metadata.
package pipeline

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/scrape/bmr"
)

type rowKey struct {
	eid    int64
	partid int
}

// Reshape pivots the fetched line records into one wide row per
// (event, participant). Current lines produce one column per book per
// attribute; opening lines and consensus contribute fixed columns. The
// column set is discovered from the books actually present in the batch, so
// it can differ between weeks.
func Reshape(resp *bmr.LinesResponse, markets []models.Market) (*models.OddsTable, error) {
	if len(resp.Data.CurrentLines) == 0 {
		return nil, &models.MalformedResponseError{Detail: "current lines array is empty"}
	}

	requested := make(map[models.Market]bool, len(markets))
	for _, m := range markets {
		requested[m] = true
	}

	cells := make(map[rowKey]map[string]float64)
	var keys []rowKey
	set := func(k rowKey, col string, v *float64) {
		if v == nil {
			return
		}
		row, ok := cells[k]
		if !ok {
			row = make(map[string]float64)
			cells[k] = row
			keys = append(keys, k)
		}
		if _, dup := row[col]; !dup {
			row[col] = *v // first record wins on duplicates
		}
	}

	// Current lines: one column per (market, attribute, book).
	booksByMarket := make(map[models.Market]map[int]bool)
	valid := 0
	for _, rec := range resp.Data.CurrentLines {
		m := models.Market(rec.MTID)
		if rec.EID == 0 || rec.PartID == 0 || rec.PAID == 0 || !requested[m] {
			continue
		}
		valid++
		if booksByMarket[m] == nil {
			booksByMarket[m] = make(map[int]bool)
		}
		booksByMarket[m][rec.PAID] = true

		k := rowKey{rec.EID, rec.PartID}
		switch m {
		case models.MarketMoneyline:
			set(k, fmt.Sprintf("ml_%d", rec.PAID), rec.AP)
		case models.MarketSpread:
			set(k, fmt.Sprintf("spread_%d", rec.PAID), rec.Adj)
			set(k, fmt.Sprintf("spread_odds_%d", rec.PAID), rec.AP)
		case models.MarketTotal:
			set(k, fmt.Sprintf("total_%d", rec.PAID), rec.Adj)
			set(k, fmt.Sprintf("total_odds_%d", rec.PAID), rec.AP)
		}
	}
	if valid == 0 {
		return nil, &models.MalformedResponseError{Detail: "current lines carry no usable records for the requested markets"}
	}

	// Opening lines: single reference book, fixed columns.
	for _, rec := range resp.Data.OpeningLines {
		if rec.EID == 0 || rec.PartID == 0 || !requested[models.Market(rec.MTID)] {
			continue
		}
		k := rowKey{rec.EID, rec.PartID}
		switch models.Market(rec.MTID) {
		case models.MarketMoneyline:
			set(k, "op_ml_odds", rec.AP)
		case models.MarketSpread:
			set(k, "op_spread", rec.Adj)
			set(k, "op_spread_odds", rec.AP)
		case models.MarketTotal:
			set(k, "op_total", rec.Adj)
			set(k, "op_total_odds", rec.AP)
		}
	}

	// Consensus: bet percentage and wager volume per market.
	for _, rec := range resp.Data.Consensus {
		if rec.EID == 0 || rec.PartID == 0 || !requested[models.Market(rec.MTID)] {
			continue
		}
		k := rowKey{rec.EID, rec.PartID}
		var prefix string
		switch models.Market(rec.MTID) {
		case models.MarketMoneyline:
			prefix = "ml"
		case models.MarketSpread:
			prefix = "spread"
		case models.MarketTotal:
			prefix = "total"
		default:
			continue
		}
		set(k, prefix+"_perc", rec.Perc)
		set(k, prefix+"_wag", rec.Wag)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].eid != keys[j].eid {
			return keys[i].eid < keys[j].eid
		}
		return keys[i].partid < keys[j].partid
	})

	table := &models.OddsTable{Columns: columnOrder(markets, booksByMarket)}
	for _, k := range keys {
		table.Rows = append(table.Rows, models.OddsRow{
			EID:    strconv.FormatInt(k.eid, 10),
			PartID: k.partid,
			Values: cells[k],
		})
	}
	return table, nil
}

// columnOrder renders the discovered column set deterministically: consensus
// and opening columns first, then per-book columns, books sorted within each
// requested market.
func columnOrder(markets []models.Market, booksByMarket map[models.Market]map[int]bool) []string {
	var cols []string
	for _, m := range markets {
		switch m {
		case models.MarketMoneyline:
			cols = append(cols, "ml_perc", "ml_wag")
		case models.MarketSpread:
			cols = append(cols, "spread_perc", "spread_wag")
		case models.MarketTotal:
			cols = append(cols, "total_perc", "total_wag")
		}
	}
	for _, m := range markets {
		switch m {
		case models.MarketMoneyline:
			cols = append(cols, "op_ml_odds")
		case models.MarketSpread:
			cols = append(cols, "op_spread", "op_spread_odds")
		case models.MarketTotal:
			cols = append(cols, "op_total", "op_total_odds")
		}
	}
	for _, m := range markets {
		for _, paid := range sortedBooks(booksByMarket[m]) {
			switch m {
			case models.MarketMoneyline:
				cols = append(cols, fmt.Sprintf("ml_%d", paid))
			case models.MarketSpread:
				cols = append(cols, fmt.Sprintf("spread_%d", paid), fmt.Sprintf("spread_odds_%d", paid))
			case models.MarketTotal:
				cols = append(cols, fmt.Sprintf("total_%d", paid), fmt.Sprintf("total_odds_%d", paid))
			}
		}
	}
	return cols
}

func sortedBooks(set map[int]bool) []int {
	books := make([]int, 0, len(set))
	for paid := range set {
		books = append(books, paid)
	}
	sort.Ints(books)
	return books
}
