package pipeline

import (
	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/pkg/season"
)

// Merge joins the scoreboard metadata with the wide odds table. The primary
// key is (eid, partid), with partid on the metadata side derived from the
// team label. When an event's odds rows carry participant ids that match
// neither of its teams (some market encodings use synthetic participants),
// the two sides are paired by position within the event instead.
//
// Both sides can carry a team label; the metadata side wins — it is the label
// actually rendered next to the scheduled game, while the odds side's would
// be reconstructed from the id table and may be stale for relocated
// franchises.
//
// Unmatched metadata rows are kept with a nil odds block. Unmatched odds rows
// are dropped, since nothing can label them with a team or game. Both counts
// land in the report so reconciliation regressions are visible.
func Merge(meta []models.GameMeta, odds *models.OddsTable) (*models.MergedTable, models.MergeReport) {
	report := models.MergeReport{
		Rows:     len(meta),
		Unpaired: unpaired(meta),
	}

	byKey := make(map[rowKeyStr]*models.OddsRow, len(odds.Rows))
	byEvent := make(map[string][]*models.OddsRow)
	for i := range odds.Rows {
		r := &odds.Rows[i]
		byKey[rowKeyStr{r.EID, r.PartID}] = r
		byEvent[r.EID] = append(byEvent[r.EID], r)
	}

	used := make(map[*models.OddsRow]bool)
	posInEvent := make(map[string]int)

	merged := &models.MergedTable{OddsColumns: odds.Columns}
	for _, m := range meta {
		pos := posInEvent[m.EID]
		posInEvent[m.EID]++

		row := models.MergedRow{Meta: m}
		if match := findOddsRow(m, pos, byKey, byEvent, &report); match != nil && !used[match] {
			used[match] = true
			row.Odds = match.Values
			report.Matched++
		} else {
			report.UnmatchedMeta++
		}
		merged.Rows = append(merged.Rows, row)
	}

	for _, rows := range byEvent {
		for _, r := range rows {
			if !used[r] {
				report.DroppedOdds++
			}
		}
	}
	return merged, report
}

// unpaired reports whether the metadata rows break the two-rows-per-game
// structure: odd cardinality, or a consecutive pair spanning two events (two
// games each missing a row keeps the count even but misaligns every pair in
// between).
func unpaired(meta []models.GameMeta) bool {
	if len(meta)%2 != 0 {
		return true
	}
	for i := 0; i+1 < len(meta); i += 2 {
		if meta[i].EID != meta[i+1].EID {
			return true
		}
	}
	return false
}

type rowKeyStr struct {
	eid    string
	partid int
}

func findOddsRow(m models.GameMeta, pos int, byKey map[rowKeyStr]*models.OddsRow, byEvent map[string][]*models.OddsRow, report *models.MergeReport) *models.OddsRow {
	if m.EID == "" {
		return nil
	}
	if m.PartID != 0 {
		if r, ok := byKey[rowKeyStr{m.EID, m.PartID}]; ok {
			return r
		}
	}

	// Parity fallback: some market encodings list an event under synthetic
	// participant ids outside the team roster, so positional pairing is the
	// only key left. Requires exactly two odds rows for the event, mirroring
	// the two-row structure of the scrape. When any of the event's odds rows
	// carries a real roster id, a positional guess could silently mislabel
	// teams, so the row is left unmatched instead.
	eventRows := byEvent[m.EID]
	if len(eventRows) != 2 || pos > 1 {
		return nil
	}
	for _, r := range eventRows {
		if _, ok := season.TeamName(r.PartID); ok {
			return nil
		}
	}
	report.ParityFallback++
	return eventRows[pos]
}
