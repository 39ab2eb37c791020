package models

// GameMeta is one scraped scoreboard row: one team within one scheduled game.
// Display fields (Rotation, Date, Time, Score, Status) are kept verbatim as
// rendered by the site; no numeric parsing is done on them.
type GameMeta struct {
	EID      string `json:"eid"` // event id from the row link; empty when unparseable
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	Rotation string `json:"rotation"`
	Team     string `json:"team"`
	PartID   int    `json:"partid"` // 0 when the team label resolves to no participant
	Date     string `json:"date"`
	Time     string `json:"time"`
	Score    string `json:"score"`
	Status   string `json:"status"`
}

// OddsRow is one wide row of the reshaped odds table, keyed by (eid, partid).
// Values holds only the cells that were actually present in the fetched batch;
// a missing key is a null cell.
type OddsRow struct {
	EID    string
	PartID int
	Values map[string]float64
}

// OddsTable is the reshaper output. Columns is the discovered odds column set
// in emit order; it varies between weeks depending on which books reported.
type OddsTable struct {
	Columns []string
	Rows    []OddsRow
}

// Row returns the row for (eid, partid), or nil.
func (t *OddsTable) Row(eid string, partid int) *OddsRow {
	for i := range t.Rows {
		if t.Rows[i].EID == eid && t.Rows[i].PartID == partid {
			return &t.Rows[i]
		}
	}
	return nil
}

// MergedRow is one team of one game with its odds block attached. Odds is nil
// when the row found no counterpart in the odds table; it is never partially
// absent (the whole block is either the matched wide row or nil).
type MergedRow struct {
	Meta GameMeta
	Odds map[string]float64
}

// MergedTable is the final per-week row set, ordered as the scoreboard page
// listed the teams.
type MergedTable struct {
	OddsColumns []string
	Rows        []MergedRow
}

// MergeReport makes reconciliation quality observable instead of silently
// nulling unmatched rows.
type MergeReport struct {
	Rows           int  `json:"rows"`
	Matched        int  `json:"matched"`
	UnmatchedMeta  int  `json:"unmatched_meta"`  // metadata rows emitted with null odds
	DroppedOdds    int  `json:"dropped_odds"`    // odds rows with no metadata counterpart
	ParityFallback int  `json:"parity_fallback"` // rows matched by event+parity instead of partid
	Unpaired       bool `json:"unpaired"`        // scoreboard had an odd participant-row count
}
