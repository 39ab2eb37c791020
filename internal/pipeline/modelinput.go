package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/pkg/season"
)

// GameRow is one game folded from its two team rows, keyed the way the games
// dataset keys its rows so the model-input join is a plain equality join.
type GameRow struct {
	Season  int
	Week    int
	JoinKey string
	Home    models.MergedRow
	Away    models.MergedRow
}

// GameRows folds consecutive team-row pairs into per-game rows. Rotation
// parity decides sides: the away team carries the odd rotation number, the
// home team the even one. Rows whose event partner is missing are dropped:
// pairing across events would stitch two games together under a fabricated
// join key.
func GameRows(t *models.MergedTable) []GameRow {
	var games []GameRow
	for i := 0; i+1 < len(t.Rows); {
		a, b := t.Rows[i], t.Rows[i+1]
		if a.Meta.EID != b.Meta.EID {
			slog.Warn("Dropping team row without event partner",
				"eid", a.Meta.EID, "team", a.Meta.Team, "rotation", a.Meta.Rotation)
			i++
			continue
		}
		i += 2

		away, home := a, b
		if rot, err := strconv.Atoi(a.Meta.Rotation); err == nil && rot%2 == 0 {
			away, home = b, a
		}

		awayCode := shortCode(away.Meta.Team)
		homeCode := shortCode(home.Meta.Team)
		games = append(games, GameRow{
			Season:  home.Meta.Season,
			Week:    home.Meta.Week,
			JoinKey: JoinKey(home.Meta.Season, home.Meta.Week, awayCode, homeCode),
			Home:    home,
			Away:    away,
		})
	}
	return games
}

// JoinKey renders the games-dataset game id: zero-padded season and week plus
// the away and home abbreviations, e.g. "2018_01_ATL_PHI".
func JoinKey(year, week int, awayCode, homeCode string) string {
	return fmt.Sprintf("%04d_%02d_%s_%s", year, week, awayCode, homeCode)
}

func shortCode(label string) string {
	if code, ok := season.ShortCodeForLabel(label); ok {
		return code
	}
	return label
}

// WriteGameCSV serializes per-game rows: every odds column appears twice,
// suffixed _away and _home, matching the one-row-per-game schema the model
// ingests.
func WriteGameCSV(w io.Writer, t *models.MergedTable) error {
	games := GameRows(t)
	cw := csv.NewWriter(w)

	header := []string{"join_key", "season", "week", "team_away", "team_home", "score_away", "score_home"}
	for _, col := range t.OddsColumns {
		header = append(header, col+"_away")
	}
	for _, col := range t.OddsColumns {
		header = append(header, col+"_home")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, g := range games {
		record := []string{
			g.JoinKey,
			strconv.Itoa(g.Season), strconv.Itoa(g.Week),
			g.Away.Meta.Team, g.Home.Meta.Team,
			g.Away.Meta.Score, g.Home.Meta.Score,
		}
		for _, col := range t.OddsColumns {
			record = append(record, formatCell(g.Away.Odds, col))
		}
		for _, col := range t.OddsColumns {
			record = append(record, formatCell(g.Home.Odds, col))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
