package pipeline

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kdvs/nflodds/internal/pkg/models"
)

// metaColumns is the fixed identifier/metadata prefix of every emitted row.
// Odds columns follow in table order and vary between weeks.
var metaColumns = []string{"season", "week", "eid", "rotation", "team", "partid", "date", "time", "score", "status"}

// WriteCSV serializes a merged table. Dynamic column names are flattened into
// the header only here, at the boundary; absent cells render as empty fields.
func WriteCSV(w io.Writer, t *models.MergedTable) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, metaColumns...), t.OddsColumns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for _, row := range t.Rows {
		record = record[:0]
		m := row.Meta
		partid := ""
		if m.PartID != 0 {
			partid = strconv.Itoa(m.PartID)
		}
		record = append(record,
			strconv.Itoa(m.Season), strconv.Itoa(m.Week),
			m.EID, m.Rotation, m.Team, partid,
			m.Date, m.Time, m.Score, m.Status)
		for _, col := range t.OddsColumns {
			record = append(record, formatCell(row.Odds, col))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(odds map[string]float64, col string) string {
	if odds == nil {
		return ""
	}
	v, ok := odds[col]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
