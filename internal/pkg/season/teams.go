package season

import (
	"fmt"
	"strings"
)

// participant maps every label the odds site has used for a franchise to one
// participant id. Relocated franchises keep their id across renames, so both
// labels are listed as aliases instead of relying on duplicate map keys.
type participant struct {
	partid  int
	name    string // current display label on the odds side
	short   string // abbreviation used by the games dataset
	aliases []string
}

var participants = []participant{
	{partid: 1519, name: "Pittsburgh", short: "PIT"},
	{partid: 1520, name: "Cleveland", short: "CLE"},
	{partid: 1521, name: "Baltimore", short: "BAL"},
	{partid: 1522, name: "Cincinnati", short: "CIN"},
	{partid: 1523, name: "N.Y. Jets", short: "NYJ"},
	{partid: 1524, name: "Miami", short: "MIA"},
	{partid: 1525, name: "New England", short: "NE"},
	{partid: 1526, name: "Buffalo", short: "BUF"},
	{partid: 1527, name: "Indianapolis", short: "IND"},
	{partid: 1528, name: "Tennessee", short: "TEN"},
	{partid: 1529, name: "Jacksonville", short: "JAX"},
	{partid: 1530, name: "Houston", short: "HOU"},
	{partid: 1531, name: "Kansas City", short: "KC"},
	{partid: 1533, name: "Las Vegas", short: "LV", aliases: []string{"Oakland"}},
	{partid: 1534, name: "Denver", short: "DEN"},
	{partid: 1535, name: "N.Y. Giants", short: "NYG"},
	{partid: 1536, name: "Philadelphia", short: "PHI"},
	{partid: 1537, name: "Washington", short: "WAS"},
	{partid: 1538, name: "Dallas", short: "DAL"},
	{partid: 1539, name: "Detroit", short: "DET"},
	{partid: 1540, name: "Chicago", short: "CHI"},
	{partid: 1541, name: "Minnesota", short: "MIN"},
	{partid: 1542, name: "Green Bay", short: "GB"},
	{partid: 1543, name: "New Orleans", short: "NO"},
	{partid: 1544, name: "Tampa Bay", short: "TB"},
	{partid: 1545, name: "Carolina", short: "CAR"},
	{partid: 1546, name: "Atlanta", short: "ATL"},
	{partid: 1547, name: "San Francisco", short: "SF"},
	{partid: 1548, name: "Seattle", short: "SEA"},
	{partid: 1549, name: "Arizona", short: "ARI"},
	{partid: 1550, name: "L.A. Rams", short: "LAR"},
	{partid: 75380, name: "L.A. Chargers", short: "LAC"},
}

var (
	aliasToPartID map[string]int
	partIDToTeam  map[int]participant
)

func init() {
	var err error
	aliasToPartID, partIDToTeam, err = buildTeamMaps(participants)
	if err != nil {
		panic(err)
	}
}

func buildTeamMaps(ps []participant) (map[string]int, map[int]participant, error) {
	byAlias := make(map[string]int)
	byID := make(map[int]participant)
	for _, p := range ps {
		if prev, ok := byID[p.partid]; ok {
			return nil, nil, fmt.Errorf("team table: partid %d defined twice (%s, %s)", p.partid, prev.name, p.name)
		}
		byID[p.partid] = p
		for _, label := range append([]string{p.name}, p.aliases...) {
			key := normalizeLabel(label)
			if prev, ok := byAlias[key]; ok && prev != p.partid {
				return nil, nil, fmt.Errorf("team table: alias %q maps to both %d and %d", label, prev, p.partid)
			}
			byAlias[key] = p.partid
		}
	}
	return byAlias, byID, nil
}

func normalizeLabel(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(strings.TrimSpace(s)), " "))
}

// ParticipantID resolves a scraped team label to its participant id.
// Historical labels of relocated franchises resolve to the current id.
func ParticipantID(label string) (int, bool) {
	id, ok := aliasToPartID[normalizeLabel(label)]
	return id, ok
}

// TeamName returns the current display label for a participant id. The result
// can differ from what the scoreboard showed for historical seasons; the
// scraped label stays authoritative in merged output.
func TeamName(partid int) (string, bool) {
	p, ok := partIDToTeam[partid]
	return p.name, ok
}

// ShortCode returns the abbreviation the games dataset uses for a participant.
func ShortCode(partid int) (string, bool) {
	p, ok := partIDToTeam[partid]
	return p.short, ok
}

// ShortCodeForLabel resolves a scraped label straight to its abbreviation.
// Historical labels keep their historical codes ("Oakland" is OAK, not LV),
// since the games dataset records pre-relocation seasons under the old code.
func ShortCodeForLabel(label string) (string, bool) {
	if code, ok := historicalShortCodes[normalizeLabel(label)]; ok {
		return code, true
	}
	if id, ok := ParticipantID(label); ok {
		return ShortCode(id)
	}
	return "", false
}

var historicalShortCodes = map[string]string{
	"OAKLAND":   "OAK",
	"ST. LOUIS": "STL",
}
