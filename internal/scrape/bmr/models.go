package bmr

// LineRecord is one row of the odds service response: one attribute set for
// (event, participant, bookmaker, market). Numeric fields that can be absent
// are pointers so a missing value is distinguishable from zero.
type LineRecord struct {
	EID      int64    `json:"eid"`
	MTID     int      `json:"mtid"`
	BOID     int64    `json:"boid"`
	PartID   int      `json:"partid"`
	SBID     int      `json:"sbid"`
	PAID     int      `json:"paid"`
	LineID   int64    `json:"lineid"`
	Adj      *float64 `json:"adj"` // line value: spread or total points
	AP       *float64 `json:"ap"`  // price, American odds
	Wag      *float64 `json:"wag"` // consensus wager volume
	Perc     *float64 `json:"perc"`
	Vol      *float64 `json:"vol"`
	TVol     *float64 `json:"tvol"`
	Sequence int64    `json:"sequence"`
}

// LinesResponse is the decoded batched query result. The three arrays come
// back under aliases chosen by the query builder.
type LinesResponse struct {
	Data struct {
		CurrentLines []LineRecord `json:"A_CL"`
		OpeningLines []LineRecord `json:"A_OL"`
		Consensus    []LineRecord `json:"A_CO"`
	} `json:"data"`
}

// DefaultBookIDs is the fixed roster of tracked sportsbooks (paid values).
var DefaultBookIDs = []int{8, 9, 10, 123, 44, 29, 16, 130, 54, 82, 36, 20, 127, 28, 84}

// OpeningBookID is the single reference book the opening-lines query uses.
const OpeningBookID = 8
