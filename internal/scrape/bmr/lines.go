package bmr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kdvs/nflodds/internal/pkg/models"
)

// FetchLines issues the single batched query for a week's slate: current
// lines across the full book roster, opening lines from the reference book,
// and betting consensus. The whole slate fits in one response because eids is
// bounded to one week (~16 events).
func (c *Client) FetchLines(ctx context.Context, eids []string, markets []models.Market, books []int) (*LinesResponse, error) {
	if len(eids) == 0 {
		return nil, &models.MalformedResponseError{Detail: "no event ids to query"}
	}
	if len(books) == 0 {
		books = DefaultBookIDs
	}

	query := buildLinesQuery(eids, markets, books)
	reqURL := c.oddsURL + "?query=" + url.QueryEscape(query)

	body, err := c.doRequest(ctx, reqURL, map[string]string{
		"Accept":           "application/json",
		"Referer":          c.scoreboardURL,
		"X-Requested-With": "XMLHttpRequest",
	})
	if err != nil {
		return nil, err
	}

	var resp LinesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &models.MalformedResponseError{Detail: fmt.Sprintf("decode: %v", err)}
	}
	return &resp, nil
}

// buildLinesQuery renders the service's query shape: three aliased result
// sets filtered to the same events and markets, with one trailing field list.
func buildLinesQuery(eids []string, markets []models.Market, books []int) string {
	eidList := strings.Join(eids, ",")
	mtidList := joinInts(marketCodes(markets))
	paidList := joinInts(books)

	var b strings.Builder
	b.WriteString("{")
	fmt.Fprintf(&b, "A_CL: currentLines(paid: [%s], eid: [%s], mtid: [%s]) ", paidList, eidList, mtidList)
	fmt.Fprintf(&b, "A_OL: openingLines(paid: %d, eid: [%s], mtid: [%s]) ", OpeningBookID, eidList, mtidList)
	fmt.Fprintf(&b, "A_CO: consensus(eid: [%s], mtid: [%s]) ", eidList, mtidList)
	b.WriteString("{ eid mtid boid partid sbid paid lineid adj ap wag perc vol tvol sequence tim } ")
	b.WriteString("}")
	return b.String()
}

func marketCodes(markets []models.Market) []int {
	codes := make([]int, len(markets))
	for i, m := range markets {
		codes[i] = int(m)
	}
	return codes
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
