package bmr

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/pkg/season"
)

// ExtractMetadata resolves (season, week) to the site's identifiers, fetches
// the scoreboard page and returns one GameMeta per participant row, in page
// order. Rows come in consecutive pairs per game; the caller checks pairing.
func (c *Client) ExtractMetadata(ctx context.Context, year, week int) ([]models.GameMeta, error) {
	seid, err := season.SeasonID(year)
	if err != nil {
		return nil, err
	}
	egid, err := season.EventGroupID(year, week)
	if err != nil {
		return nil, err
	}

	pageURL := fmt.Sprintf("%s?egid=%d&seid=%d", c.scoreboardURL, egid, seid)
	body, err := c.doRequest(ctx, pageURL, nil)
	if err != nil {
		return nil, err
	}

	return parseScoreboard(body, year, week)
}

func parseScoreboard(body []byte, year, week int) ([]models.GameMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &models.FetchError{Err: fmt.Errorf("parse scoreboard html: %w", err)}
	}

	var metadata []models.GameMeta
	doc.Find("tr.participantRow--z17q").Each(func(_ int, row *goquery.Selection) {
		m := models.GameMeta{
			Season:   year,
			Week:     week,
			EID:      eventIDFromRow(row),
			Rotation: text(row.Find("td.rotation-3JAfZ")),
			Team:     text(row.Find("div.participantName-3CqB8")),
			Score:    text(row.Find("span.score-3EWei")),
			Status:   text(row.Find("span.eventStatusBox-19ZbY")),
		}
		timeCell := row.Find("div.time-3gPvd").First()
		m.Date = text(timeCell.Find("span"))
		m.Time = text(timeCell.Find("p"))

		if id, ok := season.ParticipantID(m.Team); ok {
			m.PartID = id
		}
		metadata = append(metadata, m)
	})

	return metadata, nil
}

// eventIDFromRow pulls the eid query parameter out of the row's game link.
// Returns "" when the link or parameter is missing; such rows are kept so the
// page's pairing structure survives.
func eventIDFromRow(row *goquery.Selection) string {
	href, ok := row.Find("a.link-1Vzcm").First().Attr("href")
	if !ok {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("eid")
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}
