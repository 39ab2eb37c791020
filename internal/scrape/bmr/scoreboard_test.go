package bmr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdvs/nflodds/internal/pkg/config"
	"github.com/kdvs/nflodds/internal/pkg/models"
)

const scoreboardFixture = `<html><body>
<div class="gridContainer-O4ezT"><table class="tableGrid-2PF6A"><tbody>
<tr class="participantRow--z17q">
  <td class="timeContainer-3yNjf">
    <span class="eventStatusBox-19ZbY">FINAL</span>
    <div class="time-3gPvd"><span>SEP 6</span><p>8:20 PM</p></div>
  </td>
  <td class="rotation-3JAfZ">101</td>
  <td><div class="participantName-3CqB8">Atlanta</div> <span class="score-3EWei">12</span></td>
  <td><a class="link-1Vzcm" href="/nfl/matchup/?eid=3424988&amp;egid=10&amp;seid=4494">line history</a></td>
</tr>
<tr class="participantRow--z17q">
  <td class="rotation-3JAfZ">102</td>
  <td><div class="participantName-3CqB8">Philadelphia</div> <span class="score-3EWei">18</span></td>
  <td><a class="link-1Vzcm" href="/nfl/matchup/?eid=3424988&amp;egid=10&amp;seid=4494">line history</a></td>
</tr>
<tr class="participantRow--z17q">
  <td class="timeContainer-3yNjf">
    <div class="time-3gPvd"><span>SEP 9</span><p>1:00 PM</p></div>
  </td>
  <td class="rotation-3JAfZ">103</td>
  <td><div class="participantName-3CqB8">Oakland</div></td>
  <td><a class="link-1Vzcm" href="/nfl/matchup/?eid=3424999&amp;egid=10&amp;seid=4494">line history</a></td>
</tr>
<tr class="participantRow--z17q">
  <td class="rotation-3JAfZ">104</td>
  <td><div class="participantName-3CqB8">L.A. Chargers</div></td>
</tr>
</tbody></table></div>
</body></html>`

func TestParseScoreboard(t *testing.T) {
	meta, err := parseScoreboard([]byte(scoreboardFixture), 2018, 1)
	require.NoError(t, err)
	require.Len(t, meta, 4)

	assert.Equal(t, models.GameMeta{
		EID:      "3424988",
		Season:   2018,
		Week:     1,
		Rotation: "101",
		Team:     "Atlanta",
		PartID:   1546,
		Date:     "SEP 6",
		Time:     "8:20 PM",
		Score:    "12",
		Status:   "FINAL",
	}, meta[0])

	// second row of the pair shares the event id
	assert.Equal(t, "3424988", meta[1].EID)
	assert.Equal(t, "Philadelphia", meta[1].Team)
	assert.Equal(t, 1536, meta[1].PartID)

	// relocated franchise label resolves to the current participant id
	assert.Equal(t, 1533, meta[2].PartID)
	assert.Empty(t, meta[2].Score)

	// a row without a game link keeps its place with an empty event id
	assert.Equal(t, "", meta[3].EID)
	assert.Equal(t, 75380, meta[3].PartID)
}

func TestExtractMetadata(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.Write([]byte(scoreboardFixture))
	}))
	defer srv.Close()

	c := NewClient(&config.ScrapeConfig{ScoreboardURL: srv.URL, Timeout: 5 * time.Second})
	meta, err := c.ExtractMetadata(context.Background(), 2018, 1)
	require.NoError(t, err)
	assert.Len(t, meta, 4)
	assert.Equal(t, "/?egid=10&seid=4494", gotPath)
}

func TestExtractMetadataUnknownSlate(t *testing.T) {
	c := NewClient(&config.ScrapeConfig{ScoreboardURL: "http://127.0.0.1:0"})
	_, err := c.ExtractMetadata(context.Background(), 1999, 1)

	var confErr *models.ConfigurationError
	require.True(t, errors.As(err, &confErr), "want ConfigurationError, got %v", err)
}

func TestExtractMetadataFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(&config.ScrapeConfig{ScoreboardURL: srv.URL, Timeout: 5 * time.Second})
	_, err := c.ExtractMetadata(context.Background(), 2018, 1)

	var fetchErr *models.FetchError
	require.True(t, errors.As(err, &fetchErr), "want FetchError, got %v", err)
	assert.Equal(t, http.StatusForbidden, fetchErr.Status)
}
