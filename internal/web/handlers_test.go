package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdvs/nflodds/internal/pkg/models"
)

type stubRunner struct {
	table  *models.MergedTable
	report models.MergeReport
	meta   []models.GameMeta
	err    error
}

func (s *stubRunner) Run(_ context.Context, _, _ int) (*models.MergedTable, models.MergeReport, error) {
	if s.err != nil {
		return nil, models.MergeReport{}, s.err
	}
	return s.table, s.report, nil
}

func (s *stubRunner) Meta(_ context.Context, _, _ int) ([]models.GameMeta, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.meta, nil
}

func stubTable() *models.MergedTable {
	return &models.MergedTable{
		OddsColumns: []string{"spread_8"},
		Rows: []models.MergedRow{
			{
				Meta: models.GameMeta{EID: "1", Season: 2018, Week: 1, Rotation: "101", Team: "Atlanta", PartID: 1546},
				Odds: map[string]float64{"spread_8": -1.5},
			},
			{
				Meta: models.GameMeta{EID: "1", Season: 2018, Week: 1, Rotation: "102", Team: "Philadelphia", PartID: 1536},
				Odds: map[string]float64{"spread_8": 1.5},
			},
		},
	}
}

type stubArchive struct {
	weeks map[string][]byte
}

func archiveKey(season, week int) string {
	return fmt.Sprintf("%d/%d", season, week)
}

func (s *stubArchive) StoreWeek(_ context.Context, season, week int, _ models.MergeReport, csvData []byte) error {
	s.weeks[archiveKey(season, week)] = csvData
	return nil
}

func (s *stubArchive) GetWeek(_ context.Context, season, week int) ([]byte, error) {
	return s.weeks[archiveKey(season, week)], nil
}

func (s *stubArchive) Close() error { return nil }

func newTestServer(runner *stubRunner) *httptest.Server {
	h := &handlers{runner: runner}
	return httptest.NewServer(getRouter(h, time.Minute))
}

func newArchiveServer(runner *stubRunner, archive *stubArchive) *httptest.Server {
	h := &handlers{runner: runner, archive: archive}
	return httptest.NewServer(getRouter(h, time.Minute))
}

func TestPing(t *testing.T) {
	srv := newTestServer(&stubRunner{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestScrapeWeek(t *testing.T) {
	runner := &stubRunner{
		table:  stubTable(),
		report: models.MergeReport{Rows: 2, Matched: 2},
	}
	srv := newTestServer(runner)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/scrape/2018/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, "2", resp.Header.Get("X-Row-Count"))
	assert.Equal(t, "0", resp.Header.Get("X-Unmatched-Rows"))

	body := readBody(t, resp)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "season,week,eid,"))
	assert.True(t, strings.HasSuffix(lines[0], ",spread_8"))
}

func TestScrapeWeekRejectsNonNumericParams(t *testing.T) {
	srv := newTestServer(&stubRunner{table: stubTable()})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/scrape/nope/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	// route pattern only admits digits
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGamesWeek(t *testing.T) {
	srv := newTestServer(&stubRunner{table: stubTable(), report: models.MergeReport{Rows: 2}})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/games/2018/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	lines := strings.Split(strings.TrimSpace(readBody(t, resp)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2018_01_ATL_PHI,"))
}

func TestMetaWeek(t *testing.T) {
	runner := &stubRunner{
		meta: []models.GameMeta{{EID: "1", Season: 2018, Week: 1, Rotation: "101", Team: "Atlanta", PartID: 1546}},
	}
	srv := newTestServer(runner)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/meta/2018/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta []models.GameMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	require.Len(t, meta, 1)
	assert.Equal(t, "Atlanta", meta[0].Team)
}

func TestArchiveWeek(t *testing.T) {
	archive := &stubArchive{weeks: map[string][]byte{
		archiveKey(2018, 1): []byte("season,week,eid\n2018,1,1\n"),
	}}
	srv := newArchiveServer(&stubRunner{}, archive)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/archive/2018/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, "season,week,eid\n2018,1,1\n", readBody(t, resp))
}

func TestArchiveWeekNotStored(t *testing.T) {
	srv := newArchiveServer(&stubRunner{}, &stubArchive{weeks: map[string][]byte{}})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/archive/2018/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestArchiveWeekDisabled(t *testing.T) {
	srv := newTestServer(&stubRunner{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/archive/2018/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"configuration", &models.ConfigurationError{Season: 1999, Week: 1, Reason: "season not tracked"}, http.StatusBadRequest},
		{"fetch", &models.FetchError{URL: "https://example.com", Status: 503}, http.StatusBadGateway},
		{"malformed", &models.MalformedResponseError{Detail: "current lines array is empty"}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&stubRunner{err: tt.err})
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/scrape/2018/1")
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var b strings.Builder
	_, err := io.Copy(&b, resp.Body)
	require.NoError(t, err)
	return b.String()
}
