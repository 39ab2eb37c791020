package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kdvs/nflodds/internal/pipeline"
	"github.com/kdvs/nflodds/internal/pkg/models"
	"github.com/kdvs/nflodds/internal/pkg/storage"
)

// Runner is the slice of the pipeline the handlers need.
type Runner interface {
	Run(ctx context.Context, season, week int) (*models.MergedTable, models.MergeReport, error)
	Meta(ctx context.Context, season, week int) ([]models.GameMeta, error)
}

type handlers struct {
	runner  Runner
	archive storage.WeeklyArchive // nil when no DSN is configured
}

func (h *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// scrapeWeek runs the full pipeline and answers with the per-team CSV. The
// reconciliation report rides along in headers so batch callers can watch
// data quality without parsing the body.
func (h *handlers) scrapeWeek(w http.ResponseWriter, r *http.Request) {
	season, week, ok := slateParams(w, r)
	if !ok {
		return
	}

	table, report, err := h.runner.Run(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := pipeline.WriteCSV(&buf, table); err != nil {
		writeError(w, err)
		return
	}

	if h.archive != nil {
		if err := h.archive.StoreWeek(r.Context(), season, week, report, buf.Bytes()); err != nil {
			slog.Error("Failed to archive week", "season", season, "week", week, "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("X-Row-Count", strconv.Itoa(report.Rows))
	w.Header().Set("X-Unmatched-Rows", strconv.Itoa(report.UnmatchedMeta))
	w.Header().Set("X-Dropped-Odds-Rows", strconv.Itoa(report.DroppedOdds))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// gamesWeek answers with the one-row-per-game CSV keyed for the games-dataset
// join.
func (h *handlers) gamesWeek(w http.ResponseWriter, r *http.Request) {
	season, week, ok := slateParams(w, r)
	if !ok {
		return
	}

	table, report, err := h.runner.Run(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := pipeline.WriteGameCSV(&buf, table); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("X-Unmatched-Rows", strconv.Itoa(report.UnmatchedMeta))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// archiveWeek serves the stored copy of a previously scraped week without
// touching the upstream site.
func (h *handlers) archiveWeek(w http.ResponseWriter, r *http.Request) {
	season, week, ok := slateParams(w, r)
	if !ok {
		return
	}
	if h.archive == nil {
		http.Error(w, "weekly archive is not configured", http.StatusNotFound)
		return
	}

	data, err := h.archive.GetWeek(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}
	if data == nil {
		http.Error(w, fmt.Sprintf("season %d week %d is not archived", season, week), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *handlers) metaWeek(w http.ResponseWriter, r *http.Request) {
	season, week, ok := slateParams(w, r)
	if !ok {
		return
	}

	meta, err := h.runner.Meta(r.Context(), season, week)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meta)
}

func slateParams(w http.ResponseWriter, r *http.Request) (season, week int, ok bool) {
	season, err1 := strconv.Atoi(chi.URLParam(r, "season"))
	week, err2 := strconv.Atoi(chi.URLParam(r, "week"))
	if err1 != nil || err2 != nil {
		http.Error(w, "season and week must be integers", http.StatusBadRequest)
		return 0, 0, false
	}
	return season, week, true
}

// writeError maps the pipeline error taxonomy to status codes, keeping the
// upstream detail in the body so a failed week is diagnosable from the caller
// side.
func writeError(w http.ResponseWriter, err error) {
	var confErr *models.ConfigurationError
	var fetchErr *models.FetchError
	var malformedErr *models.MalformedResponseError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &confErr):
		status = http.StatusBadRequest
	case errors.As(err, &fetchErr), errors.As(err, &malformedErr):
		status = http.StatusBadGateway
	}
	http.Error(w, fmt.Sprintf("%v", err), status)
}
