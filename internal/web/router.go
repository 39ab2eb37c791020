package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func getRouter(h *handlers, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Scrape requests block on two upstream calls, so the per-request budget
	// is generous compared to a typical API timeout.
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", h.ping)
	r.Get("/health", h.health)

	r.Route("/scrape/{season:\\d+}/{week:\\d+}", func(r chi.Router) {
		r.Get("/", h.scrapeWeek)
	})
	r.Get("/games/{season:\\d+}/{week:\\d+}", h.gamesWeek)
	r.Get("/meta/{season:\\d+}/{week:\\d+}", h.metaWeek)
	r.Get("/archive/{season:\\d+}/{week:\\d+}", h.archiveWeek)

	return r
}
