package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/platform/metrics"
)

func NewRouter(h *Handler, log *zap.Logger, m *metrics.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(log))
	r.Use(Metrics(m))

	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", h.ListListings)
		r.Post("/listings", h.CreateListing)
		r.Get("/listings/{id}", h.GetListing)

		r.Post("/favorites/{id}", h.ToggleFavorite)
		r.Get("/favorites", h.GetFavorites)

		r.Get("/view", h.GetView)
		r.Post("/view", h.UpdateView)
	})

	return r
}
