package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// version is public so health probes work without a token
	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/state", h.getState)
		r.Post("/api/lifecycle/{state}", h.postLifecycle)
		r.Post("/api/channels/read", h.markAllRead)
	})

	return router
}
