package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)

	// The websocket route skips access logging and compression: both wrap
	// the ResponseWriter and would break the connection hijack performed by
	// the upgrader.
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/ws", h.subscribeEvents)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.withLogging)
		r.Use(withGZip)
		r.Use(h.auth)
		r.Post("/api/sync", h.sync)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
