package web

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)

	static, _ := fs.Sub(content, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/fragments/cards/{id}", s.handleCardFragment)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.bodySizeLimitMiddleware)

		r.Get("/cards", s.handleListCards)
		r.Get("/cards/{id}", s.handleGetCard)
		r.Post("/cards/{id}/actions", s.handleAction)
		r.Put("/cards/{id}/room", s.handleSetRoom)
		r.Get("/events", s.handleEvents)
	})

	return r
}
