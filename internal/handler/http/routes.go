package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/token", h.issueToken)
	})

	// routes scoped to the authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/users", h.createRecord)

		r.Route("/api/users/{userID}", func(r chi.Router) {
			r.Use(h.requireRecordOwner)

			r.Get("/record", h.getRecord)
			r.Put("/favorites", h.putFavorites)
			r.Get("/watch", h.watch)
		})
	})

	return router
}
