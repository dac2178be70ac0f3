package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/repository"
)

func RegisterPublicRoutes(router chi.Router, db *sql.DB) {
	publicHandler := handlers.NewPublicHandler(
		repository.NewPublicEventRepository(db),
		repository.NewGalleryRepository(db),
		repository.NewDJRepository(db),
	)

	router.Route("/events", func(r chi.Router) {
		r.Get("/", publicHandler.ListEvents)
		r.Get("/upcoming", publicHandler.ListUpcomingEvents)
		r.Get("/featured", publicHandler.GetFeaturedEvent)
		r.Get("/for-city", publicHandler.GetEventForCity)
		r.Get("/{slug}", publicHandler.GetEventBySlug)
	})

	router.Route("/galleries", func(r chi.Router) {
		r.Get("/", publicHandler.ListGalleries)
		r.Get("/{slug}", publicHandler.GetGalleryBySlug)
	})

	router.Get("/djs", publicHandler.ListDJs)
}
