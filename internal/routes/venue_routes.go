package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

func RegisterVenueRoutes(router chi.Router, db *sql.DB, files services.FileStore, revalidate *services.RevalidateClient) {
	venueRepo := repository.NewVenueRepository(db)
	venueHandler := handlers.NewVenueHandler(venueRepo, files, revalidate)

	router.Route("/venues", func(r chi.Router) {
		r.Get("/", venueHandler.List)
		r.Post("/", venueHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", venueHandler.Get)
			r.Put("/", venueHandler.Update)
			r.Delete("/", venueHandler.Delete)
		})
	})
}
