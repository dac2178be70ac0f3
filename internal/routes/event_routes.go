package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/models"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

func RegisterEventRoutes(router chi.Router, db *sql.DB, files services.FileStore, revalidate *services.RevalidateClient, stopMode models.StopParseMode) {
	eventRepo := repository.NewEventRepository(db)
	eventHandler := handlers.NewEventHandler(eventRepo, files, revalidate, stopMode)

	router.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.Post("/", eventHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", eventHandler.Get)
			r.Put("/", eventHandler.Update)
			r.Delete("/", eventHandler.Delete)
		})
	})
}
