package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

func RegisterDJRoutes(router chi.Router, db *sql.DB, files services.FileStore, revalidate *services.RevalidateClient) {
	djRepo := repository.NewDJRepository(db)
	djHandler := handlers.NewDJHandler(djRepo, files, revalidate)

	router.Route("/djs", func(r chi.Router) {
		r.Get("/", djHandler.List)
		r.Post("/", djHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", djHandler.Get)
			r.Put("/", djHandler.Update)
			r.Delete("/", djHandler.Delete)
		})
	})
}
