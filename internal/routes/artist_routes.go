package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

func RegisterArtistRoutes(router chi.Router, db *sql.DB, files services.FileStore, revalidate *services.RevalidateClient) {
	artistRepo := repository.NewArtistRepository(db)
	artistHandler := handlers.NewArtistHandler(artistRepo, files, revalidate)

	router.Route("/artists", func(r chi.Router) {
		r.Get("/", artistHandler.List)
		r.Post("/", artistHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", artistHandler.Get)
			r.Put("/", artistHandler.Update)
			r.Delete("/", artistHandler.Delete)
		})
	})
}
