package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

func RegisterGalleryRoutes(router chi.Router, db *sql.DB, files services.FileStore, revalidate *services.RevalidateClient) {
	galleryRepo := repository.NewGalleryRepository(db)
	galleryHandler := handlers.NewGalleryHandler(galleryRepo, files, revalidate)

	router.Route("/galleries", func(r chi.Router) {
		r.Get("/", galleryHandler.List)
		r.Post("/", galleryHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", galleryHandler.Get)
			r.Put("/", galleryHandler.Update)
			r.Delete("/", galleryHandler.Delete)
		})
	})
}
