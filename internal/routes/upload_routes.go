package routes

import (
	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/services"
)

func RegisterUploadRoutes(router chi.Router, files services.FileStore) {
	uploadHandler := handlers.NewUploadHandler(files)

	router.Post("/uploads", uploadHandler.Upload)
}
