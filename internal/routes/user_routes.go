package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/handlers"
	"stagefront/internal/middleware"
	"stagefront/internal/models"
	"stagefront/internal/repository"
)

// User management is admin-only; editors never see this subtree.
func RegisterUserRoutes(router chi.Router, db *sql.DB) {
	userRepo := repository.NewUserRepository(db)
	userHandler := handlers.NewUserHandler(userRepo)

	router.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/role", userHandler.SetRole)
			r.Delete("/", userHandler.Delete)
		})
	})
}
