package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/config"
	"stagefront/internal/handlers"
	"stagefront/internal/repository"
	"stagefront/internal/services"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	mailer := &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}

	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	authHandler := handlers.NewAuthHandler(userRepo, resetRepo, mailer, cfg.JWTSecret, cfg.JWTExpiresInSeconds, cfg.AppURL)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
	})
}
