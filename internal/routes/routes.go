package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"stagefront/internal/config"
	"stagefront/internal/middleware"
	"stagefront/internal/models"
	"stagefront/internal/services"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AppURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		dbStatus := map[string]string{"status": "ok"}
		status := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			dbStatus = map[string]string{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"db":     dbStatus,
		})
	})

	files := services.NewS3FileStore(s3Config, log.Logger)
	var revalidate *services.RevalidateClient
	if cfg.RevalidateURL != "" {
		revalidate = services.NewRevalidateClient(cfg.RevalidateURL, cfg.RevalidateToken, log.Logger)
	}

	stopMode := models.StopParseLenient
	if cfg.StrictStopParsing {
		stopMode = models.StopParseStrict
	}

	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, db, cfg)

		r.Route("/public", func(r chi.Router) {
			RegisterPublicRoutes(r, db)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))

			RegisterEventRoutes(r, db, files, revalidate, stopMode)
			RegisterVenueRoutes(r, db, files, revalidate)
			RegisterArtistRoutes(r, db, files, revalidate)
			RegisterDJRoutes(r, db, files, revalidate)
			RegisterGalleryRoutes(r, db, files, revalidate)
			RegisterUploadRoutes(r, files)
			RegisterUserRoutes(r, db)
		})
	})

	return r
}
