package http

import (
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/http/handler"
	httpmiddleware "github.com/Chandan-Choubey/Export-Csv/internal/adapter/http/middleware"
	"github.com/Chandan-Choubey/Export-Csv/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает HTTP роутер
func NewRouter(
	exportHandler *handler.ExportHandler,
	healthHandler *handler.HealthHandler,
	corsCfg config.CORSConfig,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition", "X-Export-ID"},
	}).Handler)
	// Архивы уже сжаты, сжимаются только текстовые ответы
	r.Use(middleware.Compress(5, "text/plain", "application/json"))

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Check)

	r.Post("/convert", exportHandler.Convert)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/exports", func(r chi.Router) {
			r.Get("/", exportHandler.List)
			r.Get("/{id}", exportHandler.Get)
		})
	})

	return r
}
