package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/config"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/handlers"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/middleware"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/service"
)

// New builds the HTTP handler. Middleware order is part of the contract:
// request logging runs first, then CORS, then the image existence check, then routing.
func New(cfg *config.Config, lessonService *service.LessonService, orderService *service.OrderService, log *slog.Logger) http.Handler {
	healthHandler := handlers.NewHealthHandler(log)
	lessonHandler := handlers.NewLessonHandler(lessonService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	staticHandler := handlers.NewStaticHandler(cfg.Static.FrontendDir, cfg.Static.ImagesDir, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "api_key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.ImageGuard("/images", cfg.Static.ImagesDir))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Get("/lessons", lessonHandler.ListLessons)
	r.Get("/search", lessonHandler.SearchLessons)
	r.Post("/orders", orderHandler.CreateOrder)
	r.With(middleware.APIKeyAuth(cfg.Auth)).Put("/lessons/{lessonId}", lessonHandler.UpdateLesson)

	r.Get("/images/*", staticHandler.Images)
	r.Get("/", staticHandler.Index)
	r.Get("/*", staticHandler.Frontend)

	return r
}
