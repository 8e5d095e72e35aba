// Package rest wires the HTTP surface: router, middleware stack, and the
// verb/path to service mapping.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"nexus-backend/interfaces/http/rest/handlers"
	"nexus-backend/interfaces/http/rest/middleware"
	"nexus-backend/internal/application/services"
	"nexus-backend/pkg/observability"
)

// Router creates and configures the HTTP router.
type Router struct {
	vault          *services.VaultService
	versions       *services.VersionService
	settings       *services.SettingsService
	logger         *zap.Logger
	metrics        *observability.Collector
	allowedOrigins []string
	enableMetrics  bool
}

// NewRouter creates a new router instance.
func NewRouter(
	vault *services.VaultService,
	versions *services.VersionService,
	settings *services.SettingsService,
	logger *zap.Logger,
	metrics *observability.Collector,
	allowedOrigins []string,
	enableMetrics bool,
) *Router {
	return &Router{
		vault:          vault,
		versions:       versions,
		settings:       settings,
		logger:         logger,
		metrics:        metrics,
		allowedOrigins: allowedOrigins,
		enableMetrics:  enableMetrics,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.enableMetrics && rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/", rt.healthCheck)
	router.Get("/health", rt.healthCheck)

	if rt.enableMetrics && rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		stateHandler := handlers.NewStateHandler(rt.vault, rt.logger)
		r.Get("/state", stateHandler.Get)
		r.Post("/state", stateHandler.Replace)
		r.Get("/export", stateHandler.Get)
		r.Post("/import", stateHandler.Replace)

		itemHandler := handlers.NewItemHandler(rt.vault, rt.logger)
		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Post("/", itemHandler.Create)
			r.Post("/toggle-category", itemHandler.ToggleCategory)
			r.Put("/{itemID}", itemHandler.Update)
			r.Delete("/{itemID}", itemHandler.Delete)
			r.Put("/{itemID}/remove-category", itemHandler.RemoveCategory)
		})
		r.Post("/upload", itemHandler.Upload)

		batchHandler := handlers.NewBatchHandler(rt.vault, rt.logger)
		r.Route("/batch", func(r chi.Router) {
			r.Post("/add-tags", batchHandler.AddTags)
			r.Post("/edit", batchHandler.Edit)
			r.Post("/delete", batchHandler.Delete)
			r.Post("/remove-categories", batchHandler.RemoveCategories)
		})

		categoryHandler := handlers.NewCategoryHandler(rt.vault, rt.logger)
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categoryHandler.Create)
			r.Put("/{categoryID}", categoryHandler.Update)
			r.Delete("/{categoryID}", categoryHandler.Delete)
		})

		versionHandler := handlers.NewVersionHandler(rt.versions, rt.logger)
		r.Route("/versions", func(r chi.Router) {
			r.Get("/", versionHandler.List)
			r.Post("/", versionHandler.Create)
			r.Delete("/{versionID}", versionHandler.Delete)
		})

		settingsHandler := handlers.NewSettingsHandler(rt.settings, rt.logger)
		r.Get("/settings", settingsHandler.Get)
		r.Put("/settings", settingsHandler.Update)
	})

	return router
}

// healthCheck handles health check requests.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","message":"Nexus Vault API Server"}`))
}
