// Package rest wires the HTTP surface: routing, CORS, authentication, and
// the dispatch endpoint.
package rest

import (
	"encoding/json"
	"net/http"

	"betterreads-backend/application/resolver"
	"betterreads-backend/interfaces/http/rest/handlers"
	"betterreads-backend/interfaces/http/rest/middleware"
	"betterreads-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	dispatcher *resolver.Dispatcher
	validator  *auth.JWTValidator
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(dispatcher *resolver.Dispatcher, validator *auth.JWTValidator, logger *zap.Logger, enableCORS bool) *Router {
	return &Router{
		dispatcher: dispatcher,
		validator:  validator,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		dispatchHandler := handlers.NewDispatchHandler(rt.dispatcher, rt.logger)
		r.Post("/resolve", dispatchHandler.Resolve)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
