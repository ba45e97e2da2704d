package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/finance-api/internal/api"
	apiMiddleware "github.com/phrazzld/finance-api/internal/api/middleware"
)

// requestTimeout bounds the handling time of a single API request.
const requestTimeout = 30 * time.Second

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	if len(app.config.CORS.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: app.config.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	userHandler := api.NewUserHandler(app.userService, app.jwtService, app.logger)
	entryHandler := api.NewEntryHandler(app.entryService, app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/users/authenticate", userHandler.Authenticate)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/{id}", userHandler.GetUser)

			r.Get("/entries", entryHandler.SearchEntries)
			r.Post("/entries", entryHandler.CreateEntry)
			r.Get("/entries/{id}", entryHandler.GetEntry)
			r.Put("/entries/{id}", entryHandler.UpdateEntry)
			r.Put("/entries/{id}/status", entryHandler.UpdateStatus)
			r.Delete("/entries/{id}", entryHandler.DeleteEntry)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
