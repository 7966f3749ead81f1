package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/mvillagran/securedocs/internal/handlers"
	"github.com/mvillagran/securedocs/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	userHandler *handlers.UserHandler,
	entryHandler *handlers.EntryHandler,
	resetHandler *handlers.ResetHandler,
) {
	// The reset endpoint is public and abusable, so it gets its own limit
	rateLimitConfig := middleware.DefaultResetRateLimit()
	router.With(middleware.RateLimitByIP(rateLimitConfig)).
		Post("/users/forgot-password", resetHandler.ForgotPassword)

	userHandler.RegisterRoutes(router)
	entryHandler.RegisterRoutes(router)
}
