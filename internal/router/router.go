package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/enrollment-portal-api/internal/config"
	"github.com/noah-isme/enrollment-portal-api/internal/handler"
	"github.com/noah-isme/enrollment-portal-api/internal/middleware"
	"github.com/noah-isme/enrollment-portal-api/internal/observability"
	"github.com/noah-isme/enrollment-portal-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProfileHandler          *handler.ProfileHandler
	ActivityLogHandler      *handler.ActivityLogHandler
	SecuritySettingsHandler *handler.SecuritySettingsHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ProfileHandler != nil {
		profile := api.Group("/profile", jwtMiddleware)
		deps.ProfileHandler.Register(profile)
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(service.ElevatedRoles...))

	if deps.ActivityLogHandler != nil {
		logs := admin.Group("/activity-logs",
			middleware.RateLimit("activity-logs", cfg.ActivityRateLimit, cfg.ActivityRateWindow))
		deps.ActivityLogHandler.Register(logs)
	}

	if deps.SecuritySettingsHandler != nil {
		security := admin.Group("/security-settings")
		deps.SecuritySettingsHandler.Register(security)
	}
}
