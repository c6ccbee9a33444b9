package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/priyanshuguptaiit99/pronetwork/internal/config"
	"github.com/priyanshuguptaiit99/pronetwork/internal/handler"
	"github.com/priyanshuguptaiit99/pronetwork/internal/middleware"
	"github.com/priyanshuguptaiit99/pronetwork/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	PostHandler         *handler.PostHandler
	MessageHandler      *handler.MessageHandler
	StatusHandler       *handler.StatusHandler
	NotificationHandler *handler.NotificationHandler
	WSHandler           *handler.WSHandler
	JWTMiddleware       fiber.Handler
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

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/", jwtMiddleware))
	}

	if deps.PostHandler != nil {
		deps.PostHandler.Register(api.Group("/posts", jwtMiddleware))
	}

	if deps.MessageHandler != nil {
		deps.MessageHandler.Register(api.Group("/", jwtMiddleware))
	}

	if deps.StatusHandler != nil {
		deps.StatusHandler.Register(api.Group("/statuses", jwtMiddleware))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications", jwtMiddleware))
	}

	// Identity for the realtime channel arrives in-band via the
	// register event, matching the wire protocol clients already speak.
	if deps.WSHandler != nil {
		deps.WSHandler.Register(api)
	}
}
