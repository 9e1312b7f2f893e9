package controller

import (
	"notes-api/internal/pkg/serverutils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Router interface {
	RegisterRoutes(r fiber.Router)
}

type AppConfig struct {
	BodyLimit        int
	CORSAllowOrigins string
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// NewApp builds the Fiber application with the shared middleware stack and
// registers every router on it.
func NewApp(cfg AppConfig, routers ...Router) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "notes-api",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          serverutils.WriteError,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	// The logger hands handler errors to fiber.Config.ErrorHandler itself, so
	// WriteError must be the app error handler as well as the middleware.
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(serverutils.ErrorHandlerMiddleware())
	app.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	for _, r := range routers {
		r.RegisterRoutes(app)
	}

	return app
}

func corsConfig(origins string) cors.Config {
	origins = strings.TrimSpace(origins)
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: origins != "*",
	}
}
