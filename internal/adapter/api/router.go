package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BuildInfo struct {
	Version     string
	Environment string
}

func SetupRouter(app *fiber.App, pages *PageHandler, predictions *PredictionHandler, info BuildInfo) {
	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": info.Version,
			"env":     info.Environment,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", pages.HandleIndex)
	app.Get("/index.html", pages.HandleIndex)
	app.Get("/prediction.txt", predictions.HandlePredictionText)

	v1 := app.Group("/v1")
	v1.Post("/predictions/refresh", predictions.HandleRefresh)
}
