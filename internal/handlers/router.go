package handlers

import (
	"lightsout/internal/app"
	"lightsout/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewMasterDataHandler(*app, api).Register()
	NewDashboardHandler(*app, api).Register()
	NewChecklistHandler(*app, api).Register()
	NewAuthHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}
