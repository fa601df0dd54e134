package app

import (
	"lightsout/config"
	"lightsout/internal/controllers"
	"lightsout/internal/database"
	"lightsout/internal/handlers/middleware"
	"lightsout/internal/repositories"
	"lightsout/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	Services    services.Service
	Repository  repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	appServices := services.New(db)
	repos := repositories.New(db)
	appControllers := controllers.New(appServices, repos, config, db)
	appMiddleware := middleware.New(db, config, appControllers.Auth)

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  appMiddleware,
		Services:    appServices,
		Repository:  repos,
		Controllers: appControllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Repository.Building,
		a.Repository.Inspector,
		a.Repository.Roster,
		a.Repository.Record,
		a.Repository.MasterData,
		a.Repository.Session,
		a.Controllers.Checklist,
		a.Controllers.Dashboard,
		a.Controllers.Admin,
		a.Controllers.Auth,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
