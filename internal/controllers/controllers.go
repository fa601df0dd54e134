package controllers

import (
	"lightsout/config"
	"lightsout/internal/database"
	"lightsout/internal/repositories"
	"lightsout/internal/services"

	adminController "lightsout/internal/controllers/admin"
	authController "lightsout/internal/controllers/auth"
	checklistController "lightsout/internal/controllers/checklist"
	dashboardController "lightsout/internal/controllers/dashboard"
)

type Controllers struct {
	Checklist checklistController.ChecklistControllerInterface
	Dashboard dashboardController.DashboardControllerInterface
	Admin     adminController.AdminControllerInterface
	Auth      authController.AuthControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Checklist: checklistController.New(repos, config, db),
		Dashboard: dashboardController.New(repos, config, db),
		Admin:     adminController.New(repos, services, config, db),
		Auth:      authController.New(config),
	}
}
