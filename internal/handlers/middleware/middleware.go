package middleware

import (
	"lightsout/config"
	authController "lightsout/internal/controllers/auth"
	"lightsout/internal/database"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB     database.DB
	Config config.Config
	auth   authController.AuthControllerInterface
	log    logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	auth authController.AuthControllerInterface,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:     db,
		Config: config,
		auth:   auth,
		log:    log,
	}
}
