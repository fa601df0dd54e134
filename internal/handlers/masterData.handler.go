package handlers

import (
	"lightsout/internal/app"
	"lightsout/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type MasterDataHandler struct {
	Handler
	masterDataRepo repositories.MasterDataRepository
}

func NewMasterDataHandler(app app.App, router fiber.Router) *MasterDataHandler {
	log := logger.New("handlers").File("masterData_handler")
	return &MasterDataHandler{
		masterDataRepo: app.Repository.MasterData,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MasterDataHandler) Register() {
	h.router.Get("/master-data", h.getMasterData)
}

// getMasterData serves buildings, inspectors, roster, and campaign dates in a
// single payload. The repository caches the aggregate, so this stays cheap even
// though every client loads it on startup.
func (h *MasterDataHandler) getMasterData(c *fiber.Ctx) error {
	log := h.log.Function("getMasterData")

	masterData, err := h.masterDataRepo.Get(c.UserContext())
	if err != nil {
		_ = log.Err("failed to load master data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load master data",
		})
	}

	return c.JSON(masterData)
}
