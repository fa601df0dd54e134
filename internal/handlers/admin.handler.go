package handlers

import (
	"errors"

	"lightsout/internal/app"
	adminController "lightsout/internal/controllers/admin"
	"lightsout/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAdmin())

	inspectors := admin.Group("/inspectors")
	inspectors.Post("/", h.createInspector)
	inspectors.Put("/:id", h.updateInspector)
	inspectors.Delete("/:id", h.deleteInspector)

	roster := admin.Group("/roster")
	roster.Post("/", h.createRosterEntry)
	roster.Delete("/:id", h.deleteRosterEntry)
}

func (h *AdminHandler) createInspector(c *fiber.Ctx) error {
	log := h.log.Function("createInspector")

	var request adminController.CreateInspectorRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	inspector, err := h.adminController.CreateInspector(c.UserContext(), &request)
	if err != nil {
		return h.adminError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(inspector)
}

func (h *AdminHandler) updateInspector(c *fiber.Ctx) error {
	log := h.log.Function("updateInspector")

	var request adminController.UpdateInspectorRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "id", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	inspector, err := h.adminController.UpdateInspector(c.UserContext(), c.Params("id"), &request)
	if err != nil {
		return h.adminError(c, err)
	}

	return c.JSON(inspector)
}

func (h *AdminHandler) deleteInspector(c *fiber.Ctx) error {
	if err := h.adminController.DeleteInspector(c.UserContext(), c.Params("id")); err != nil {
		return h.adminError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) createRosterEntry(c *fiber.Ctx) error {
	log := h.log.Function("createRosterEntry")

	var request adminController.CreateRosterEntryRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.adminController.CreateRosterEntry(c.UserContext(), &request)
	if err != nil {
		return h.adminError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *AdminHandler) deleteRosterEntry(c *fiber.Ctx) error {
	if err := h.adminController.DeleteRosterEntry(c.UserContext(), c.Params("id")); err != nil {
		return h.adminError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) adminError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.As(err, &validationErrors):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	case errors.Is(err, database.ErrStoreNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Database is not configured",
		})
	}

	_ = h.log.Function("adminError").Err("admin request failed", err, "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
