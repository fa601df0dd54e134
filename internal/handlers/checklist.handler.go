package handlers

import (
	"errors"

	"lightsout/internal/app"
	"lightsout/internal/campaign"
	checklistController "lightsout/internal/controllers/checklist"
	"lightsout/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ChecklistHandler struct {
	Handler
	checklistController checklistController.ChecklistControllerInterface
}

func NewChecklistHandler(app app.App, router fiber.Router) *ChecklistHandler {
	log := logger.New("handlers").File("checklist_handler")
	return &ChecklistHandler{
		checklistController: app.Controllers.Checklist,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ChecklistHandler) Register() {
	sessions := h.router.Group("/checklist/sessions")

	sessions.Post("/", h.startSession)
	sessions.Get("/:id", h.getSession)
	sessions.Post("/:id/inspector", h.chooseInspector)
	sessions.Post("/:id/building", h.chooseBuilding)
	sessions.Post("/:id/toggle", h.toggleItem)
	sessions.Post("/:id/save-room", h.saveRoom)
	sessions.Post("/:id/save-all", h.saveAll)
	sessions.Delete("/:id", h.resetSession)
}

func (h *ChecklistHandler) startSession(c *fiber.Ctx) error {
	log := h.log.Function("startSession")

	session, err := h.checklistController.Start(c.UserContext())
	if err != nil {
		_ = log.Err("failed to start session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *ChecklistHandler) getSession(c *fiber.Ctx) error {
	session, err := h.checklistController.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(session)
}

func (h *ChecklistHandler) chooseInspector(c *fiber.Ctx) error {
	log := h.log.Function("chooseInspector")

	var request checklistController.ChooseInspectorRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "sessionID", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.checklistController.ChooseInspector(c.UserContext(), c.Params("id"), &request)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(session)
}

func (h *ChecklistHandler) chooseBuilding(c *fiber.Ctx) error {
	log := h.log.Function("chooseBuilding")

	var request checklistController.ChooseBuildingRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "sessionID", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.checklistController.ChooseBuilding(c.UserContext(), c.Params("id"), &request)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(session)
}

func (h *ChecklistHandler) toggleItem(c *fiber.Ctx) error {
	log := h.log.Function("toggleItem")

	var request checklistController.ToggleRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "sessionID", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.checklistController.Toggle(c.UserContext(), c.Params("id"), &request)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(session)
}

func (h *ChecklistHandler) saveRoom(c *fiber.Ctx) error {
	log := h.log.Function("saveRoom")

	var request checklistController.SaveRoomRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "sessionID", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.checklistController.SaveRoom(c.UserContext(), c.Params("id"), &request)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(session)
}

func (h *ChecklistHandler) saveAll(c *fiber.Ctx) error {
	log := h.log.Function("saveAll")

	var request checklistController.SaveAllRequest
	if err := c.BodyParser(&request); err != nil {
		log.Info("invalid request body", "sessionID", c.Params("id"))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.checklistController.SaveAll(c.UserContext(), c.Params("id"), &request)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(response)
}

func (h *ChecklistHandler) resetSession(c *fiber.Ctx) error {
	if err := h.checklistController.Reset(c.UserContext(), c.Params("id")); err != nil {
		return h.sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// sessionError translates controller and session state errors into stable
// status codes so the client can branch on them.
func (h *ChecklistHandler) sessionError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors

	switch {
	case errors.Is(err, checklistController.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found or expired",
		})
	case errors.Is(err, campaign.ErrSubstitutionNotConfirmed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":                "Inspector is not on duty today",
			"confirmationRequired": true,
		})
	case errors.Is(err, checklistController.ErrConfirmationRequired):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":                "Saving all rooms requires confirmation",
			"confirmationRequired": true,
		})
	case errors.Is(err, campaign.ErrInvalidPhase):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Action not allowed in the current session state",
		})
	case errors.Is(err, checklistController.ErrUnknownBuilding),
		errors.Is(err, campaign.ErrUnknownRoom),
		errors.Is(err, campaign.ErrUnknownItem),
		errors.Is(err, campaign.ErrNoCandidates):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
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

	_ = h.log.Function("sessionError").Err("session request failed", err, "sessionID", c.Params("id"))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
