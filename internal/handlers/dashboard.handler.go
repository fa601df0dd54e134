package handlers

import (
	"fmt"

	"lightsout/internal/app"
	dashboardController "lightsout/internal/controllers/dashboard"
	"lightsout/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Handler
	dashboardController dashboardController.DashboardControllerInterface
}

func NewDashboardHandler(app app.App, router fiber.Router) *DashboardHandler {
	log := logger.New("handlers").File("dashboard_handler")
	return &DashboardHandler{
		dashboardController: app.Controllers.Dashboard,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *DashboardHandler) Register() {
	dashboard := h.router.Group("/dashboard")

	dashboard.Get("/", h.getSummary)
	dashboard.Get("/rankings", h.getRankings)
	dashboard.Get("/records", h.getRecords)
	dashboard.Get("/records/export", h.exportRecords)
}

func (h *DashboardHandler) getSummary(c *fiber.Ctx) error {
	log := h.log.Function("getSummary")

	date := c.Query("date", utils.TodayString())

	summary, err := h.dashboardController.Summary(c.UserContext(), date)
	if err != nil {
		log.Info("rejected summary request", "date", date)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	return c.JSON(summary)
}

func (h *DashboardHandler) getRankings(c *fiber.Ctx) error {
	log := h.log.Function("getRankings")

	rankings, err := h.dashboardController.Rankings(c.UserContext())
	if err != nil {
		_ = log.Err("failed to build rankings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build rankings",
		})
	}

	return c.JSON(fiber.Map{"rankings": rankings})
}

func (h *DashboardHandler) getRecords(c *fiber.Ctx) error {
	log := h.log.Function("getRecords")

	filter := dashboardController.RecordFilter{
		Date:     c.Query("date"),
		Building: c.Query("building"),
	}

	records, err := h.dashboardController.Records(c.UserContext(), filter)
	if err != nil {
		_ = log.Err("failed to list records", err, "date", filter.Date, "building", filter.Building)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list records",
		})
	}

	return c.JSON(fiber.Map{"records": records})
}

// exportRecords streams the filtered records as a spreadsheet. CSV carries a
// UTF-8 BOM so Excel renders the Thai headers correctly.
func (h *DashboardHandler) exportRecords(c *fiber.Ctx) error {
	log := h.log.Function("exportRecords")

	filter := dashboardController.RecordFilter{
		Date:     c.Query("date"),
		Building: c.Query("building"),
	}
	format := c.Query("format", "csv")

	var (
		payload     []byte
		contentType string
		extension   string
		err         error
	)

	switch format {
	case "csv":
		payload, err = h.dashboardController.ExportCSV(c.UserContext(), filter)
		contentType = "text/csv; charset=utf-8"
		extension = "csv"
	case "xlsx":
		payload, err = h.dashboardController.ExportXLSX(c.UserContext(), filter)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		extension = "xlsx"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported format, expected csv or xlsx",
		})
	}

	if err != nil {
		_ = log.Err("failed to export records", err, "format", format)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export records",
		})
	}

	filename := fmt.Sprintf("inspection_records_%s.%s", utils.TodayString(), extension)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.Send(payload)
}
