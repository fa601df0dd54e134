package adminController

import (
	"context"

	"lightsout/config"
	contextutil "lightsout/internal/context"
	"lightsout/internal/database"
	. "lightsout/internal/models"
	"lightsout/internal/repositories"
	"lightsout/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type AdminController struct {
	inspectorRepo      repositories.InspectorRepository
	rosterRepo         repositories.RosterRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
	validate           *validator.Validate
	log                logger.Logger
}

type CreateInspectorRequest struct {
	Name            string `json:"name"            validate:"required"`
	ImageURL        string `json:"imageUrl"        validate:"omitempty,url"`
	DefaultBuilding string `json:"defaultBuilding"`
}

type UpdateInspectorRequest struct {
	Name            *string `json:"name,omitempty"            validate:"omitempty,min=1"`
	ImageURL        *string `json:"imageUrl,omitempty"        validate:"omitempty,url"`
	DefaultBuilding *string `json:"defaultBuilding,omitempty"`
}

type CreateRosterEntryRequest struct {
	DayIndex      int    `json:"dayIndex"      validate:"required,min=1,max=5"`
	InspectorName string `json:"inspectorName" validate:"required"`
	BuildingID    string `json:"buildingId"    validate:"required"`
}

type AdminControllerInterface interface {
	CreateInspector(ctx context.Context, request *CreateInspectorRequest) (*Inspector, error)
	UpdateInspector(ctx context.Context, id string, request *UpdateInspectorRequest) (*Inspector, error)
	DeleteInspector(ctx context.Context, id string) error
	CreateRosterEntry(ctx context.Context, request *CreateRosterEntryRequest) (*RosterEntry, error)
	DeleteRosterEntry(ctx context.Context, id string) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) AdminControllerInterface {
	return &AdminController{
		inspectorRepo:      repos.Inspector,
		rosterRepo:         repos.Roster,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
		validate:           validator.New(),
		log:                logger.New("adminController"),
	}
}

func (c *AdminController) CreateInspector(
	ctx context.Context,
	request *CreateInspectorRequest,
) (*Inspector, error) {
	log := c.log.Function("CreateInspector")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	inspector, err := c.inspectorRepo.Create(ctx, &Inspector{
		Name:            request.Name,
		ImageURL:        request.ImageURL,
		DefaultBuilding: request.DefaultBuilding,
	})
	if err != nil {
		return nil, log.Err("failed to create inspector", err, "name", request.Name)
	}

	log.Info("Inspector created", "name", inspector.Name, "id", inspector.ID)

	return inspector, nil
}

func (c *AdminController) UpdateInspector(
	ctx context.Context,
	id string,
	request *UpdateInspectorRequest,
) (*Inspector, error) {
	log := c.log.Function("UpdateInspector")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	inspector, err := c.inspectorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		inspector.Name = *request.Name
	}
	if request.ImageURL != nil {
		inspector.ImageURL = *request.ImageURL
	}
	if request.DefaultBuilding != nil {
		inspector.DefaultBuilding = *request.DefaultBuilding
	}

	if err := c.inspectorRepo.Update(ctx, inspector); err != nil {
		return nil, log.Err("failed to update inspector", err, "id", id)
	}

	log.Info("Inspector updated", "id", id)

	return inspector, nil
}

// DeleteInspector removes the inspector and their roster entries in one
// transaction. Past inspection records keep the inspector's name as free text
// and still count toward scores.
func (c *AdminController) DeleteInspector(ctx context.Context, id string) error {
	log := c.log.Function("DeleteInspector")

	inspector, err := c.inspectorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		txCtx := contextutil.WithTransaction(ctx, tx)
		if err := c.rosterRepo.DeleteByInspectorName(txCtx, inspector.Name); err != nil {
			return err
		}
		return c.inspectorRepo.Delete(txCtx, id)
	})
	if err != nil {
		return log.Err("failed to delete inspector", err, "id", id, "name", inspector.Name)
	}

	log.Info("Inspector deleted with roster entries", "id", id, "name", inspector.Name)

	return nil
}

func (c *AdminController) CreateRosterEntry(
	ctx context.Context,
	request *CreateRosterEntryRequest,
) (*RosterEntry, error) {
	log := c.log.Function("CreateRosterEntry")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	entry, err := c.rosterRepo.Create(ctx, &RosterEntry{
		DayIndex:      request.DayIndex,
		InspectorName: request.InspectorName,
		BuildingID:    request.BuildingID,
	})
	if err != nil {
		return nil, log.Err("failed to create roster entry", err,
			"inspector", request.InspectorName, "day", request.DayIndex)
	}

	log.Info("Roster entry created", "inspector", entry.InspectorName, "day", entry.DayIndex)

	return entry, nil
}

func (c *AdminController) DeleteRosterEntry(ctx context.Context, id string) error {
	log := c.log.Function("DeleteRosterEntry")

	if err := c.rosterRepo.Delete(ctx, id); err != nil {
		return log.Err("failed to delete roster entry", err, "id", id)
	}

	log.Info("Roster entry deleted", "id", id)

	return nil
}
