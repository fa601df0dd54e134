package checklistController

import (
	"context"
	"errors"

	"lightsout/config"
	"lightsout/internal/campaign"
	"lightsout/internal/database"
	. "lightsout/internal/models"
	"lightsout/internal/repositories"
	"lightsout/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrConfirmationRequired = errors.New("confirmation required")
var ErrUnknownBuilding = errors.New("unknown building")

type ChecklistController struct {
	masterDataRepo repositories.MasterDataRepository
	recordRepo     repositories.RecordRepository
	sessionRepo    repositories.SessionRepository
	db             database.DB
	Config         config.Config
	validate       *validator.Validate
	log            logger.Logger
}

type ChooseInspectorRequest struct {
	Name                string `json:"name"                validate:"required"`
	ConfirmSubstitution bool   `json:"confirmSubstitution"`
}

type ChooseBuildingRequest struct {
	BuildingID string `json:"buildingId" validate:"required"`
}

type ToggleRequest struct {
	RoomID string `json:"roomId" validate:"required"`
	Item   string `json:"item"   validate:"required,oneof=lights computer aircon fan"`
}

type SaveRoomRequest struct {
	RoomID string `json:"roomId" validate:"required"`
}

type SaveAllRequest struct {
	Confirm bool `json:"confirm"`
}

type AssignmentView struct {
	Inspector     string   `json:"inspector"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Substitution  bool     `json:"substitution"`
	BuildingIDs   []string `json:"buildingIds"`
	BuildingNames []string `json:"buildingNames"`
}

type SessionView struct {
	ID             string                  `json:"id"`
	Date           string                  `json:"date"`
	DayName        string                  `json:"dayName"`
	Weekend        bool                    `json:"weekend"`
	Phase          campaign.Phase          `json:"phase"`
	Inspector      string                  `json:"inspector,omitempty"`
	Substituting   bool                    `json:"substituting,omitempty"`
	Assignment     *campaign.Assignment    `json:"assignment,omitempty"`
	OnDuty         []AssignmentView        `json:"onDuty"`
	Toggles        map[string]DeviceStates `json:"toggles"`
	Saved          map[string]bool         `json:"saved"`
	CandidateCount int                     `json:"candidateCount"`
}

type SaveAllResponse struct {
	Report  campaign.SaveReport `json:"report"`
	Session *SessionView        `json:"session"`
}

type ChecklistControllerInterface interface {
	Start(ctx context.Context) (*SessionView, error)
	Get(ctx context.Context, id string) (*SessionView, error)
	ChooseInspector(ctx context.Context, id string, request *ChooseInspectorRequest) (*SessionView, error)
	ChooseBuilding(ctx context.Context, id string, request *ChooseBuildingRequest) (*SessionView, error)
	Toggle(ctx context.Context, id string, request *ToggleRequest) (*SessionView, error)
	SaveRoom(ctx context.Context, id string, request *SaveRoomRequest) (*SessionView, error)
	SaveAll(ctx context.Context, id string, request *SaveAllRequest) (*SaveAllResponse, error)
	Reset(ctx context.Context, id string) error
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) ChecklistControllerInterface {
	return &ChecklistController{
		masterDataRepo: repos.MasterData,
		recordRepo:     repos.Record,
		sessionRepo:    repos.Session,
		db:             db,
		Config:         config,
		validate:       validator.New(),
		log:            logger.New("checklistController"),
	}
}

// Start opens a session for today. On weekends the session still exists, the
// duty list is just empty and the client renders the rest-day state.
func (c *ChecklistController) Start(ctx context.Context) (*SessionView, error) {
	log := c.log.Function("Start")

	date := utils.TodayString()
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, log.Err("failed to parse today", err, "date", date)
	}

	session := campaign.NewSession(uuid.NewString(), date, utils.ThaiDayName(day))
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, log.Err("failed to persist new session", err)
	}

	return c.view(ctx, session)
}

func (c *ChecklistController) Get(ctx context.Context, id string) (*SessionView, error) {
	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.view(ctx, session)
}

func (c *ChecklistController) ChooseInspector(
	ctx context.Context,
	id string,
	request *ChooseInspectorRequest,
) (*SessionView, error) {
	log := c.log.Function("ChooseInspector")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}

	onDuty, err := c.onDuty(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := session.ChooseInspector(request.Name, request.ConfirmSubstitution, onDuty); err != nil {
		return nil, err
	}

	if session.Phase == campaign.PhaseEditing {
		c.prefill(ctx, session)
	}

	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, log.Err("failed to persist session", err, "id", id)
	}

	return c.view(ctx, session)
}

func (c *ChecklistController) ChooseBuilding(
	ctx context.Context,
	id string,
	request *ChooseBuildingRequest,
) (*SessionView, error) {
	log := c.log.Function("ChooseBuilding")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}

	masterData, err := c.masterDataRepo.Get(ctx)
	if err != nil {
		return nil, log.Err("failed to load master data", err)
	}

	var building *Building
	for i := range masterData.Buildings {
		if masterData.Buildings[i].ID == request.BuildingID {
			building = &masterData.Buildings[i]
			break
		}
	}
	if building == nil || !building.IsActive {
		return nil, ErrUnknownBuilding
	}

	if err := session.ChooseSubstituteBuilding(*building); err != nil {
		return nil, err
	}

	c.prefill(ctx, session)

	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, log.Err("failed to persist session", err, "id", id)
	}

	return c.view(ctx, session)
}

func (c *ChecklistController) Toggle(
	ctx context.Context,
	id string,
	request *ToggleRequest,
) (*SessionView, error) {
	log := c.log.Function("Toggle")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.Toggle(request.RoomID, request.Item); err != nil {
		return nil, err
	}

	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, log.Err("failed to persist session", err, "id", id)
	}

	return c.view(ctx, session)
}

func (c *ChecklistController) SaveRoom(
	ctx context.Context,
	id string,
	request *SaveRoomRequest,
) (*SessionView, error) {
	log := c.log.Function("SaveRoom")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.SaveRoom(request.RoomID, c.saver(ctx)); err != nil {
		return nil, err
	}

	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, log.Err("failed to persist session", err, "id", id)
	}

	log.Info("Room saved", "session", id, "room", request.RoomID)

	return c.view(ctx, session)
}

// SaveAll submits every candidate room after an explicit confirmation. A
// partial failure is reported, successes stay saved.
func (c *ChecklistController) SaveAll(
	ctx context.Context,
	id string,
	request *SaveAllRequest,
) (*SaveAllResponse, error) {
	log := c.log.Function("SaveAll")

	if !request.Confirm {
		return nil, ErrConfirmationRequired
	}

	session, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}

	report, err := session.SaveAll(c.saver(ctx))
	if err != nil {
		return nil, err
	}

	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, log.Err("failed to persist session", err, "id", id)
	}

	log.Info("Bulk save finished", "session", id,
		"success", report.SuccessCount, "errors", report.ErrorCount)

	view, err := c.view(ctx, session)
	if err != nil {
		return nil, err
	}

	return &SaveAllResponse{Report: report, Session: view}, nil
}

func (c *ChecklistController) Reset(ctx context.Context, id string) error {
	log := c.log.Function("Reset")

	if err := c.sessionRepo.Delete(ctx, id); err != nil {
		return log.Err("failed to delete session", err, "id", id)
	}

	return nil
}

func (c *ChecklistController) load(ctx context.Context, id string) (*campaign.Session, error) {
	session, found, err := c.sessionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (c *ChecklistController) saver(ctx context.Context) campaign.SaveFunc {
	return func(record InspectionRecord) error {
		return c.recordRepo.Upsert(ctx, &record)
	}
}

func (c *ChecklistController) onDuty(ctx context.Context, session *campaign.Session) ([]campaign.Assignment, error) {
	log := c.log.Function("onDuty")

	day, err := utils.ParseDate(session.Date)
	if err != nil {
		return nil, err
	}

	masterData, err := c.masterDataRepo.Get(ctx)
	if err != nil {
		return nil, log.Err("failed to load master data", err)
	}

	return campaign.TodayAssignments(
		masterData.Roster,
		masterData.Inspectors,
		masterData.Buildings,
		day,
	), nil
}

// prefill seeds the editing phase from already-persisted records for today.
// Failure to read them is not fatal, the inspector just starts blank.
func (c *ChecklistController) prefill(ctx context.Context, session *campaign.Session) {
	log := c.log.Function("prefill")

	records, err := c.recordRepo.ListForDate(ctx, session.Date)
	if err != nil {
		log.Er("failed to load records for prefill", err, "date", session.Date)
		return
	}
	session.Prefill(records)
}

func (c *ChecklistController) view(ctx context.Context, session *campaign.Session) (*SessionView, error) {
	day, err := utils.ParseDate(session.Date)
	if err != nil {
		return nil, err
	}

	onDuty, err := c.onDuty(ctx, session)
	if err != nil {
		return nil, err
	}

	views := make([]AssignmentView, 0, len(onDuty))
	for _, assignment := range onDuty {
		views = append(views, AssignmentView{
			Inspector:     assignment.Inspector,
			ImageURL:      assignment.ImageURL,
			Substitution:  assignment.Substitution,
			BuildingIDs:   assignment.BuildingIDs,
			BuildingNames: assignment.BuildingNames,
		})
	}

	return &SessionView{
		ID:             session.ID,
		Date:           session.Date,
		DayName:        session.DayName,
		Weekend:        utils.IsWeekend(day),
		Phase:          session.Phase,
		Inspector:      session.Inspector,
		Substituting:   session.Substituting,
		Assignment:     session.Assignment,
		OnDuty:         views,
		Toggles:        session.Toggles,
		Saved:          session.Saved,
		CandidateCount: session.CandidateCount(),
	}, nil
}
