package campaign

import (
	"time"

	"lightsout/internal/models"

	"gorm.io/datatypes"
)

type Phase string

const (
	PhaseSelectingInspector Phase = "selecting_inspector"
	PhaseSelectingBuilding  Phase = "selecting_substitute_building"
	PhaseEditing            Phase = "editing"
)

// Checklist item ids, shared with the client.
const (
	ItemLights   = "lights"
	ItemComputer = "computer"
	ItemAircon   = "aircon"
	ItemFan      = "fan"
)

var ChecklistItems = []string{ItemLights, ItemComputer, ItemAircon, ItemFan}

// Session is the state machine for one inspection session: inspector
// selection, optional substitution with a building choice, then per-room
// toggle editing with individual or bulk saves. It is plain serializable
// state; persistence of saved records goes through the SaveFunc injected by
// the caller, and the session itself never performs I/O.
type Session struct {
	ID           string                         `json:"id"`
	Date         string                         `json:"date"`
	DayName      string                         `json:"dayName"`
	Phase        Phase                          `json:"phase"`
	Inspector    string                         `json:"inspector,omitempty"`
	Substituting bool                           `json:"substituting,omitempty"`
	Assignment   *Assignment                    `json:"assignment,omitempty"`
	Toggles      map[string]models.DeviceStates `json:"toggles"`
	Saved        map[string]bool                `json:"saved"`
}

func NewSession(id, date, dayName string) *Session {
	return &Session{
		ID:      id,
		Date:    date,
		DayName: dayName,
		Phase:   PhaseSelectingInspector,
		Toggles: make(map[string]models.DeviceStates),
		Saved:   make(map[string]bool),
	}
}

// ChooseInspector resolves the duty assignment for the named inspector. An
// on-duty inspector goes straight to editing; the roster assignment always
// wins, even when the caller flagged substitution. An off-duty inspector
// requires confirmed substitution and moves to building selection.
func (s *Session) ChooseInspector(name string, confirmed bool, onDuty []Assignment) error {
	if s.Phase != PhaseSelectingInspector {
		return ErrInvalidPhase
	}

	if assignment := FindAssignment(onDuty, name); assignment != nil {
		resolved := *assignment
		s.Inspector = name
		s.Substituting = false
		s.Assignment = &resolved
		s.Phase = PhaseEditing
		return nil
	}

	if !confirmed {
		return ErrSubstitutionNotConfirmed
	}
	s.Inspector = name
	s.Substituting = true
	s.Phase = PhaseSelectingBuilding
	return nil
}

func (s *Session) ChooseSubstituteBuilding(building models.Building) error {
	if s.Phase != PhaseSelectingBuilding {
		return ErrInvalidPhase
	}
	assignment := ResolveSubstitution(s.Inspector, building)
	s.Assignment = &assignment
	s.Phase = PhaseEditing
	return nil
}

// Prefill seeds toggle state and saved flags from records already persisted
// for the session date. Rooms without a matching record stay all-false and
// unsaved. Later duplicates overwrite earlier ones, mirroring StatusFor.
func (s *Session) Prefill(records []models.InspectionRecord) {
	if s.Phase != PhaseEditing || s.Assignment == nil {
		return
	}
	for _, record := range records {
		if record.DateString() != s.Date {
			continue
		}
		if s.findRoom(record.RoomID) == nil {
			continue
		}
		s.Toggles[record.RoomID] = record.DeviceStates
		s.Saved[record.RoomID] = true
	}
}

// RoomChecks returns the in-progress toggles for a room, defaulting to
// all-false.
func (s *Session) RoomChecks(roomID string) models.DeviceStates {
	return s.Toggles[roomID]
}

// Toggle flips exactly one checklist boolean. The saved flag is untouched.
func (s *Session) Toggle(roomID, item string) error {
	if s.Phase != PhaseEditing {
		return ErrInvalidPhase
	}
	if s.findRoom(roomID) == nil {
		return ErrUnknownRoom
	}

	checks := s.Toggles[roomID]
	switch item {
	case ItemLights:
		checks.Lights = !checks.Lights
	case ItemComputer:
		checks.Computer = !checks.Computer
	case ItemAircon:
		checks.Aircon = !checks.Aircon
	case ItemFan:
		checks.Fan = !checks.Fan
	default:
		return ErrUnknownItem
	}
	s.Toggles[roomID] = checks
	return nil
}

type SaveFunc func(models.InspectionRecord) error

// SaveRoom upserts a single room's record. On failure the prior saved state
// is left untouched and the error surfaces to the caller; there is no retry.
func (s *Session) SaveRoom(roomID string, save SaveFunc) error {
	record, err := s.buildRecord(roomID)
	if err != nil {
		return err
	}
	if err := save(record); err != nil {
		return err
	}
	s.Saved[roomID] = true
	return nil
}

// Candidates lists the rooms SaveAll would submit, in assignment order:
// every room with at least one true toggle, including already-saved rooms so
// updates go through. All-false rooms are always skipped, saved or not.
func (s *Session) Candidates() []string {
	if s.Assignment == nil {
		return nil
	}
	var rooms []string
	for _, building := range s.Assignment.Buildings {
		for _, room := range building.Rooms {
			if s.Toggles[room.ID].AnySet() {
				rooms = append(rooms, room.ID)
			}
		}
	}
	return rooms
}

func (s *Session) CandidateCount() int {
	return len(s.Candidates())
}

type SaveReport struct {
	SuccessCount int `json:"successCount"`
	ErrorCount   int `json:"errorCount"`
}

// SaveAll submits every candidate room sequentially. Partial failure is
// tolerated: successes stay saved, failures are counted, nothing rolls back.
// The explicit confirmation showing CandidateCount is the caller's contract.
func (s *Session) SaveAll(save SaveFunc) (SaveReport, error) {
	if s.Phase != PhaseEditing {
		return SaveReport{}, ErrInvalidPhase
	}
	candidates := s.Candidates()
	if len(candidates) == 0 {
		return SaveReport{}, ErrNoCandidates
	}

	var report SaveReport
	for _, roomID := range candidates {
		if err := s.SaveRoom(roomID, save); err != nil {
			report.ErrorCount++
			continue
		}
		report.SuccessCount++
	}
	return report, nil
}

// Reset discards all in-progress local state and returns to inspector
// selection. Records already persisted are untouched.
func (s *Session) Reset() {
	s.Phase = PhaseSelectingInspector
	s.Inspector = ""
	s.Substituting = false
	s.Assignment = nil
	s.Toggles = make(map[string]models.DeviceStates)
	s.Saved = make(map[string]bool)
}

func (s *Session) findRoom(roomID string) *models.Room {
	if s.Assignment == nil {
		return nil
	}
	for i := range s.Assignment.Buildings {
		if room := s.Assignment.Buildings[i].FindRoom(roomID); room != nil {
			return room
		}
	}
	return nil
}

func (s *Session) buildRecord(roomID string) (models.InspectionRecord, error) {
	if s.Phase != PhaseEditing || s.Assignment == nil {
		return models.InspectionRecord{}, ErrInvalidPhase
	}

	var building *models.Building
	var room *models.Room
	for i := range s.Assignment.Buildings {
		if found := s.Assignment.Buildings[i].FindRoom(roomID); found != nil {
			building = &s.Assignment.Buildings[i]
			room = found
			break
		}
	}
	if room == nil {
		return models.InspectionRecord{}, ErrUnknownRoom
	}

	day, err := time.ParseInLocation(models.DateLayout, s.Date, time.UTC)
	if err != nil {
		return models.InspectionRecord{}, ErrInvalidDate
	}

	record := models.InspectionRecord{
		Date:         datatypes.Date(day),
		DayName:      s.DayName,
		Inspector:    s.Inspector,
		BuildingID:   building.ID,
		BuildingName: building.Name,
		RoomID:       room.ID,
		RoomName:     room.Name,
		DeviceStates: s.Toggles[roomID],
	}
	record.Recalculate()
	return record, nil
}
