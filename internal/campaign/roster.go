package campaign

import (
	"time"

	"lightsout/internal/models"
)

// Assignment is one inspector's duty for a single day, covering one or more
// buildings. Buildings holds the resolved active buildings with their rooms;
// BuildingIDs and BuildingNames keep the raw roster union, deduplicated by id.
type Assignment struct {
	Inspector     string            `json:"inspector"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	Substitution  bool              `json:"substitution,omitempty"`
	BuildingIDs   []string          `json:"buildingIds"`
	BuildingNames []string          `json:"buildingNames"`
	Buildings     []models.Building `json:"buildings"`
}

// TodayAssignments resolves the duty roster for a calendar date. Saturday and
// Sunday always resolve to no assignments: the roster model has no weekend
// entries and the campaign does not run on weekends. Entries are grouped by
// inspector in roster order, building ids deduplicated per inspector.
func TodayAssignments(
	roster []models.RosterEntry,
	inspectors []models.Inspector,
	buildings []models.Building,
	date time.Time,
) []Assignment {
	day := int(date.Weekday())
	if day < models.RosterFirstDay || day > models.RosterLastDay {
		return nil
	}

	byName := make(map[string]*Assignment)
	var order []string
	for _, entry := range roster {
		if entry.DayIndex != day {
			continue
		}
		assignment, ok := byName[entry.InspectorName]
		if !ok {
			assignment = &Assignment{Inspector: entry.InspectorName}
			if inspector := findInspector(inspectors, entry.InspectorName); inspector != nil {
				assignment.ImageURL = inspector.ImageURL
			}
			byName[entry.InspectorName] = assignment
			order = append(order, entry.InspectorName)
		}
		if containsString(assignment.BuildingIDs, entry.BuildingID) {
			continue
		}
		assignment.BuildingIDs = append(assignment.BuildingIDs, entry.BuildingID)
		assignment.BuildingNames = append(assignment.BuildingNames, buildingName(buildings, entry.BuildingID))
		if building := findBuilding(buildings, entry.BuildingID); building != nil && building.IsActive {
			assignment.Buildings = append(assignment.Buildings, *building)
		}
	}

	assignments := make([]Assignment, 0, len(order))
	for _, name := range order {
		assignments = append(assignments, *byName[name])
	}
	return assignments
}

// FindAssignment returns the assignment for the named inspector, or nil when
// the inspector is off duty.
func FindAssignment(assignments []Assignment, inspectorName string) *Assignment {
	for i := range assignments {
		if assignments[i].Inspector == inspectorName {
			return &assignments[i]
		}
	}
	return nil
}

// ResolveSubstitution builds a single-building assignment for an inspector
// covering outside their roster, independent of the roster contents. It only
// applies to inspectors absent from today's roster; for on-duty inspectors
// the roster assignment takes precedence (enforced by Session.ChooseInspector).
// The explicit user confirmation gate lives at the call site.
func ResolveSubstitution(inspectorName string, building models.Building) Assignment {
	return Assignment{
		Inspector:     inspectorName,
		Substitution:  true,
		BuildingIDs:   []string{building.ID},
		BuildingNames: []string{building.Name},
		Buildings:     []models.Building{building},
	}
}

func findInspector(inspectors []models.Inspector, name string) *models.Inspector {
	for i := range inspectors {
		if inspectors[i].Name == name {
			return &inspectors[i]
		}
	}
	return nil
}

func findBuilding(buildings []models.Building, id string) *models.Building {
	for i := range buildings {
		if buildings[i].ID == id {
			return &buildings[i]
		}
	}
	return nil
}

func buildingName(buildings []models.Building, id string) string {
	if building := findBuilding(buildings, id); building != nil {
		return building.Name
	}
	return ""
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
