package campaign_test

import (
	"testing"
	"time"

	"lightsout/internal/campaign"
	"lightsout/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuildings() []models.Building {
	return []models.Building{
		{
			ID: "building-1", Name: "Building 1", IsActive: true,
			Rooms: []models.Room{
				{ID: "b1-101", BuildingID: "building-1", Name: "101", IsActive: true},
				{ID: "b1-102", BuildingID: "building-1", Name: "102", IsActive: true},
			},
		},
		{
			ID: "building-3", Name: "Building 3", IsActive: true,
			Rooms: []models.Room{
				{ID: "b3-301", BuildingID: "building-3", Name: "301", IsActive: true},
			},
		},
	}
}

func testRoster() []models.RosterEntry {
	return []models.RosterEntry{
		{DayIndex: 1, InspectorName: "A", BuildingID: "building-1"},
		{DayIndex: 1, InspectorName: "A", BuildingID: "building-3"},
		{DayIndex: 2, InspectorName: "B", BuildingID: "building-1"},
	}
}

func testInspectors() []models.Inspector {
	return []models.Inspector{
		{Name: "A", ImageURL: "/pic/a.jpg", DefaultBuilding: "Building 1"},
		{Name: "B", DefaultBuilding: "Building 3"},
		{Name: "C"},
	}
}

// 2026-03-02 is a Monday.
var (
	monday   = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
)

func TestTodayAssignments_WeekendAlwaysEmpty(t *testing.T) {
	roster := testRoster()
	// Even a roster that somehow carried weekend day indexes resolves empty.
	roster = append(roster,
		models.RosterEntry{DayIndex: 6, InspectorName: "A", BuildingID: "building-1"},
		models.RosterEntry{DayIndex: 0, InspectorName: "B", BuildingID: "building-1"},
	)

	for _, date := range []time.Time{saturday, sunday} {
		assignments := campaign.TodayAssignments(roster, testInspectors(), testBuildings(), date)
		assert.Empty(t, assignments, "expected no assignments on %s", date.Weekday())
	}
}

func TestTodayAssignments_MergesBuildingsPerInspector(t *testing.T) {
	roster := testRoster()
	// Duplicate entry for the same building must not duplicate the id.
	roster = append(roster, models.RosterEntry{
		DayIndex: 1, InspectorName: "A", BuildingID: "building-1",
	})

	assignments := campaign.TodayAssignments(roster, testInspectors(), testBuildings(), monday)

	require.Len(t, assignments, 1)
	assignment := assignments[0]
	assert.Equal(t, "A", assignment.Inspector)
	assert.Equal(t, "/pic/a.jpg", assignment.ImageURL)
	assert.Equal(t, []string{"building-1", "building-3"}, assignment.BuildingIDs)
	assert.Len(t, assignment.BuildingNames, 2)
	assert.Equal(t, []string{"Building 1", "Building 3"}, assignment.BuildingNames)
	require.Len(t, assignment.Buildings, 2)
	assert.Len(t, assignment.Buildings[0].Rooms, 2)
}

func TestTodayAssignments_SkipsInactiveBuildingsFromResolvedList(t *testing.T) {
	buildings := testBuildings()
	buildings[1].IsActive = false

	assignments := campaign.TodayAssignments(testRoster(), testInspectors(), buildings, monday)

	require.Len(t, assignments, 1)
	// The raw roster union keeps the id, the resolved list drops the building.
	assert.Equal(t, []string{"building-1", "building-3"}, assignments[0].BuildingIDs)
	require.Len(t, assignments[0].Buildings, 1)
	assert.Equal(t, "building-1", assignments[0].Buildings[0].ID)
}

func TestTodayAssignments_TuesdayRoster(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)

	assignments := campaign.TodayAssignments(testRoster(), testInspectors(), testBuildings(), tuesday)

	require.Len(t, assignments, 1)
	assert.Equal(t, "B", assignments[0].Inspector)
	assert.Equal(t, []string{"building-1"}, assignments[0].BuildingIDs)
}

func TestFindAssignment(t *testing.T) {
	assignments := campaign.TodayAssignments(testRoster(), testInspectors(), testBuildings(), monday)

	assert.NotNil(t, campaign.FindAssignment(assignments, "A"))
	assert.Nil(t, campaign.FindAssignment(assignments, "C"))
}

func TestResolveSubstitution(t *testing.T) {
	building := testBuildings()[1]

	assignment := campaign.ResolveSubstitution("C", building)

	assert.Equal(t, "C", assignment.Inspector)
	assert.True(t, assignment.Substitution)
	assert.Equal(t, []string{"building-3"}, assignment.BuildingIDs)
	assert.Equal(t, []string{"Building 3"}, assignment.BuildingNames)
	require.Len(t, assignment.Buildings, 1)
	assert.Equal(t, "building-3", assignment.Buildings[0].ID)
}
