package dashboardController_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"lightsout/config"
	dashboardController "lightsout/internal/controllers/dashboard"
	"lightsout/internal/database"
	"lightsout/internal/models"
	"lightsout/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const monday = "2026-03-02"
const tuesday = "2026-03-03"

func setupController(t *testing.T) (dashboardController.DashboardControllerInterface, repositories.Repository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(
		&models.Building{},
		&models.Room{},
		&models.Inspector{},
		&models.RosterEntry{},
		&models.InspectionRecord{},
	))

	db := database.DB{
		SQL: gormDB,
		Cache: database.Cache{
			MasterData: database.NewMemoryKV(),
			Records:    database.NewMemoryKV(),
			Sessions:   database.NewMemoryKV(),
		},
	}

	buildings := []models.Building{
		{
			ID: "building-1", Name: "Building 1", IsActive: true, SortOrder: 1,
			Rooms: []models.Room{
				{ID: "b1-101", BuildingID: "building-1", Name: "Room 101", IsActive: true, SortOrder: 1},
				{ID: "b1-102", BuildingID: "building-1", Name: "Room 102", IsActive: true, SortOrder: 2},
			},
		},
		{
			ID: "building-3", Name: "Building 3", IsActive: true, SortOrder: 2,
			Rooms: []models.Room{
				{ID: "b3-301", BuildingID: "building-3", Name: "Room 301", IsActive: true, SortOrder: 1},
			},
		},
	}
	for i := range buildings {
		require.NoError(t, gormDB.Create(&buildings[i]).Error)
	}

	repos := repositories.New(db)
	return dashboardController.New(repos, config.Config{}, db), repos
}

func upsertRecord(
	t *testing.T,
	repos repositories.Repository,
	date, buildingID, buildingName, roomID, roomName string,
	states models.DeviceStates,
) {
	t.Helper()

	day, err := time.ParseInLocation(models.DateLayout, date, time.UTC)
	require.NoError(t, err)

	require.NoError(t, repos.Record.Upsert(context.Background(), &models.InspectionRecord{
		Date:         datatypes.Date(day),
		DayName:      "จันทร์",
		Inspector:    "A",
		BuildingID:   buildingID,
		BuildingName: buildingName,
		RoomID:       roomID,
		RoomName:     roomName,
		DeviceStates: states,
	}))
}

func seedMonday(t *testing.T, repos repositories.Repository) {
	upsertRecord(t, repos, monday, "building-1", "Building 1", "b1-101", "Room 101",
		models.DeviceStates{Lights: true, Computer: true, Aircon: true, Fan: true})
	upsertRecord(t, repos, monday, "building-1", "Building 1", "b1-102", "Room 102",
		models.DeviceStates{Lights: true})
}

func TestSummary(t *testing.T) {
	controller, repos := setupController(t)
	seedMonday(t, repos)

	summary, err := controller.Summary(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, monday, summary.Date)
	assert.Equal(t, "จันทร์", summary.DayName)
	assert.Equal(t, "2 มี.ค. 2569", summary.DateThai)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Partial)
	assert.Equal(t, 1, summary.Unchecked)
	assert.Equal(t, 3, summary.TotalRooms)
	assert.Equal(t, 67, summary.CompletionPercent)
	assert.Equal(t, 5, summary.TotalScore)
	assert.Equal(t, "2.0", summary.EnergySavedKWh)
	assert.Equal(t, "1.1", summary.CO2SavedKg)

	require.Len(t, summary.Rooms, 2)
	assert.Equal(t, "Room 101", summary.Rooms[0].Room)
	assert.True(t, summary.Rooms[0].AllPassed)
	assert.Equal(t, "Room 102", summary.Rooms[1].Room)
	assert.False(t, summary.Rooms[1].AllPassed)
}

func TestSummary_EmptyDay(t *testing.T) {
	controller, _ := setupController(t)

	summary, err := controller.Summary(context.Background(), tuesday)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Passed)
	assert.Equal(t, 3, summary.Unchecked)
	assert.Equal(t, 0, summary.CompletionPercent)
	assert.Equal(t, "0.0", summary.EnergySavedKWh)
}

func TestSummary_InvalidDate(t *testing.T) {
	controller, _ := setupController(t)

	_, err := controller.Summary(context.Background(), "yesterday")
	assert.Error(t, err)
}

func TestRankings(t *testing.T) {
	controller, repos := setupController(t)
	seedMonday(t, repos)
	upsertRecord(t, repos, tuesday, "building-1", "Building 1", "b1-102", "Room 102",
		models.DeviceStates{Lights: true, Computer: true, Aircon: true, Fan: true})

	rankings, err := controller.Rankings(context.Background())
	require.NoError(t, err)
	require.Len(t, rankings, 2)

	// b1-102: 1 + 4 = 5 over two checks, b1-101: 4 over one.
	assert.Equal(t, "Room 102", rankings[0].Room)
	assert.Equal(t, 5, rankings[0].TotalScore)
	assert.Equal(t, 2, rankings[0].TotalChecks)
	assert.Equal(t, 1, rankings[0].TotalPassed)
	assert.Equal(t, 50, rankings[0].PassRate)

	assert.Equal(t, "Room 101", rankings[1].Room)
	assert.Equal(t, 4, rankings[1].TotalScore)
	assert.Equal(t, 100, rankings[1].PassRate)
}

func TestRecords_FilterAndOrder(t *testing.T) {
	controller, repos := setupController(t)
	seedMonday(t, repos)
	upsertRecord(t, repos, tuesday, "building-3", "Building 3", "b3-301", "Room 301",
		models.DeviceStates{Aircon: true})

	rows, err := controller.Records(context.Background(), dashboardController.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, tuesday, rows[0].Date, "newest date first")
	assert.Equal(t, monday, rows[1].Date)

	rows, err = controller.Records(context.Background(), dashboardController.RecordFilter{Date: monday})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = controller.Records(context.Background(), dashboardController.RecordFilter{Building: "building-3"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b3-301", rows[0].RoomID)
	assert.Equal(t, "1.5", rows[0].EnergySavedKWh)
	assert.Equal(t, "0.80", rows[0].CO2SavedKg)
}

func TestExportCSV(t *testing.T) {
	controller, repos := setupController(t)
	seedMonday(t, repos)

	data, err := controller.ExportCSV(context.Background(), dashboardController.RecordFilter{})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("\ufeff")), "UTF-8 BOM for spreadsheet imports")
	content := string(data)
	assert.Contains(t, content, "วันที่")
	assert.Contains(t, content, "ผ่าน")
	assert.Contains(t, content, models.StatusFullyPassed)
	assert.Contains(t, content, "1.9")
}

func TestExportXLSX(t *testing.T) {
	controller, repos := setupController(t)
	seedMonday(t, repos)

	data, err := controller.ExportXLSX(context.Background(), dashboardController.RecordFilter{})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "xlsx is a zip container")
}

func TestSummary_DegradedStore(t *testing.T) {
	db := database.DB{
		Cache: database.Cache{
			MasterData: database.NewMemoryKV(),
			Records:    database.NewMemoryKV(),
			Sessions:   database.NewMemoryKV(),
		},
	}
	repos := repositories.New(db)
	controller := dashboardController.New(repos, config.Config{}, db)

	summary, err := controller.Summary(context.Background(), monday)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalRooms)
	assert.Equal(t, 0, summary.CompletionPercent)
	assert.Empty(t, summary.Rooms)
}
