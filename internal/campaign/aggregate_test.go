package campaign_test

import (
	"testing"
	"time"

	"lightsout/internal/campaign"
	"lightsout/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func makeRecord(date, buildingID, buildingName, roomID, roomName string, states models.DeviceStates) models.InspectionRecord {
	day, err := time.ParseInLocation(models.DateLayout, date, time.UTC)
	if err != nil {
		panic(err)
	}
	record := models.InspectionRecord{
		Date:         datatypes.Date(day),
		Inspector:    "A",
		BuildingID:   buildingID,
		BuildingName: buildingName,
		RoomID:       roomID,
		RoomName:     roomName,
		DeviceStates: states,
	}
	record.Recalculate()
	return record
}

func TestStatusFor_FiltersByDate(t *testing.T) {
	records := []models.InspectionRecord{
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-101", "101",
			models.DeviceStates{Lights: true, Computer: true, Aircon: true, Fan: true}),
		makeRecord("2026-03-03", "building-1", "Building 1", "b1-102", "102",
			models.DeviceStates{Lights: true}),
	}

	status := campaign.StatusFor(records, "2026-03-02")

	require.Len(t, status, 1)
	entry := status[campaign.RoomKey{Building: "Building 1", Room: "101"}]
	assert.True(t, entry.AllPassed)
	assert.Equal(t, 4, entry.Score)
	assert.Equal(t, "A", entry.Inspector)
}

func TestStatusFor_LastSeenRecordWins(t *testing.T) {
	// Duplicate rows for one key can appear when historical rows are fetched
	// before an upsert lands; the later row in fetch order must win.
	records := []models.InspectionRecord{
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-101", "101",
			models.DeviceStates{Lights: true}),
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-101", "101",
			models.DeviceStates{Lights: true, Computer: true, Aircon: true}),
	}

	status := campaign.StatusFor(records, "2026-03-02")

	require.Len(t, status, 1)
	entry := status[campaign.RoomKey{Building: "Building 1", Room: "101"}]
	assert.Equal(t, 3, entry.Score)
	assert.True(t, entry.Computer)
}

func TestStatusFor_PartialIsNotPassed(t *testing.T) {
	records := []models.InspectionRecord{
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-101", "101",
			models.DeviceStates{Lights: true, Computer: true}),
	}

	status := campaign.StatusFor(records, "2026-03-02")

	entry := status[campaign.RoomKey{Building: "Building 1", Room: "101"}]
	assert.False(t, entry.AllPassed)
	assert.Equal(t, 2, entry.Score)
}

func TestCountsFor_ActiveRoomsOnly(t *testing.T) {
	buildings := testBuildings() // 3 active rooms
	status := map[campaign.RoomKey]campaign.RoomStatus{
		{Building: "Building 1", Room: "101"}: {AllPassed: true, Score: 4},
		{Building: "Building 1", Room: "102"}: {AllPassed: false, Score: 2},
	}

	counts := campaign.CountsFor(buildings, status)

	assert.Equal(t, 3, counts.TotalRooms)
	assert.Equal(t, 1, counts.Passed)
	assert.Equal(t, 1, counts.Partial)
	assert.Equal(t, 1, counts.Unchecked)
	assert.Equal(t, 67, counts.CompletionPercent())
}

func TestCountsFor_InactiveRoomWithRecordStillCounts(t *testing.T) {
	buildings := testBuildings()
	buildings[0].Rooms[1].IsActive = false // 102 inactive

	withoutRecord := campaign.CountsFor(buildings, nil)
	assert.Equal(t, 2, withoutRecord.TotalRooms)

	status := map[campaign.RoomKey]campaign.RoomStatus{
		{Building: "Building 1", Room: "102"}: {AllPassed: false, Score: 1},
	}
	withRecord := campaign.CountsFor(buildings, status)

	assert.Equal(t, 3, withRecord.TotalRooms)
	assert.Equal(t, 1, withRecord.Partial)
	assert.Equal(t, 2, withRecord.Unchecked)
}

func TestCountsFor_InactiveBuildingWithRecordStillCounts(t *testing.T) {
	buildings := testBuildings()
	buildings[1].IsActive = false // Building 3

	withoutRecord := campaign.CountsFor(buildings, nil)
	assert.Equal(t, 2, withoutRecord.TotalRooms)

	status := map[campaign.RoomKey]campaign.RoomStatus{
		{Building: "Building 3", Room: "301"}: {AllPassed: true, Score: 4},
	}
	withRecord := campaign.CountsFor(buildings, status)

	assert.Equal(t, 3, withRecord.TotalRooms)
	assert.Equal(t, 1, withRecord.Passed)
}

func TestCountsFor_RecordForUnknownRoomCounts(t *testing.T) {
	// A record can reference a room that has since been removed from master
	// data; it still shows up in the day's counts.
	status := map[campaign.RoomKey]campaign.RoomStatus{
		{Building: "Demolished Wing", Room: "9"}: {AllPassed: true, Score: 4},
	}

	counts := campaign.CountsFor(testBuildings(), status)

	assert.Equal(t, 4, counts.TotalRooms)
	assert.Equal(t, 1, counts.Passed)
}

func TestCompletionPercent_ZeroRooms(t *testing.T) {
	counts := campaign.CountsFor(nil, nil)

	assert.Equal(t, 0, counts.TotalRooms)
	assert.Equal(t, 0, counts.CompletionPercent())
}

func TestTotalScore(t *testing.T) {
	status := map[campaign.RoomKey]campaign.RoomStatus{
		{Building: "Building 1", Room: "101"}: {Score: 4},
		{Building: "Building 1", Room: "102"}: {Score: 2},
		{Building: "Building 3", Room: "301"}: {Score: 1},
	}

	assert.Equal(t, 7, campaign.TotalScore(status))
}
