package campaign

import (
	"math"

	"lightsout/internal/models"
)

// RoomKey identifies a room by display names, matching how records label
// rooms. A two-field struct rather than a joined string so names containing
// a separator character can never collide.
type RoomKey struct {
	Building string `json:"building"`
	Room     string `json:"room"`
}

type RoomStatus struct {
	Inspector string `json:"inspector"`
	models.DeviceStates
	AllPassed bool `json:"allPassed"`
	Score     int  `json:"score"`
}

// StatusFor maps every record matching the date to its room key. When the
// store returns more than one row for a key (historical rows before an upsert
// landed), the last-seen record in fetch order wins; callers fetch ascending
// by creation time.
func StatusFor(records []models.InspectionRecord, date string) map[RoomKey]RoomStatus {
	status := make(map[RoomKey]RoomStatus)
	for _, record := range records {
		if record.DateString() != date {
			continue
		}
		key := RoomKey{Building: record.BuildingName, Room: record.RoomName}
		status[key] = RoomStatus{
			Inspector:    record.Inspector,
			DeviceStates: record.DeviceStates,
			AllPassed:    record.Status == models.StatusFullyPassed,
			Score:        record.Score,
		}
	}
	return status
}

type Counts struct {
	Passed     int `json:"passed"`
	Partial    int `json:"partial"`
	Unchecked  int `json:"unchecked"`
	TotalRooms int `json:"totalRooms"`
}

func (c Counts) CompletionPercent() int {
	if c.TotalRooms == 0 {
		return 0
	}
	checked := c.Passed + c.Partial
	return int(math.Round(100 * float64(checked) / float64(c.TotalRooms)))
}

// CountsFor derives passed/partial/unchecked room counts for one date. The
// room total covers active rooms in active buildings, plus any room that has
// a record for the date even when it or its building is flagged inactive.
func CountsFor(buildings []models.Building, status map[RoomKey]RoomStatus) Counts {
	rooms := make(map[RoomKey]struct{})
	for _, building := range buildings {
		for _, room := range building.Rooms {
			key := RoomKey{Building: building.Name, Room: room.Name}
			_, hasRecord := status[key]
			if (building.IsActive && room.IsActive) || hasRecord {
				rooms[key] = struct{}{}
			}
		}
	}
	// Records for rooms no longer in master data still count.
	for key := range status {
		rooms[key] = struct{}{}
	}

	counts := Counts{TotalRooms: len(rooms)}
	for _, entry := range status {
		if entry.AllPassed {
			counts.Passed++
		} else {
			counts.Partial++
		}
	}
	counts.Unchecked = counts.TotalRooms - counts.Passed - counts.Partial
	return counts
}

// TotalScore sums the per-room scores for a date's status map.
func TotalScore(status map[RoomKey]RoomStatus) int {
	total := 0
	for _, entry := range status {
		total += entry.Score
	}
	return total
}
