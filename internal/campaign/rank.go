package campaign

import (
	"math"
	"sort"

	"lightsout/internal/models"
)

type RankEntry struct {
	Building    string `json:"building"`
	Room        string `json:"room"`
	TotalScore  int    `json:"totalScore"`
	TotalChecks int    `json:"totalChecks"`
	TotalPassed int    `json:"totalPassed"`
}

func (e RankEntry) PassRate() int {
	if e.TotalChecks == 0 {
		return 0
	}
	return int(math.Round(100 * float64(e.TotalPassed) / float64(e.TotalChecks)))
}

// Rank groups all records by (building, room) across all dates, summing score
// and counting checks and fully-passed days. Sorted descending by total
// score; ties break ascending by building name, then room name, so the
// ordering is deterministic regardless of fetch order.
func Rank(records []models.InspectionRecord) []RankEntry {
	grouped := make(map[RoomKey]*RankEntry)
	var order []RoomKey
	for _, record := range records {
		key := RoomKey{Building: record.BuildingName, Room: record.RoomName}
		entry, ok := grouped[key]
		if !ok {
			entry = &RankEntry{Building: key.Building, Room: key.Room}
			grouped[key] = entry
			order = append(order, key)
		}
		entry.TotalScore += record.Score
		entry.TotalChecks++
		if record.Status == models.StatusFullyPassed {
			entry.TotalPassed++
		}
	}

	entries := make([]RankEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, *grouped[key])
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		if entries[i].Building != entries[j].Building {
			return entries[i].Building < entries[j].Building
		}
		return entries[i].Room < entries[j].Room
	})
	return entries
}
