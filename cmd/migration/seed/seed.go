package seed

import (
	"lightsout/config"
	. "lightsout/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// Seed installs development inspectors and a weekday roster. Building
// reference data is handled by initialize, which runs on every migrate up.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	inspectors := []Inspector{
		{Name: "สมชาย ใจดี", DefaultBuilding: "building-1"},
		{Name: "สมหญิง รักษ์พลังงาน", DefaultBuilding: "building-2"},
		{Name: "วิชัย ประหยัดไฟ", DefaultBuilding: "building-3"},
	}

	for _, inspector := range inspectors {
		var existing Inspector
		if err := db.First(&existing, "name = ?", inspector.Name).Error; err == nil {
			log.Info("Inspector already exists", "name", inspector.Name)
			continue
		}
		log.Info("Seeding inspector", "name", inspector.Name)
		if err := db.Create(&inspector).Error; err != nil {
			log.Er("failed to create inspector", err, "name", inspector.Name)
		}
	}

	// Monday through Friday, one inspector per building per day.
	entries := []RosterEntry{}
	for day := RosterFirstDay; day <= RosterLastDay; day++ {
		entries = append(entries,
			RosterEntry{DayIndex: day, InspectorName: "สมชาย ใจดี", BuildingID: "building-1"},
			RosterEntry{DayIndex: day, InspectorName: "สมหญิง รักษ์พลังงาน", BuildingID: "building-2"},
			RosterEntry{DayIndex: day, InspectorName: "วิชัย ประหยัดไฟ", BuildingID: "building-3"},
		)
	}

	for _, entry := range entries {
		var existing RosterEntry
		err := db.First(
			&existing,
			"day_index = ? AND inspector_name = ? AND building_id = ?",
			entry.DayIndex, entry.InspectorName, entry.BuildingID,
		).Error
		if err == nil {
			continue
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Er("failed to create roster entry", err,
				"inspector", entry.InspectorName, "day", entry.DayIndex)
		}
	}

	log.Info("Development data seeded",
		"inspectors", len(inspectors), "rosterEntries", len(entries))
	return nil
}
