package initialize

import (
	"lightsout/config"
	. "lightsout/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeBuildings(db, log); err != nil {
		return log.Err("failed to initialize buildings", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeBuildings installs the office layout. Building and room ids are
// stable external identifiers, so reruns only fill gaps and never overwrite
// edits made through the admin console.
func initializeBuildings(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing building reference data")

	buildings := getBuildingsData()

	for _, building := range buildings {
		var existing Building
		if err := db.First(&existing, "id = ?", building.ID).Error; err == nil {
			log.Debug("Building already exists", "id", building.ID)
			continue
		}
		log.Info("Initializing building", "id", building.ID, "name", building.Name)
		if err := db.Create(&building).Error; err != nil {
			return log.Err("failed to create building", err, "id", building.ID)
		}
	}

	log.Info("Building reference data initialized", "count", len(buildings))
	return nil
}

func getBuildingsData() []Building {
	return []Building{
		{
			ID:        "building-1",
			Name:      "อาคาร 1 สำนักงานใหญ่",
			IsActive:  true,
			SortOrder: 1,
			Rooms: []Room{
				{ID: "b1-101", BuildingID: "building-1", Name: "ห้อง 101 ธุรการ", IsActive: true, SortOrder: 1},
				{ID: "b1-102", BuildingID: "building-1", Name: "ห้อง 102 การเงิน", IsActive: true, SortOrder: 2},
				{ID: "b1-103", BuildingID: "building-1", Name: "ห้อง 103 บุคคล", IsActive: true, SortOrder: 3},
				{ID: "b1-201", BuildingID: "building-1", Name: "ห้อง 201 ประชุมใหญ่", IsActive: true, SortOrder: 4},
				{ID: "b1-202", BuildingID: "building-1", Name: "ห้อง 202 ผู้บริหาร", IsActive: true, SortOrder: 5},
			},
		},
		{
			ID:        "building-2",
			Name:      "อาคาร 2 ศูนย์คอมพิวเตอร์",
			IsActive:  true,
			SortOrder: 2,
			Rooms: []Room{
				{ID: "b2-101", BuildingID: "building-2", Name: "ห้อง 101 เซิร์ฟเวอร์", IsActive: true, SortOrder: 1},
				{ID: "b2-102", BuildingID: "building-2", Name: "ห้อง 102 พัฒนาระบบ", IsActive: true, SortOrder: 2},
				{ID: "b2-103", BuildingID: "building-2", Name: "ห้อง 103 ซ่อมบำรุง", IsActive: true, SortOrder: 3},
			},
		},
		{
			ID:        "building-3",
			Name:      "อาคาร 3 ฝ่ายปฏิบัติการ",
			IsActive:  true,
			SortOrder: 3,
			Rooms: []Room{
				{ID: "b3-101", BuildingID: "building-3", Name: "ห้อง 101 ปฏิบัติการ 1", IsActive: true, SortOrder: 1},
				{ID: "b3-102", BuildingID: "building-3", Name: "ห้อง 102 ปฏิบัติการ 2", IsActive: true, SortOrder: 2},
				{ID: "b3-201", BuildingID: "building-3", Name: "ห้อง 201 คลังพัสดุ", IsActive: true, SortOrder: 3},
				{ID: "b3-202", BuildingID: "building-3", Name: "ห้อง 202 ฝึกอบรม", IsActive: true, SortOrder: 4},
			},
		},
	}
}
