package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

const (
	StatusFullyPassed = "fully passed"
	StatusLeftRunning = "left running"
)

// DeviceStates holds the four checklist toggles for a room. True means the
// device was switched off during the midday break.
type DeviceStates struct {
	Lights   bool `gorm:"not null;default:false" json:"lights"`
	Computer bool `gorm:"not null;default:false" json:"computer"`
	Aircon   bool `gorm:"not null;default:false" json:"aircon"`
	Fan      bool `gorm:"not null;default:false" json:"fan"`
}

// Score is the count of switched-off devices, 0-4.
func (d DeviceStates) Score() int {
	score := 0
	for _, on := range []bool{d.Lights, d.Computer, d.Aircon, d.Fan} {
		if on {
			score++
		}
	}
	return score
}

func (d DeviceStates) Status() string {
	if d.Score() == 4 {
		return StatusFullyPassed
	}
	return StatusLeftRunning
}

// AnySet reports whether at least one toggle is true.
func (d DeviceStates) AnySet() bool {
	return d.Lights || d.Computer || d.Aircon || d.Fan
}

// InspectionRecord is the atomic unit of work product, one row per
// (date, building, room). Mutated only via whole-row upsert on that key.
// Inspector is free text, not a foreign key: it may name a since-deleted
// inspector and the record still counts toward historical scores.
type InspectionRecord struct {
	BaseUUIDModel
	Date         datatypes.Date `gorm:"uniqueIndex:idx_records_natural_key,priority:1;not null" json:"date"`
	DayName      string         `gorm:"type:text"                                               json:"dayName"`
	Inspector    string         `gorm:"type:text;not null"                                      json:"inspector"`
	BuildingID   string         `gorm:"type:text;uniqueIndex:idx_records_natural_key,priority:2;not null" json:"buildingId"`
	BuildingName string         `gorm:"type:text"                                               json:"buildingName"`
	RoomID       string         `gorm:"type:text;uniqueIndex:idx_records_natural_key,priority:3;not null" json:"roomId"`
	RoomName     string         `gorm:"type:text"                                               json:"roomName"`
	DeviceStates `gorm:"embedded"`
	Score  int    `gorm:"not null;default:0" json:"score"`
	Status string `gorm:"type:text;not null" json:"status"`
}

// Score and status are derived values. They are recomputed from the booleans
// on every save and never trusted from input.
func (r *InspectionRecord) BeforeSave(tx *gorm.DB) error {
	r.Recalculate()
	return nil
}

func (r *InspectionRecord) Recalculate() {
	r.Score = r.DeviceStates.Score()
	r.Status = r.DeviceStates.Status()
}

func (r *InspectionRecord) DateString() string {
	return time.Time(r.Date).UTC().Format(DateLayout)
}
