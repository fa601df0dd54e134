package models

// Weekday indexes follow time.Weekday numbering (0=Sunday..6=Saturday).
// Roster entries only exist for Monday through Friday.
const (
	RosterFirstDay = 1 // Monday
	RosterLastDay  = 5 // Friday
)

// RosterEntry declares that a named inspector covers a building on a weekday.
// One inspector may cover several buildings on the same day. Entries are
// created and deleted individually; there is no update-in-place.
type RosterEntry struct {
	BaseUUIDModel
	DayIndex      int    `gorm:"not null;index:idx_roster_day" json:"dayIndex"`
	InspectorName string `gorm:"type:text;not null;index"      json:"inspectorName"`
	BuildingID    string `gorm:"type:text;not null"            json:"buildingId"`
}
