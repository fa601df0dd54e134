package models

// Inspector is identified by display name. Inspection records reference the
// name as free text, so deleting an inspector leaves historical records intact.
type Inspector struct {
	BaseUUIDModel
	Name            string `gorm:"type:text;not null;uniqueIndex" json:"name"`
	ImageURL        string `gorm:"type:text"                      json:"imageUrl"`
	DefaultBuilding string `gorm:"type:text"                      json:"defaultBuilding"`
}
