package models

import "time"

// Building ids are stable external identifiers (e.g. "building-1") so roster
// entries and inspection records can reference them across reseeds.
type Building struct {
	ID        string    `gorm:"type:text;primaryKey"                 json:"id"`
	Name      string    `gorm:"type:text;not null"                   json:"name"`
	IsActive  bool      `gorm:"not null;default:true"                json:"isActive"`
	SortOrder int       `gorm:"not null;default:0"                   json:"sortOrder"`
	Rooms     []Room    `gorm:"foreignKey:BuildingID;references:ID"  json:"rooms"`
	CreatedAt time.Time `gorm:"autoCreateTime"                       json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                       json:"updatedAt"`
}

type Room struct {
	ID         string    `gorm:"type:text;primaryKey"    json:"id"`
	BuildingID string    `gorm:"type:text;not null;index" json:"buildingId"`
	Name       string    `gorm:"type:text;not null"      json:"name"`
	IsActive   bool      `gorm:"not null;default:true"   json:"isActive"`
	SortOrder  int       `gorm:"not null;default:0"      json:"sortOrder"`
	CreatedAt  time.Time `gorm:"autoCreateTime"          json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"          json:"updatedAt"`
}

// ActiveRooms filters out rooms flagged inactive.
func (b *Building) ActiveRooms() []Room {
	rooms := make([]Room, 0, len(b.Rooms))
	for _, room := range b.Rooms {
		if room.IsActive {
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// FindRoom returns the room with the given id, or nil.
func (b *Building) FindRoom(roomID string) *Room {
	for i := range b.Rooms {
		if b.Rooms[i].ID == roomID {
			return &b.Rooms[i]
		}
	}
	return nil
}
