package repositories

import (
	"lightsout/internal/database"
)

type Repository struct {
	Building   BuildingRepository
	Inspector  InspectorRepository
	Roster     RosterRepository
	Record     RecordRepository
	MasterData MasterDataRepository
	Session    SessionRepository
}

func New(db database.DB) Repository {
	buildings := NewBuildingRepository(db)
	inspectors := NewInspectorRepository(db)
	roster := NewRosterRepository(db)

	return Repository{
		Building:   buildings,
		Inspector:  inspectors,
		Roster:     roster,
		Record:     NewRecordRepository(db),
		MasterData: NewMasterDataRepository(db, buildings, inspectors, roster),
		Session:    NewSessionRepository(db),
	}
}
