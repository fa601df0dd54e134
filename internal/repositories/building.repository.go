package repositories

import (
	"context"

	"lightsout/internal/database"
	. "lightsout/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type BuildingRepository interface {
	List(ctx context.Context) ([]Building, error)
}

type buildingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBuildingRepository(db database.DB) BuildingRepository {
	return &buildingRepository{
		db:  db,
		log: logger.New("buildingRepository"),
	}
}

func (r *buildingRepository) List(ctx context.Context) ([]Building, error) {
	log := r.log.Function("List")

	if !r.db.StoreConfigured() {
		return []Building{}, nil
	}

	var buildings []Building
	if err := r.db.SQLWithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("rooms.sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&buildings).Error; err != nil {
		return nil, log.Err("failed to list buildings", err)
	}

	return buildings, nil
}
