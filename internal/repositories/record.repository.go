package repositories

import (
	"context"
	"fmt"

	contextutil "lightsout/internal/context"
	"lightsout/internal/constants"
	"lightsout/internal/database"
	. "lightsout/internal/models"
	"lightsout/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordRepository interface {
	ListAscending(ctx context.Context) ([]InspectionRecord, error)
	ListForDate(ctx context.Context, date string) ([]InspectionRecord, error)
	Upsert(ctx context.Context, record *InspectionRecord) error
}

type recordRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRecordRepository(db database.DB) RecordRepository {
	return &recordRepository{
		db:  db,
		log: logger.New("recordRepository"),
	}
}

func (r *recordRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// ListAscending returns every record ordered by creation time, oldest first.
// Aggregation depends on this ordering: the latest write for a room wins.
func (r *recordRepository) ListAscending(ctx context.Context) ([]InspectionRecord, error) {
	log := r.log.Function("ListAscending")

	if !r.db.StoreConfigured() {
		return []InspectionRecord{}, nil
	}

	var records []InspectionRecord
	if err := r.getDB(ctx).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, log.Err("failed to list inspection records", err)
	}

	return records, nil
}

func recordsDateCacheKey(date string) string {
	return fmt.Sprintf("%s:%s", constants.RecordsByDatePrefix, date)
}

func (r *recordRepository) ListForDate(ctx context.Context, date string) ([]InspectionRecord, error) {
	log := r.log.Function("ListForDate")

	if !r.db.StoreConfigured() {
		return []InspectionRecord{}, nil
	}

	cacheKey := recordsDateCacheKey(date)

	var cached []InspectionRecord
	found, err := r.db.Cache.Records.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Er("failed to read record cache", err, "date", date)
	}
	if found {
		return cached, nil
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}

	var records []InspectionRecord
	if err := r.getDB(ctx).
		Where("date = ?", datatypes.Date(day)).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to list records for date", err, "date", date)
	}

	if err := r.db.Cache.Records.Set(ctx, cacheKey, records, constants.DataCacheTTL); err != nil {
		log.Er("failed to cache records for date", err, "date", date)
	}

	return records, nil
}

// Upsert writes the whole row, keyed by (date, building_id, room_id). Score
// and status are recomputed in the model's BeforeSave hook regardless of what
// the caller set.
func (r *recordRepository) Upsert(ctx context.Context, record *InspectionRecord) error {
	log := r.log.Function("Upsert")

	if !r.db.StoreConfigured() {
		return database.ErrStoreNotConfigured
	}

	if err := r.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "date"},
			{Name: "building_id"},
			{Name: "room_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"day_name", "inspector", "building_name", "room_name",
			"lights", "computer", "aircon", "fan",
			"score", "status", "updated_at",
		}),
	}).Create(record).Error; err != nil {
		return log.Err("failed to upsert inspection record", err,
			"date", record.DateString(), "building", record.BuildingID, "room", record.RoomID)
	}

	if err := r.db.FlushDataCaches(); err != nil {
		log.Er("failed to flush caches after upsert", err)
	}

	return nil
}
