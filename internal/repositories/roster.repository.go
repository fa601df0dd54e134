package repositories

import (
	"context"

	contextutil "lightsout/internal/context"
	"lightsout/internal/database"
	. "lightsout/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RosterRepository interface {
	List(ctx context.Context) ([]RosterEntry, error)
	Create(ctx context.Context, entry *RosterEntry) (*RosterEntry, error)
	Delete(ctx context.Context, id string) error
	DeleteByInspectorName(ctx context.Context, name string) error
}

type rosterRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRosterRepository(db database.DB) RosterRepository {
	return &rosterRepository{
		db:  db,
		log: logger.New("rosterRepository"),
	}
}

func (r *rosterRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *rosterRepository) List(ctx context.Context) ([]RosterEntry, error) {
	log := r.log.Function("List")

	if !r.db.StoreConfigured() {
		return []RosterEntry{}, nil
	}

	var entries []RosterEntry
	if err := r.getDB(ctx).
		Order("day_index ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list roster entries", err)
	}

	return entries, nil
}

func (r *rosterRepository) Create(ctx context.Context, entry *RosterEntry) (*RosterEntry, error) {
	log := r.log.Function("Create")

	if !r.db.StoreConfigured() {
		return nil, database.ErrStoreNotConfigured
	}

	if err := r.getDB(ctx).Create(entry).Error; err != nil {
		return nil, log.Err("failed to create roster entry", err,
			"inspector", entry.InspectorName, "day", entry.DayIndex)
	}

	if err := r.db.FlushDataCaches(); err != nil {
		log.Er("failed to flush caches after create", err)
	}

	return entry, nil
}

func (r *rosterRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if !r.db.StoreConfigured() {
		return database.ErrStoreNotConfigured
	}

	entryID, err := uuid.Parse(id)
	if err != nil {
		return log.Err("failed to parse roster entry ID", err, "id", id)
	}

	if err := r.getDB(ctx).Delete(&RosterEntry{}, "id = ?", entryID).Error; err != nil {
		return log.Err("failed to delete roster entry", err, "id", id)
	}

	if err := r.db.FlushDataCaches(); err != nil {
		log.Er("failed to flush caches after delete", err)
	}

	return nil
}

// DeleteByInspectorName removes every roster entry for an inspector. Called
// inside the inspector-delete transaction, so the cache flush belongs to the
// caller.
func (r *rosterRepository) DeleteByInspectorName(ctx context.Context, name string) error {
	log := r.log.Function("DeleteByInspectorName")

	if !r.db.StoreConfigured() {
		return database.ErrStoreNotConfigured
	}

	if err := r.getDB(ctx).
		Delete(&RosterEntry{}, "inspector_name = ?", name).Error; err != nil {
		return log.Err("failed to delete roster entries for inspector", err, "inspector", name)
	}

	return nil
}
