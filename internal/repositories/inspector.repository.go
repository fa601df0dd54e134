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

type InspectorRepository interface {
	List(ctx context.Context) ([]Inspector, error)
	GetByID(ctx context.Context, id string) (*Inspector, error)
	Create(ctx context.Context, inspector *Inspector) (*Inspector, error)
	Update(ctx context.Context, inspector *Inspector) error
	Delete(ctx context.Context, id string) error
}

type inspectorRepository struct {
	db  database.DB
	log logger.Logger
}

func NewInspectorRepository(db database.DB) InspectorRepository {
	return &inspectorRepository{
		db:  db,
		log: logger.New("inspectorRepository"),
	}
}

func (r *inspectorRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextutil.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *inspectorRepository) List(ctx context.Context) ([]Inspector, error) {
	log := r.log.Function("List")

	if !r.db.StoreConfigured() {
		return []Inspector{}, nil
	}

	var inspectors []Inspector
	if err := r.getDB(ctx).Order("name ASC").Find(&inspectors).Error; err != nil {
		return nil, log.Err("failed to list inspectors", err)
	}

	return inspectors, nil
}

func (r *inspectorRepository) GetByID(ctx context.Context, id string) (*Inspector, error) {
	log := r.log.Function("GetByID")

	if !r.db.StoreConfigured() {
		return nil, database.ErrStoreNotConfigured
	}

	inspectorID, err := uuid.Parse(id)
	if err != nil {
		return nil, log.Err("failed to parse inspector ID", err, "id", id)
	}

	var inspector Inspector
	if err := r.getDB(ctx).First(&inspector, "id = ?", inspectorID).Error; err != nil {
		return nil, log.Err("failed to get inspector by ID", err, "id", id)
	}

	return &inspector, nil
}

func (r *inspectorRepository) Create(ctx context.Context, inspector *Inspector) (*Inspector, error) {
	log := r.log.Function("Create")

	if !r.db.StoreConfigured() {
		return nil, database.ErrStoreNotConfigured
	}

	if err := r.getDB(ctx).Create(inspector).Error; err != nil {
		return nil, log.Err("failed to create inspector", err, "name", inspector.Name)
	}

	if err := r.db.FlushDataCaches(); err != nil {
		log.Er("failed to flush caches after create", err)
	}

	return inspector, nil
}

func (r *inspectorRepository) Update(ctx context.Context, inspector *Inspector) error {
	log := r.log.Function("Update")

	if !r.db.StoreConfigured() {
		return database.ErrStoreNotConfigured
	}

	if err := r.getDB(ctx).Save(inspector).Error; err != nil {
		return log.Err("failed to update inspector", err, "id", inspector.ID)
	}

	if err := r.db.FlushDataCaches(); err != nil {
		log.Er("failed to flush caches after update", err)
	}

	return nil
}

func (r *inspectorRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if !r.db.StoreConfigured() {
		return database.ErrStoreNotConfigured
	}

	inspectorID, err := uuid.Parse(id)
	if err != nil {
		return log.Err("failed to parse inspector ID", err, "id", id)
	}

	if err := r.getDB(ctx).Delete(&Inspector{}, "id = ?", inspectorID).Error; err != nil {
		return log.Err("failed to delete inspector", err, "id", id)
	}

	if err := r.db.FlushDataCaches(); err != nil {
		log.Er("failed to flush caches after delete", err)
	}

	return nil
}
