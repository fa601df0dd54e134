package repositories_test

import (
	"context"
	"testing"
	"time"

	"lightsout/internal/constants"
	"lightsout/internal/database"
	"lightsout/internal/models"
	"lightsout/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoDB(t *testing.T) database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&models.Building{},
		&models.Room{},
		&models.Inspector{},
		&models.RosterEntry{},
		&models.InspectionRecord{},
	))

	return database.DB{
		SQL: gormDB,
		Cache: database.Cache{
			MasterData: database.NewMemoryKV(),
			Records:    database.NewMemoryKV(),
			Sessions:   database.NewMemoryKV(),
		},
	}
}

func testRecord(t *testing.T, states models.DeviceStates) *models.InspectionRecord {
	t.Helper()

	day, err := time.ParseInLocation(models.DateLayout, "2026-03-02", time.UTC)
	require.NoError(t, err)

	return &models.InspectionRecord{
		Date:         datatypes.Date(day),
		DayName:      "จันทร์",
		Inspector:    "A",
		BuildingID:   "building-1",
		BuildingName: "Building 1",
		RoomID:       "b1-101",
		RoomName:     "Room 101",
		DeviceStates: states,
	}
}

func TestRecordRepository_UpsertIdempotence(t *testing.T) {
	db := setupRepoDB(t)
	repo := repositories.NewRecordRepository(db)
	ctx := context.Background()

	first := testRecord(t, models.DeviceStates{Lights: true, Computer: true})
	require.NoError(t, repo.Upsert(ctx, first))

	// Same natural key, different toggles: the row is replaced, not duplicated.
	second := testRecord(t, models.DeviceStates{Lights: true, Computer: true, Aircon: true, Fan: true})
	second.Inspector = "B"
	require.NoError(t, repo.Upsert(ctx, second))

	records, err := repo.ListAscending(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "B", got.Inspector)
	assert.True(t, got.Aircon)
	assert.Equal(t, 4, got.Score)
	assert.Equal(t, models.StatusFullyPassed, got.Status)
}

func TestRecordRepository_UpsertDistinctRooms(t *testing.T) {
	db := setupRepoDB(t)
	repo := repositories.NewRecordRepository(db)
	ctx := context.Background()

	first := testRecord(t, models.DeviceStates{Lights: true})
	require.NoError(t, repo.Upsert(ctx, first))

	second := testRecord(t, models.DeviceStates{Computer: true})
	second.RoomID = "b1-102"
	second.RoomName = "Room 102"
	require.NoError(t, repo.Upsert(ctx, second))

	records, err := repo.ListAscending(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecordRepository_ScoreNeverTrustedFromInput(t *testing.T) {
	db := setupRepoDB(t)
	repo := repositories.NewRecordRepository(db)
	ctx := context.Background()

	record := testRecord(t, models.DeviceStates{Lights: true, Computer: true})
	record.Score = 4
	record.Status = models.StatusFullyPassed
	require.NoError(t, repo.Upsert(ctx, record))

	records, err := repo.ListAscending(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Score)
	assert.Equal(t, models.StatusLeftRunning, records[0].Status)
}

func TestRecordRepository_UpsertFlushesDataCaches(t *testing.T) {
	db := setupRepoDB(t)
	repo := repositories.NewRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Cache.MasterData.Set(ctx, constants.MasterDataCacheKey, "stale", time.Minute))
	require.NoError(t, db.Cache.Records.Set(ctx, constants.RecordsByDatePrefix+":2026-03-02", "stale", time.Minute))
	require.NoError(t, db.Cache.Sessions.Set(ctx, constants.ChecklistSessionPrefix+":abc", "live", time.Minute))

	require.NoError(t, repo.Upsert(ctx, testRecord(t, models.DeviceStates{Lights: true})))

	var blob string
	found, err := db.Cache.MasterData.Get(ctx, constants.MasterDataCacheKey, &blob)
	require.NoError(t, err)
	assert.False(t, found, "master data cache must not survive a record write")

	found, err = db.Cache.Records.Get(ctx, constants.RecordsByDatePrefix+":2026-03-02", &blob)
	require.NoError(t, err)
	assert.False(t, found, "record cache must not survive a record write")

	found, err = db.Cache.Sessions.Get(ctx, constants.ChecklistSessionPrefix+":abc", &blob)
	require.NoError(t, err)
	assert.True(t, found, "sessions are not part of the data cache flush")
}

func TestRecordRepository_Degraded(t *testing.T) {
	db := database.DB{
		Cache: database.Cache{
			MasterData: database.NewMemoryKV(),
			Records:    database.NewMemoryKV(),
			Sessions:   database.NewMemoryKV(),
		},
	}
	repo := repositories.NewRecordRepository(db)
	ctx := context.Background()

	records, err := repo.ListAscending(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = repo.ListForDate(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, records)

	err = repo.Upsert(ctx, testRecord(t, models.DeviceStates{Lights: true}))
	assert.ErrorIs(t, err, database.ErrStoreNotConfigured)
}
