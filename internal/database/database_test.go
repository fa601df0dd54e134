package database

import (
	"context"
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, MASTER_DATA_CACHE_INDEX)
	assert.Equal(t, 1, RECORDS_CACHE_INDEX)
	assert.Equal(t, 2, SESSIONS_CACHE_INDEX)
}

func TestDB_StructCreation(t *testing.T) {
	log := logger.New("test")

	db := &DB{
		log: log,
	}

	assert.NotNil(t, db)
	assert.Nil(t, db.SQL)
	assert.False(t, db.StoreConfigured())
}

type cachedBlob struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryKV_SetGet(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	var missing cachedBlob
	found, err := kv.Get(ctx, "blob", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "blob", cachedBlob{Name: "building-1", Count: 3}, time.Minute))

	var got cachedBlob
	found, err = kv.Get(ctx, "blob", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "building-1", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryKV_Expiry(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "blob", cachedBlob{Name: "stale"}, -time.Second))

	var got cachedBlob
	found, err := kv.Get(ctx, "blob", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryKV_DeleteAndFlush(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "a", cachedBlob{Name: "a"}, time.Minute))
	require.NoError(t, kv.Set(ctx, "b", cachedBlob{Name: "b"}, time.Minute))

	require.NoError(t, kv.Delete(ctx, "a"))

	var got cachedBlob
	found, err := kv.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = kv.Get(ctx, "b", &got)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, kv.Flush(ctx))
	found, err = kv.Get(ctx, "b", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFlushDataCaches_LeavesSessions(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
		Cache: Cache{
			MasterData: NewMemoryKV(),
			Records:    NewMemoryKV(),
			Sessions:   NewMemoryKV(),
		},
	}
	ctx := context.Background()

	require.NoError(t, db.Cache.MasterData.Set(ctx, "master_data", cachedBlob{Name: "m"}, time.Minute))
	require.NoError(t, db.Cache.Records.Set(ctx, "records_date:2026-03-02", cachedBlob{Name: "r"}, time.Minute))
	require.NoError(t, db.Cache.Sessions.Set(ctx, "checklist:abc", cachedBlob{Name: "s"}, time.Minute))

	require.NoError(t, db.FlushDataCaches())

	var got cachedBlob
	found, err := db.Cache.MasterData.Get(ctx, "master_data", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = db.Cache.Records.Get(ctx, "records_date:2026-03-02", &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = db.Cache.Sessions.Get(ctx, "checklist:abc", &got)
	require.NoError(t, err)
	assert.True(t, found)
}
