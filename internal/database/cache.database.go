package database

import (
	"fmt"

	"lightsout/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey Database Index Organization
// Each database index provides logical separation for different cache categories
const (
	// MASTER_DATA_CACHE_INDEX (DB 0) - Buildings, rooms, inspectors, roster
	MASTER_DATA_CACHE_INDEX = iota

	// RECORDS_CACHE_INDEX (DB 1) - Inspection records keyed by date
	RECORDS_CACHE_INDEX

	// SESSIONS_CACHE_INDEX (DB 2) - Checklist session state between requests
	SESSIONS_CACHE_INDEX
)

type Cache struct {
	MasterData KV
	Records    KV
	Sessions   KV
}

func (c Cache) Close() {
	for _, kv := range []KV{c.MasterData, c.Records, c.Sessions} {
		if v, ok := kv.(*valkeyKV); ok {
			v.close()
		}
	}
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	if !config.CacheConfigured() {
		log.Warn("Cache not configured, falling back to in-process cache")
		s.Cache = Cache{
			MasterData: NewMemoryKV(),
			Records:    NewMemoryKV(),
			Sessions:   NewMemoryKV(),
		}
		return nil
	}

	address := fmt.Sprintf("%s:%d", config.CacheAddress, config.CachePort)

	var cacheDB Cache
	for _, target := range []struct {
		kv    *KV
		index int
		name  string
	}{
		{&cacheDB.MasterData, MASTER_DATA_CACHE_INDEX, "master data"},
		{&cacheDB.Records, RECORDS_CACHE_INDEX, "records"},
		{&cacheDB.Sessions, SESSIONS_CACHE_INDEX, "sessions"},
	} {
		client, err := valkey.NewClient(
			valkey.ClientOption{
				InitAddress: []string{address},
				SelectDB:    target.index,
			},
		)
		if err != nil {
			return log.Err("failed to create valkey client", err, "cache", target.name)
		}
		*target.kv = NewValkeyKV(client)
	}

	s.Cache = cacheDB

	return nil
}
