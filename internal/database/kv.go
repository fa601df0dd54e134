package database

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

// KV is the narrow cache surface the repositories depend on. Values are JSON
// round-tripped so cached structs behave the same against valkey and the
// in-process fallback.
type KV interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}

type valkeyKV struct {
	client valkey.Client
}

func NewValkeyKV(client valkey.Client) KV {
	return &valkeyKV{client: client}
}

func (v *valkeyKV) Get(ctx context.Context, key string, result any) (bool, error) {
	return NewCacheBuilder(v.client, key).WithContext(ctx).Get(result)
}

func (v *valkeyKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return NewCacheBuilder(v.client, key).
		WithContext(ctx).
		WithStruct(value).
		WithTTL(ttl).
		Set()
}

func (v *valkeyKV) Delete(ctx context.Context, key string) error {
	return NewCacheBuilder(v.client, key).WithContext(ctx).Delete()
}

func (v *valkeyKV) Flush(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Flushdb().Build()).Error()
}

func (v *valkeyKV) close() {
	v.client.Close()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memoryKV is the in-process fallback used when no valkey instance is
// configured, and the cache double in repository tests.
type memoryKV struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryKV() KV {
	return &memoryKV{entries: make(map[string]memoryEntry)}
}

func (m *memoryKV) Get(_ context.Context, key string, result any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, result); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryKV) Flush(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}
