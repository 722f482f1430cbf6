package storage

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Store is a durable key-value store for JSON snapshots. Writes are
// fire-and-forget from the registries' point of view; there is no
// transactional guarantee across keys.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
}

// LoadSnapshot reads and decodes the snapshot stored under key. A missing key
// seeds the store from the seed value. Malformed payloads are discarded in
// favor of the seed without overwriting the stored bytes, and load errors are
// logged rather than surfaced.
func LoadSnapshot[T any](ctx context.Context, store Store, key string, seed T, logger *zap.Logger) T {
	raw, ok, err := store.Load(ctx, key)
	if err != nil {
		logger.Warn("snapshot load failed", zap.String("key", key), zap.Error(err))
		return seed
	}
	if !ok {
		SaveSnapshot(ctx, store, key, seed, logger)
		return seed
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		logger.Warn("discarding malformed snapshot", zap.String("key", key), zap.Error(err))
		return seed
	}
	return value
}

// SaveSnapshot encodes and writes a snapshot, logging failures.
func SaveSnapshot[T any](ctx context.Context, store Store, key string, value T, logger *zap.Logger) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Error("snapshot encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := store.Save(ctx, key, raw); err != nil {
		logger.Warn("snapshot save failed", zap.String("key", key), zap.Error(err))
	}
}
