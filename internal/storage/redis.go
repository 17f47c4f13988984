package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/sim"
)

const worldStateTTL = 24 * time.Hour

// RedisStorage implements Storage using redis for world snapshots and the
// filesystem for static NPC definition records.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a redis storage instance. redisURL is a
// redis:// URL; dataDir holds npcs/*.json definition records.
func NewRedisStorage(redisURL, dataDir string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  redis.NewClient(opt),
		logger:  logger,
		dataDir: dataDir,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close redis connection", "error", err)
		return err
	}
	return nil
}

// World state operations (redis-backed)

func (r *RedisStorage) SaveWorldState(ctx context.Context, id uuid.UUID, ws *sim.WorldState) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("failed to marshal world state: %w", err)
	}

	key := worldKey(id)
	if err := r.client.Set(ctx, key, data, worldStateTTL).Err(); err != nil {
		r.logger.Error("Failed to save world state", "world", id, "error", err)
		return fmt.Errorf("failed to save world state: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadWorldState(ctx context.Context, id uuid.UUID) (*sim.WorldState, error) {
	data, err := r.client.Get(ctx, worldKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // not found
		}
		r.logger.Error("Failed to load world state", "world", id, "error", err)
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	var ws sim.WorldState
	if err := json.Unmarshal([]byte(data), &ws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world state: %w", err)
	}
	return &ws, nil
}

func (r *RedisStorage) DeleteWorldState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, worldKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete world state: %w", err)
	}
	return nil
}

func worldKey(id uuid.UUID) string {
	return "world:" + id.String()
}

// Definition operations (filesystem-backed)

func (r *RedisStorage) ListDefinitions(ctx context.Context) ([]string, error) {
	return ListDefinitionNames(r.dataDir)
}

func (r *RedisStorage) GetDefinition(ctx context.Context, name string) (*npc.Definition, error) {
	return ReadDefinition(r.dataDir, name)
}

func (r *RedisStorage) LoadAllDefinitions(ctx context.Context) ([]npc.Definition, error) {
	return ReadAllDefinitions(r.dataDir, r.logger)
}
