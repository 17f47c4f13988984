package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/sim"
)

// Storage is the unified interface for world persistence (redis) and NPC
// definition records (filesystem).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// World state operations (redis-backed)
	SaveWorldState(ctx context.Context, id uuid.UUID, ws *sim.WorldState) error
	LoadWorldState(ctx context.Context, id uuid.UUID) (*sim.WorldState, error)
	DeleteWorldState(ctx context.Context, id uuid.UUID) error

	// Definition operations (filesystem-backed)
	ListDefinitions(ctx context.Context) ([]string, error)
	GetDefinition(ctx context.Context, name string) (*npc.Definition, error)

	// LoadAllDefinitions loads every definition record, skipping malformed
	// files with a logged warning. One bad record never aborts the set.
	LoadAllDefinitions(ctx context.Context) ([]npc.Definition, error)
}
