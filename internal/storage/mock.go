package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/sim"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	Worlds      map[uuid.UUID]*sim.WorldState
	Definitions map[string]npc.Definition

	PingErr error
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		Worlds:      make(map[uuid.UUID]*sim.WorldState),
		Definitions: make(map[string]npc.Definition),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error { return m.PingErr }
func (m *MockStorage) Close() error                   { return nil }

func (m *MockStorage) SaveWorldState(ctx context.Context, id uuid.UUID, ws *sim.WorldState) error {
	m.Worlds[id] = ws
	return nil
}

func (m *MockStorage) LoadWorldState(ctx context.Context, id uuid.UUID) (*sim.WorldState, error) {
	return m.Worlds[id], nil
}

func (m *MockStorage) DeleteWorldState(ctx context.Context, id uuid.UUID) error {
	delete(m.Worlds, id)
	return nil
}

func (m *MockStorage) ListDefinitions(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(m.Definitions))
	for name := range m.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockStorage) GetDefinition(ctx context.Context, name string) (*npc.Definition, error) {
	def, ok := m.Definitions[name]
	if !ok {
		return nil, fmt.Errorf("definition %q not found", name)
	}
	return &def, nil
}

func (m *MockStorage) LoadAllDefinitions(ctx context.Context) ([]npc.Definition, error) {
	names, _ := m.ListDefinitions(ctx)
	defs := make([]npc.Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, m.Definitions[name])
	}
	return defs, nil
}
