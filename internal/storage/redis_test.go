package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/sim"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis, string) {
	t.Helper()
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "npcs"), 0o755))

	s, err := NewRedisStorage("redis://"+mr.Addr(), dir, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr, dir
}

func writeDefinition(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, "npcs", name+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewRedisStorageBadURL(t *testing.T) {
	_, err := NewRedisStorage("not-a-url", "", testLogger())
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	s, mr, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	mr.Close()
	assert.Error(t, s.Ping(ctx))
}

func TestWorldStateRoundTrip(t *testing.T) {
	s, mr, _ := newTestStorage(t)
	ctx := context.Background()

	id := uuid.New()
	saved := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	ws := &sim.WorldState{
		ID:      id,
		SavedAt: saved,
		NPCs: []npc.Snapshot{
			{
				ID:       "mara",
				Position: actor.Position{X: 12, Y: -3, Z: 0.5},
				State:    npc.StateSleeping,
				Standings: map[actor.PlayerID]float64{
					"p1": 33.5,
				},
			},
		},
	}

	require.NoError(t, s.SaveWorldState(ctx, id, ws))

	loaded, err := s.LoadWorldState(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, id, loaded.ID)
	assert.True(t, loaded.SavedAt.Equal(saved))
	require.Len(t, loaded.NPCs, 1)
	assert.Equal(t, "mara", loaded.NPCs[0].ID)
	assert.Equal(t, npc.StateSleeping, loaded.NPCs[0].State)
	assert.Equal(t, 33.5, loaded.NPCs[0].Standings["p1"])

	// Snapshots expire rather than pile up.
	assert.Equal(t, worldStateTTL, mr.TTL("world:"+id.String()))
}

func TestLoadWorldStateNotFound(t *testing.T) {
	s, _, _ := newTestStorage(t)

	ws, err := s.LoadWorldState(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, ws)
}

func TestDeleteWorldState(t *testing.T) {
	s, _, _ := newTestStorage(t)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, s.SaveWorldState(ctx, id, &sim.WorldState{ID: id}))
	require.NoError(t, s.DeleteWorldState(ctx, id))

	ws, err := s.LoadWorldState(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, ws)
}

func TestListDefinitions(t *testing.T) {
	s, _, dir := newTestStorage(t)
	ctx := context.Background()

	writeDefinition(t, dir, "zeta", `{"id":"zeta","location":{"system":"helios"}}`)
	writeDefinition(t, dir, "alpha", `{"id":"alpha","location":{"system":"helios"}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "npcs", "notes.txt"), []byte("x"), 0o644))

	names, err := s.ListDefinitions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestGetDefinition(t *testing.T) {
	s, _, dir := newTestStorage(t)
	ctx := context.Background()

	writeDefinition(t, dir, "mara", `{
		"id": "mara",
		"archetype": "merchant",
		"location": {"system": "helios", "station": "kepler_gate"},
		"shop": {"sells": ["consumables"], "price_modifier": 1.1}
	}`)

	def, err := s.GetDefinition(ctx, "mara")
	require.NoError(t, err)
	assert.Equal(t, "mara", def.ID)
	assert.Equal(t, "merchant", def.Archetype)
	assert.Equal(t, 1.1, def.Shop.PriceModifier)

	_, err = s.GetDefinition(ctx, "missing")
	assert.Error(t, err)
}

func TestGetDefinitionRejectsUnknownFields(t *testing.T) {
	s, _, dir := newTestStorage(t)

	writeDefinition(t, dir, "typo", `{"id":"typo","location":{"system":"helios"},"shopp":{}}`)

	_, err := s.GetDefinition(context.Background(), "typo")
	assert.Error(t, err)
}

func TestGetDefinitionRejectsInvalidRecord(t *testing.T) {
	s, _, dir := newTestStorage(t)

	writeDefinition(t, dir, "nowhere", `{"id":"nowhere"}`)

	_, err := s.GetDefinition(context.Background(), "nowhere")
	require.Error(t, err)
	var verr *npc.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoadAllDefinitionsSkipsMalformed(t *testing.T) {
	s, _, dir := newTestStorage(t)

	writeDefinition(t, dir, "good", `{"id":"good","location":{"system":"helios"}}`)
	writeDefinition(t, dir, "broken", `{not json`)
	writeDefinition(t, dir, "invalid", `{"id":"invalid"}`)

	defs, err := s.LoadAllDefinitions(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "good", defs[0].ID)
}
