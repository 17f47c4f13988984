package sim

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/npc-engine/pkg/npc"
)

// WorldState is the persistable runtime state of a whole world: one
// snapshot per registered NPC. Definitions are not embedded; a restore
// re-spawns from the definition set and overlays these snapshots.
type WorldState struct {
	ID      uuid.UUID      `json:"id"`
	SavedAt time.Time      `json:"saved_at"`
	NPCs    []npc.Snapshot `json:"npcs"`
}

// Snapshot captures every entity's runtime state.
func (m *Manager) Snapshot(worldID uuid.UUID) *WorldState {
	ws := &WorldState{
		ID:      worldID,
		SavedAt: m.now(),
		NPCs:    make([]npc.Snapshot, 0, len(m.order)),
	}
	for _, e := range m.All() {
		ws.NPCs = append(ws.NPCs, e.Snapshot())
	}
	return ws
}

// Restore overlays a world snapshot onto already-spawned entities.
// Snapshots for unknown NPCs are skipped with a warning: a definition may
// have been removed since the save.
func (m *Manager) Restore(ws *WorldState) {
	if ws == nil {
		return
	}
	for _, snap := range ws.NPCs {
		e, ok := m.npcs[snap.ID]
		if !ok {
			m.logger.Warn("Snapshot for unknown NPC skipped", "npc", snap.ID)
			continue
		}
		e.RestoreSnapshot(snap)
	}
	m.logger.Info("World state restored", "world", ws.ID, "saved_at", ws.SavedAt, "npcs", len(ws.NPCs))
}
