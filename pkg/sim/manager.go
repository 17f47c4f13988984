// Package sim owns the authoritative NPC collection and the per-tick
// update pass.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/npc"
)

// Manager is the NPC registry. A single simulation thread owns all entity
// mutation: player interaction calls go to entities between ticks, never
// concurrently with Tick against the same entity.
type Manager struct {
	logger *slog.Logger
	events npc.Events
	rng    *rand.Rand
	now    func() time.Time

	npcs  map[string]*npc.Entity
	order []string // spawn order, for deterministic tick sequence
}

// Option configures a Manager.
type Option func(*Manager)

// WithEvents routes entity events to the given sink.
func WithEvents(events npc.Events) Option {
	return func(m *Manager) { m.events = events }
}

// WithSeed makes ambient behavior deterministic.
func WithSeed(seed int64) Option {
	return func(m *Manager) { m.rng = rand.New(rand.NewSource(seed)) }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates an empty registry. There is no ambient global
// instance; callers construct one at simulation startup and pass it down.
func NewManager(logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		npcs:   make(map[string]*npc.Entity),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.events == nil {
		m.events = NewLogEvents(logger)
	}
	return m
}

// Spawn creates an entity from a definition record and registers it.
func (m *Manager) Spawn(def npc.Definition) (string, error) {
	entity, err := npc.NewEntity(def, m.rng, m.events, m.now)
	if err != nil {
		return "", fmt.Errorf("spawn: %w", err)
	}
	if _, exists := m.npcs[entity.ID()]; exists {
		return "", fmt.Errorf("spawn: duplicate npc id %q", entity.ID())
	}

	m.npcs[entity.ID()] = entity
	m.order = append(m.order, entity.ID())
	m.logger.Info("NPC spawned",
		"npc", entity.ID(),
		"archetype", entity.Archetype(),
		"system", entity.System(),
		"station", entity.Station())
	return entity.ID(), nil
}

// SpawnAll spawns every definition, skipping malformed records with a
// logged warning. Returns the number spawned.
func (m *Manager) SpawnAll(defs []npc.Definition) int {
	spawned := 0
	for _, def := range defs {
		if _, err := m.Spawn(def); err != nil {
			m.logger.Warn("Skipping NPC definition", "npc", def.ID, "error", err)
			continue
		}
		spawned++
	}
	return spawned
}

// Despawn removes an entity. Returns false if the id is unknown.
func (m *Manager) Despawn(id string) bool {
	if _, ok := m.npcs[id]; !ok {
		return false
	}
	delete(m.npcs, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.logger.Info("NPC despawned", "npc", id)
	return true
}

// Get returns the entity with the given id.
func (m *Manager) Get(id string) (*npc.Entity, bool) {
	e, ok := m.npcs[id]
	return e, ok
}

// Count returns the number of registered entities.
func (m *Manager) Count() int { return len(m.npcs) }

// All returns every entity in spawn order.
func (m *Manager) All() []*npc.Entity {
	out := make([]*npc.Entity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.npcs[id])
	}
	return out
}

// ByArchetype returns entities with the given archetype tag.
func (m *Manager) ByArchetype(tag string) []*npc.Entity {
	var out []*npc.Entity
	for _, e := range m.All() {
		if e.Archetype() == tag {
			out = append(out, e)
		}
	}
	return out
}

// ByLocation returns entities in a system, optionally narrowed to one
// station ("" matches any).
func (m *Manager) ByLocation(system, station string) []*npc.Entity {
	var out []*npc.Entity
	for _, e := range m.All() {
		if e.System() != system {
			continue
		}
		if station != "" && e.Station() != station {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NpcsNear returns entities within radius of a position, nearest first.
func (m *Manager) NpcsNear(pos actor.Position, radius float64) []*npc.Entity {
	var out []*npc.Entity
	for _, e := range m.All() {
		if pos.DistanceTo(e.Position()) <= radius {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return pos.DistanceTo(out[i].Position()) < pos.DistanceTo(out[j].Position())
	})
	return out
}

// InteractableNpcsFor returns the entities the player could start an
// interaction with right now. Players without a position see every entity
// that is in an interruptible state.
func (m *Manager) InteractableNpcsFor(p npc.Player) []*npc.Entity {
	var out []*npc.Entity
	for _, e := range m.All() {
		if e.CanInteract(p) {
			out = append(out, e)
		}
	}
	return out
}

// Tick advances every entity once, in spawn order: conversation timers,
// offer expiry and regeneration, routine and ambient movement. One call per
// simulation step; no entity update suspends mid-pass.
func (m *Manager) Tick(dt time.Duration) {
	now := m.now()
	for _, id := range m.order {
		m.npcs[id].Tick(now, dt, m.rng)
	}
}
