package npc

import (
	"time"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/shop"
)

// Snapshot is the persistable runtime state of one entity. Static
// configuration is not snapshotted; a restore re-spawns from the definition
// record and overlays this.
type Snapshot struct {
	ID           string                     `json:"id"`
	Position     actor.Position             `json:"position"`
	State        ActivityState              `json:"state"`
	Standings    map[actor.PlayerID]float64 `json:"standings,omitempty"`
	ShopItems    []shop.Item                `json:"shop_items,omitempty"`
	Offers       []mission.Offer            `json:"offers,omitempty"`
	LastAccepted time.Time                  `json:"last_accepted,omitzero"`
}

// Snapshot captures the entity's runtime state.
func (e *Entity) Snapshot() Snapshot {
	return Snapshot{
		ID:           e.id,
		Position:     e.position,
		State:        e.state,
		Standings:    e.relationships.Snapshot(),
		ShopItems:    e.shop.Items(""),
		Offers:       e.board.Active(e.clock()),
		LastAccepted: e.board.LastAccepted(),
	}
}

// RestoreSnapshot overlays persisted runtime state onto a freshly spawned
// entity. Transient conversation state is not restored; the entity wakes
// Idle unless it was sleeping.
func (e *Entity) RestoreSnapshot(s Snapshot) {
	e.position = s.Position
	e.moveDest = nil
	if s.State == StateSleeping {
		e.state = StateSleeping
	} else {
		e.state = StateIdle
	}
	for id, standing := range s.Standings {
		e.relationships.Set(id, standing)
	}
	e.shop.Restore(s.ShopItems)
	e.board.Restore(s.Offers, s.LastAccepted)
}
