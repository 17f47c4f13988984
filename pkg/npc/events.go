package npc

import (
	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/relationship"
	"github.com/jwebster45206/npc-engine/pkg/shop"
)

// Trade direction tags for TradeCompleted events.
const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)

// Events receives notifications from entities: the outbound hook for
// narrative, UI and VFX collaborators. Implementations must be cheap and
// non-blocking; they run inline with entity mutation on the simulation
// thread.
type Events interface {
	TierChanged(npcID string, player actor.PlayerID, change relationship.TierChange)
	StateChanged(npcID string, from, to ActivityState)
	TradeCompleted(npcID string, player actor.PlayerID, direction string, receipt shop.Receipt)
	MissionAccepted(npcID string, player actor.PlayerID, offer mission.Offer)
}

// NopEvents discards all notifications.
type NopEvents struct{}

func (NopEvents) TierChanged(string, actor.PlayerID, relationship.TierChange) {}
func (NopEvents) StateChanged(string, ActivityState, ActivityState)           {}
func (NopEvents) TradeCompleted(string, actor.PlayerID, string, shop.Receipt) {}
func (NopEvents) MissionAccepted(string, actor.PlayerID, mission.Offer)       {}
