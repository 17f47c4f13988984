package sim

import (
	"log/slog"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/relationship"
	"github.com/jwebster45206/npc-engine/pkg/shop"
)

// LogEvents is the default event sink: structured logs only. Deployments
// that want fan-out swap in the redis broadcaster.
type LogEvents struct {
	logger *slog.Logger
}

var _ npc.Events = (*LogEvents)(nil)

func NewLogEvents(logger *slog.Logger) *LogEvents {
	return &LogEvents{logger: logger}
}

func (l *LogEvents) TierChanged(npcID string, player actor.PlayerID, change relationship.TierChange) {
	l.logger.Info("Relationship tier changed",
		"npc", npcID,
		"player", string(player),
		"old_tier", change.Old.String(),
		"new_tier", change.New.String(),
		"standing", change.Standing)
}

func (l *LogEvents) StateChanged(npcID string, from, to npc.ActivityState) {
	l.logger.Debug("NPC state changed",
		"npc", npcID,
		"from", from.String(),
		"to", to.String())
}

func (l *LogEvents) TradeCompleted(npcID string, player actor.PlayerID, direction string, receipt shop.Receipt) {
	l.logger.Info("Trade completed",
		"npc", npcID,
		"player", string(player),
		"direction", direction,
		"item", receipt.ItemID,
		"qty", receipt.Quantity,
		"total", receipt.Total)
}

func (l *LogEvents) MissionAccepted(npcID string, player actor.PlayerID, offer mission.Offer) {
	l.logger.Info("Mission accepted",
		"npc", npcID,
		"player", string(player),
		"offer", offer.ID,
		"type", offer.Type,
		"title", offer.Title)
}
