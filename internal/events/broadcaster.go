// Package events publishes NPC simulation events to redis pub/sub so UI
// and narrative collaborators outside the process can subscribe.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/relationship"
	"github.com/jwebster45206/npc-engine/pkg/shop"
)

// EventType tags a published event.
type EventType string

const (
	EventTypeTierChanged     EventType = "npc.tier_changed"
	EventTypeStateChanged    EventType = "npc.state_changed"
	EventTypeTradeCompleted  EventType = "npc.trade_completed"
	EventTypeMissionAccepted EventType = "npc.mission_accepted"
)

// Event is the wire structure published per notification.
type Event struct {
	Type   EventType      `json:"type"`
	NPC    string         `json:"npc"`
	Player string         `json:"player,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Broadcaster implements npc.Events over redis pub/sub. Publish failures
// are logged, never propagated: event fan-out must not fail a player
// interaction.
type Broadcaster struct {
	client  *redis.Client
	logger  *slog.Logger
	channel string
}

var _ npc.Events = (*Broadcaster)(nil)

// NewBroadcaster creates a broadcaster publishing to npc-events:<worldID>.
func NewBroadcaster(redisURL, worldID string, logger *slog.Logger) (*Broadcaster, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &Broadcaster{
		client:  redis.NewClient(opt),
		logger:  logger,
		channel: "npc-events:" + worldID,
	}, nil
}

// Channel returns the pub/sub channel name subscribers should use.
func (b *Broadcaster) Channel() string { return b.channel }

func (b *Broadcaster) Close() error { return b.client.Close() }

func (b *Broadcaster) TierChanged(npcID string, player actor.PlayerID, change relationship.TierChange) {
	b.publish(Event{
		Type:   EventTypeTierChanged,
		NPC:    npcID,
		Player: string(player),
		Data: map[string]any{
			"old_tier": change.Old.String(),
			"new_tier": change.New.String(),
			"standing": change.Standing,
		},
	})
}

func (b *Broadcaster) StateChanged(npcID string, from, to npc.ActivityState) {
	b.publish(Event{
		Type: EventTypeStateChanged,
		NPC:  npcID,
		Data: map[string]any{
			"from": from.String(),
			"to":   to.String(),
		},
	})
}

func (b *Broadcaster) TradeCompleted(npcID string, player actor.PlayerID, direction string, receipt shop.Receipt) {
	b.publish(Event{
		Type:   EventTypeTradeCompleted,
		NPC:    npcID,
		Player: string(player),
		Data: map[string]any{
			"direction": direction,
			"item":      receipt.ItemID,
			"qty":       receipt.Quantity,
			"total":     receipt.Total,
		},
	})
}

func (b *Broadcaster) MissionAccepted(npcID string, player actor.PlayerID, offer mission.Offer) {
	b.publish(Event{
		Type:   EventTypeMissionAccepted,
		NPC:    npcID,
		Player: string(player),
		Data: map[string]any{
			"offer": offer.ID,
			"type":  offer.Type,
			"title": offer.Title,
		},
	})
}

func (b *Broadcaster) publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "type", event.Type)
		return
	}

	if err := b.client.Publish(context.Background(), b.channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", b.channel)
		return
	}

	b.logger.Debug("Event published", "channel", b.channel, "type", event.Type, "npc", event.NPC)
}
