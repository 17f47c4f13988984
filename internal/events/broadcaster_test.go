package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/relationship"
	"github.com/jwebster45206/npc-engine/pkg/shop"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// subscribe opens a confirmed subscription on the broadcaster's channel.
func subscribe(t *testing.T, addr, channel string) *redis.PubSub {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ps := client.Subscribe(ctx, channel)
	t.Cleanup(func() { _ = ps.Close() })
	_, err := ps.Receive(ctx)
	require.NoError(t, err)
	return ps
}

func receiveEvent(t *testing.T, ps *redis.PubSub) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msg, err := ps.ReceiveMessage(ctx)
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
	return event
}

func TestNewBroadcasterBadURL(t *testing.T) {
	_, err := NewBroadcaster("not-a-url", "w1", testLogger())
	assert.Error(t, err)
}

func TestChannelIsScopedByWorld(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewBroadcaster("redis://"+mr.Addr(), "world-42", testLogger())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, "npc-events:world-42", b.Channel())
}

func TestPublishesTierChanged(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewBroadcaster("redis://"+mr.Addr(), "w1", testLogger())
	require.NoError(t, err)
	defer b.Close()

	ps := subscribe(t, mr.Addr(), b.Channel())

	b.TierChanged("mara", "p1", relationship.TierChange{
		Standing: 25,
		Old:      relationship.TierNeutral,
		New:      relationship.TierFriendly,
		Changed:  true,
	})

	event := receiveEvent(t, ps)
	assert.Equal(t, EventTypeTierChanged, event.Type)
	assert.Equal(t, "mara", event.NPC)
	assert.Equal(t, "p1", event.Player)
	assert.Equal(t, "neutral", event.Data["old_tier"])
	assert.Equal(t, "friendly", event.Data["new_tier"])
	assert.Equal(t, 25.0, event.Data["standing"])
}

func TestPublishesStateChanged(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewBroadcaster("redis://"+mr.Addr(), "w1", testLogger())
	require.NoError(t, err)
	defer b.Close()

	ps := subscribe(t, mr.Addr(), b.Channel())

	b.StateChanged("mara", npc.StateIdle, npc.StateTalking)

	event := receiveEvent(t, ps)
	assert.Equal(t, EventTypeStateChanged, event.Type)
	assert.Equal(t, "idle", event.Data["from"])
	assert.Equal(t, "talking", event.Data["to"])
}

func TestPublishesTradeCompleted(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewBroadcaster("redis://"+mr.Addr(), "w1", testLogger())
	require.NoError(t, err)
	defer b.Close()

	ps := subscribe(t, mr.Addr(), b.Channel())

	b.TradeCompleted("mara", "p1", npc.TradeBuy, shop.Receipt{
		ItemID:   "med_stim",
		Name:     "Medical Stim",
		Quantity: 2,
		Total:    80,
	})

	event := receiveEvent(t, ps)
	assert.Equal(t, EventTypeTradeCompleted, event.Type)
	assert.Equal(t, "buy", event.Data["direction"])
	assert.Equal(t, "med_stim", event.Data["item"])
	assert.Equal(t, 2.0, event.Data["qty"]) // JSON numbers decode as float64
	assert.Equal(t, 80.0, event.Data["total"])
}

func TestPublishesMissionAccepted(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewBroadcaster("redis://"+mr.Addr(), "w1", testLogger())
	require.NoError(t, err)
	defer b.Close()

	ps := subscribe(t, mr.Addr(), b.Channel())

	b.MissionAccepted("mara", "p1", mission.Offer{
		ID:    "offer-1",
		Type:  "delivery",
		Title: "Priority Courier Run",
	})

	event := receiveEvent(t, ps)
	assert.Equal(t, EventTypeMissionAccepted, event.Type)
	assert.Equal(t, "offer-1", event.Data["offer"])
	assert.Equal(t, "delivery", event.Data["type"])
}

// Publish failures are swallowed: a dead broker must not fail interactions.
func TestPublishFailureDoesNotPanic(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := NewBroadcaster("redis://"+mr.Addr(), "w1", testLogger())
	require.NoError(t, err)
	defer b.Close()

	mr.Close()
	assert.NotPanics(t, func() {
		b.StateChanged("mara", npc.StateIdle, npc.StateMoving)
	})
}
