package npc

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/dialogue"
	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/relationship"
	"github.com/jwebster45206/npc-engine/pkg/shop"
)

// ErrInvalidState is returned when an interaction is attempted while the
// NPC is talking, in combat, sleeping, or out of interaction range.
var ErrInvalidState = errors.New("npc cannot be interacted with")

// Standing side effects of player interactions.
const (
	buyStandingDelta  = 1.0
	sellStandingDelta = 0.5
)

// Ambient behavior tuning.
const (
	wanderChancePerSecond = 0.02
	moveSpeed             = 15.0 // units per second
)

// Player is the full collaborator contract an entity consumes. actor.Player
// satisfies it; the narrower per-package views keep the leaf packages free
// of cross-imports.
type Player interface {
	shop.Player
	mission.Player
	dialogue.Player
	ID() actor.PlayerID
	Position() (actor.Position, bool)
}

var _ Player = (actor.Player)(nil)

// Entity is one NPC: identity and location descriptors, an activity state
// machine, and the owned ledgers. All mutation happens on the single
// simulation thread; see the manager for the tick pass.
type Entity struct {
	id          string
	name        string
	archetype   string
	faction     string
	system      string
	station     string
	trait       string
	disposition string

	interactionRadius   float64
	wanderRadius        float64
	conversationTimeout time.Duration
	dailyRoutine        string

	position actor.Position
	home     actor.Position
	moveDest *actor.Position

	state             ActivityState
	conversingWith    actor.PlayerID
	conversationStart time.Time

	shop          *shop.Ledger
	board         *mission.Board
	relationships *relationship.Ledger
	graph         *dialogue.Graph

	events Events
	clock  func() time.Time
}

var _ dialogue.NPCState = (*Entity)(nil)

// NewEntity builds an entity from a definition record. The definition is
// validated after defaults; the returned error is a *ValidationError when
// the record is malformed. clock may be nil (time.Now).
func NewEntity(def Definition, rng *rand.Rand, events Events, clock func() time.Time) (*Entity, error) {
	def = def.ApplyDefaults()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if events == nil {
		events = NopEvents{}
	}
	if clock == nil {
		clock = time.Now
	}

	e := &Entity{
		id:                  def.ID,
		name:                def.DisplayName,
		archetype:           def.Archetype,
		faction:             def.Faction,
		system:              def.Location.System,
		station:             def.Location.Station,
		trait:               def.Personality.Trait,
		disposition:         def.Personality.Disposition,
		interactionRadius:   def.AIBehavior.InteractionRadius,
		wanderRadius:        def.AIBehavior.WanderRadius,
		conversationTimeout: time.Duration(def.AIBehavior.ConversationDurationSeconds) * time.Second,
		dailyRoutine:        def.AIBehavior.DailyRoutine,
		position:            def.Location.Position,
		home:                def.Location.Position,
		state:               StateIdle,
		shop:                shop.NewLedger(def.Shop.PriceModifier, def.sellCategories()),
		relationships:       relationship.NewLedger(def.Relationships.InitialStanding),
		events:              events,
		clock:               clock,
	}

	e.board = mission.NewBoard(
		def.ID,
		def.Missions.Offers,
		def.Missions.Weight,
		time.Duration(def.Missions.CooldownSeconds)*time.Second,
	)
	e.board.Populate(clock(), rng)

	e.graph = dialogue.NewGraph(
		e.name,
		def.Personality.Greeting,
		dialogue.ArchetypeNodes(def.Archetype, def.Faction),
	)
	return e, nil
}

func (e *Entity) ID() string               { return e.id }
func (e *Entity) Name() string             { return e.name }
func (e *Entity) Archetype() string        { return e.archetype }
func (e *Entity) Faction() string          { return e.faction }
func (e *Entity) System() string           { return e.system }
func (e *Entity) Station() string          { return e.station }
func (e *Entity) Trait() string            { return e.trait }
func (e *Entity) Disposition() string      { return e.disposition }
func (e *Entity) Position() actor.Position { return e.position }
func (e *Entity) State() ActivityState     { return e.state }
func (e *Entity) InteractionRadius() float64 {
	return e.interactionRadius
}

// Shop exposes the shop ledger for listings; transactions go through Buy
// and Sell so standing side effects apply.
func (e *Entity) Shop() *shop.Ledger { return e.shop }

// ShopStocked implements dialogue.NPCState.
func (e *Entity) ShopStocked() bool { return e.shop.Stocked() }

// OpenOfferCount implements dialogue.NPCState.
func (e *Entity) OpenOfferCount() int {
	return len(e.board.Active(e.clock()))
}

// ActiveOffers returns the unexpired offers on the board.
func (e *Entity) ActiveOffers() []mission.Offer {
	return e.board.Active(e.clock())
}

// Standing returns the player's standing with this NPC.
func (e *Entity) Standing(id actor.PlayerID) float64 {
	return e.relationships.Standing(id)
}

// Tier returns the player's current relationship tier.
func (e *Entity) Tier(id actor.PlayerID) relationship.Tier {
	return e.relationships.Tier(id)
}

// ModifyStanding applies a standing delta and emits a tier-change event
// when a breakpoint is crossed.
func (e *Entity) ModifyStanding(id actor.PlayerID, delta float64) (relationship.TierChange, error) {
	change, err := e.relationships.Modify(id, delta)
	if err != nil {
		return change, err
	}
	if change.Changed {
		e.events.TierChanged(e.id, id, change)
	}
	return change, nil
}

// CanInteract reports whether the player may start an interaction right
// now: the NPC must not be talking, in combat or sleeping, and the caller
// must be within the interaction radius when a position is supplied.
func (e *Entity) CanInteract(p Player) bool {
	if !e.state.Interruptible() {
		return false
	}
	if pos, ok := p.Position(); ok {
		if pos.DistanceTo(e.position) > e.interactionRadius {
			return false
		}
	}
	return true
}

// StartConversation transitions the entity to Talking and returns the
// dialogue options currently open to the caller.
func (e *Entity) StartConversation(p Player) ([]dialogue.Node, error) {
	if !e.state.Interruptible() {
		return nil, fmt.Errorf("%s is %s: %w", e.id, e.state, ErrInvalidState)
	}
	if pos, ok := p.Position(); ok {
		if d := pos.DistanceTo(e.position); d > e.interactionRadius {
			return nil, fmt.Errorf("%s is %.0f units away (radius %.0f): %w", e.id, d, e.interactionRadius, ErrInvalidState)
		}
	}

	e.moveDest = nil
	e.setState(StateTalking)
	e.conversingWith = p.ID()
	e.conversationStart = e.clock()
	return e.Options(p), nil
}

// EndConversation returns the entity to Idle. Safe to call in any state.
func (e *Entity) EndConversation() {
	if e.state != StateTalking {
		return
	}
	e.conversingWith = ""
	e.setState(StateIdle)
}

// ConversingWith returns the player in the active conversation, "" if none.
func (e *Entity) ConversingWith() actor.PlayerID { return e.conversingWith }

// Options evaluates the dialogue graph for the player. Pure: gating is
// re-checked against live tier, faction and mission state on every call.
func (e *Entity) Options(p Player) []dialogue.Node {
	return e.graph.AvailableOptions(e, p, e.relationships.Standing(p.ID()))
}

// Buy purchases qty of an item from this NPC's shop. A successful purchase
// nudges standing up by +1.
func (e *Entity) Buy(p Player, itemID string, qty int) (shop.Receipt, error) {
	receipt, err := e.shop.Buy(p, itemID, qty)
	if err != nil {
		return receipt, err
	}
	e.events.TradeCompleted(e.id, p.ID(), TradeBuy, receipt)
	// Standing delta is finite by construction; the error path is unreachable.
	_, _ = e.ModifyStanding(p.ID(), buyStandingDelta)
	return receipt, nil
}

// Sell sells qty of a player-held item to this NPC.
func (e *Entity) Sell(p Player, itemID string, qty int) (shop.Receipt, error) {
	receipt, err := e.shop.Sell(p, itemID, qty)
	if err != nil {
		return receipt, err
	}
	e.events.TradeCompleted(e.id, p.ID(), TradeSell, receipt)
	_, _ = e.ModifyStanding(p.ID(), sellStandingDelta)
	return receipt, nil
}

// IsOfferAvailable reports whether the player meets an offer's gate.
func (e *Entity) IsOfferAvailable(o mission.Offer, p Player) bool {
	return e.board.IsAvailable(o, p, e.relationships.Standing(p.ID()), e.clock())
}

// AcceptMission hands an offer to the player's mission log and removes it
// from the board. The offer's standing reward applies on acceptance.
func (e *Entity) AcceptMission(p Player, offerID string) (mission.Offer, error) {
	offer, err := e.board.Accept(e.clock(), p, offerID, e.relationships.Standing(p.ID()))
	if err != nil {
		return offer, err
	}
	e.events.MissionAccepted(e.id, p.ID(), offer)
	if offer.Reward.Standing != 0 {
		_, _ = e.ModifyStanding(p.ID(), offer.Reward.Standing)
	}
	return offer, nil
}

// EnterCombat forces the Combat state, ending any active conversation.
// Combat resolution itself belongs to an external collaborator; the entity
// only tracks the mode so interaction attempts are rejected.
func (e *Entity) EnterCombat() {
	if e.state == StateTalking {
		e.EndConversation()
	}
	e.moveDest = nil
	e.setState(StateCombat)
}

// ExitCombat returns the entity to Idle.
func (e *Entity) ExitCombat() {
	if e.state != StateCombat {
		return
	}
	e.setState(StateIdle)
}

// Tick runs one housekeeping pass: conversation timeout, offer expiry and
// regeneration, daily routine, and ambient wandering.
func (e *Entity) Tick(now time.Time, dt time.Duration, rng *rand.Rand) {
	if e.state == StateTalking && now.Sub(e.conversationStart) > e.conversationTimeout {
		e.EndConversation()
	}

	e.board.Prune(now)
	e.board.Regenerate(now, dt, rng)

	e.tickRoutine(now)
	e.tickMovement(now, dt, rng)
}

// tickRoutine toggles Sleeping according to the configured daily routine.
// Conversations are never interrupted by the routine; the timeout handles
// those.
func (e *Entity) tickRoutine(now time.Time) {
	start, end, ok := sleepWindow(e.dailyRoutine)
	if !ok {
		return
	}
	hour := now.Hour()
	asleep := inHourWindow(hour, start, end)
	switch {
	case asleep && e.state == StateIdle:
		e.moveDest = nil
		e.setState(StateSleeping)
	case !asleep && e.state == StateSleeping:
		e.setState(StateIdle)
	}
}

func sleepWindow(routine string) (start, end int, ok bool) {
	switch routine {
	case "", "none":
		return 0, 0, false
	case "nocturnal":
		return 10, 16, true
	default: // "standard" and anything unrecognized sleeps at night
		return 1, 6, true
	}
}

func inHourWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// tickMovement advances the ambient Idle <-> Moving cycle: a probabilistic
// wander start, straight-line travel toward the destination, and arrival.
func (e *Entity) tickMovement(now time.Time, dt time.Duration, rng *rand.Rand) {
	switch e.state {
	case StateIdle:
		if e.wanderRadius <= 0 {
			return
		}
		if rng.Float64() >= wanderChancePerSecond*dt.Seconds() {
			return
		}
		dest := actor.Position{
			X: e.home.X + (rng.Float64()*2-1)*e.wanderRadius,
			Y: e.home.Y + (rng.Float64()*2-1)*e.wanderRadius,
			Z: e.home.Z,
		}
		e.moveDest = &dest
		e.setState(StateMoving)

	case StateMoving:
		if e.moveDest == nil {
			e.setState(StateIdle)
			return
		}
		step := moveSpeed * dt.Seconds()
		dist := e.position.DistanceTo(*e.moveDest)
		if dist <= step {
			e.position = *e.moveDest
			e.moveDest = nil
			e.setState(StateIdle)
			return
		}
		frac := step / dist
		e.position.X += (e.moveDest.X - e.position.X) * frac
		e.position.Y += (e.moveDest.Y - e.position.Y) * frac
		e.position.Z += (e.moveDest.Z - e.position.Z) * frac
	}
}

func (e *Entity) setState(to ActivityState) {
	if e.state == to {
		return
	}
	from := e.state
	e.state = to
	e.events.StateChanged(e.id, from, to)
}
