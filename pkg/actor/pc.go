package actor

import (
	"errors"
	"fmt"
	"maps"

	"github.com/jwebster45206/d20"
)

// ErrInsufficientCredits is returned by Withdraw when the balance can't
// cover the requested amount.
var ErrInsufficientCredits = errors.New("insufficient credits")

// PCSpec is the serializable specification for a player character.
type PCSpec struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	Rank        int            `json:"rank,omitempty"`
	Credits     float64        `json:"credits,omitempty"`
	Factions    []string       `json:"factions,omitempty"`
	Skills      map[string]int `json:"skills,omitempty"`
	Attributes  map[string]int `json:"attributes,omitempty"` // extra d20 attributes
	Inventory   map[string]int `json:"inventory,omitempty"`
	MissionLog  []string       `json:"mission_log,omitempty"`
	Completed   []string       `json:"completed_missions,omitempty"`
	Description string         `json:"description,omitempty"`
}

// PC is the runtime representation of a player character. Skills and rank
// are carried as d20 actor attributes so downstream checks share one
// attribute table.
type PC struct {
	Spec  *PCSpec
	Actor *d20.Actor

	playerID  PlayerID
	pos       *Position
	credits   float64
	inventory map[string]int
	missions  []string
	completed map[string]bool
	factions  map[string]bool
}

var _ Player = (*PC)(nil)

// NewPCFromSpec builds a PC from its spec. This is the preferred way to
// construct PCs after loading from storage.
func NewPCFromSpec(spec *PCSpec) (*PC, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}

	attrs := map[string]int{"rank": spec.Rank}
	maps.Copy(attrs, spec.Skills)
	maps.Copy(attrs, spec.Attributes)

	a, err := d20.NewActor(spec.ID).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	pc := &PC{
		Spec:      spec,
		Actor:     a,
		playerID:  PlayerID(spec.ID),
		credits:   spec.Credits,
		inventory: make(map[string]int, len(spec.Inventory)),
		completed: make(map[string]bool, len(spec.Completed)),
		factions:  make(map[string]bool, len(spec.Factions)),
	}
	maps.Copy(pc.inventory, spec.Inventory)
	pc.missions = append(pc.missions, spec.MissionLog...)
	for _, id := range spec.Completed {
		pc.completed[id] = true
	}
	for _, f := range spec.Factions {
		pc.factions[f] = true
	}
	return pc, nil
}

func (pc *PC) ID() PlayerID { return pc.playerID }

// MoveTo sets the player's world position.
func (pc *PC) MoveTo(pos Position) { pc.pos = &pos }

// ClearPosition marks the player as having no world position.
func (pc *PC) ClearPosition() { pc.pos = nil }

func (pc *PC) Position() (Position, bool) {
	if pc.pos == nil {
		return Position{}, false
	}
	return *pc.pos, true
}

func (pc *PC) Credits() float64 { return pc.credits }

func (pc *PC) Deposit(amount float64) { pc.credits += amount }

func (pc *PC) Withdraw(amount float64) error {
	if amount > pc.credits {
		return fmt.Errorf("withdraw %.2f: %w", amount, ErrInsufficientCredits)
	}
	pc.credits -= amount
	return nil
}

func (pc *PC) AddItem(itemID string, qty int) {
	if qty <= 0 {
		return
	}
	pc.inventory[itemID] += qty
}

func (pc *PC) RemoveItem(itemID string, qty int) bool {
	if qty <= 0 || pc.inventory[itemID] < qty {
		return false
	}
	pc.inventory[itemID] -= qty
	if pc.inventory[itemID] == 0 {
		delete(pc.inventory, itemID)
	}
	return true
}

func (pc *PC) HasItem(itemID string, qty int) bool {
	return pc.inventory[itemID] >= qty
}

// ItemCount returns the held quantity of an item.
func (pc *PC) ItemCount(itemID string) int { return pc.inventory[itemID] }

func (pc *PC) AddMission(missionID string) {
	pc.missions = append(pc.missions, missionID)
}

// Missions returns the accepted mission log in acceptance order.
func (pc *PC) Missions() []string { return pc.missions }

// CompleteMission marks a mission complete. Dialogue and offer gating read
// completion state live, so this takes effect immediately.
func (pc *PC) CompleteMission(missionID string) {
	pc.completed[missionID] = true
}

func (pc *PC) HasCompletedMission(missionID string) bool {
	return pc.completed[missionID]
}

func (pc *PC) Rank() int {
	if v, ok := pc.Actor.Attribute("rank"); ok {
		return v
	}
	return 0
}

func (pc *PC) SkillLevel(name string) int {
	if v, ok := pc.Actor.Attribute(name); ok {
		return v
	}
	return 0
}

func (pc *PC) MemberOf(faction string) bool { return pc.factions[faction] }
