package actor

import (
	"math"

	"github.com/google/uuid"
)

// PlayerID identifies a player session. NPC relationship ledgers are keyed
// by PlayerID, so it must be stable for the lifetime of the session.
type PlayerID string

// NewPlayerID generates a fresh player identifier.
func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// Position is a point in 3-D world space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the Euclidean distance between two positions.
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Player is the collaborator contract the NPC core consumes. The core never
// assumes a concrete player type beyond this capability set; PC is the
// reference implementation.
type Player interface {
	ID() PlayerID

	// Position reports the player's world position. ok is false when the
	// caller has no position (e.g. a docked or menu-only session), in which
	// case range checks are skipped.
	Position() (Position, bool)

	// Credits is the player's current balance.
	Credits() float64
	// Deposit adds credits to the balance.
	Deposit(amount float64)
	// Withdraw removes credits. It fails without mutating the balance when
	// the balance is insufficient.
	Withdraw(amount float64) error

	// Inventory operations. RemoveItem reports false (and removes nothing)
	// when the player holds fewer than qty of the item.
	AddItem(itemID string, qty int)
	RemoveItem(itemID string, qty int) bool
	HasItem(itemID string, qty int) bool

	// AddMission records an accepted mission in the player's mission log.
	AddMission(missionID string)
	// HasCompletedMission reports whether the named mission is complete.
	HasCompletedMission(missionID string) bool

	// Rank is the player's progression rank.
	Rank() int
	// SkillLevel returns the level of a named skill, 0 if untrained.
	SkillLevel(name string) int
	// MemberOf reports faction membership.
	MemberOf(faction string) bool
}
