// Package dialogue implements the conditional dialogue graph: which
// conversation options an NPC surfaces to a given player right now.
package dialogue

// Well-known node ids. Archetype-specific nodes carry their own ids.
const (
	NodeGreeting = "greeting"
	NodeShop     = "shop"
	NodeMissions = "missions"
	NodeFarewell = "farewell"
)

// When is the condition set gating a node. All set conditions must hold.
// A nil When means the node is always available.
type When struct {
	MinStanding      *float64 `json:"min_standing,omitempty"`      // player standing >= this value
	Faction          string   `json:"faction,omitempty"`           // player must be a member
	MissionCompleted string   `json:"mission_completed,omitempty"` // named mission must be complete
}

// Node is a single dialogue option. Terminal nodes end the conversation;
// otherwise Next names the follow-up node.
type Node struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Next     string `json:"next,omitempty"`
	Terminal bool   `json:"terminal,omitempty"`
	When     *When  `json:"when,omitempty"`
}

// Player is the minimal view of the caller needed to evaluate node
// conditions. Standing is passed separately because it lives in the NPC's
// relationship ledger, not on the player.
type Player interface {
	MemberOf(faction string) bool
	HasCompletedMission(missionID string) bool
}

// evaluateWhen checks if all conditions on a node are met.
func evaluateWhen(when *When, p Player, standing float64) bool {
	if when == nil {
		return true
	}
	if when.MinStanding != nil && standing < *when.MinStanding {
		return false
	}
	if when.Faction != "" && !p.MemberOf(when.Faction) {
		return false
	}
	if when.MissionCompleted != "" && !p.HasCompletedMission(when.MissionCompleted) {
		return false
	}
	return true
}
