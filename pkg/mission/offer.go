// Package mission implements the time-bounded, requirement-gated offer
// board an NPC presents to players.
package mission

import "time"

// Reward is the bundle granted when a mission completes. The core hands it
// to the player's mission log; payout happens outside this package.
type Reward struct {
	Credits  float64  `json:"credits,omitempty"`
	Items    []string `json:"items,omitempty"`
	Standing float64  `json:"standing,omitempty"` // applied on acceptance
}

// Requirements is the optional gate on an offer. All set fields must be
// satisfied by the player's current attributes.
type Requirements struct {
	MinStanding *float64       `json:"min_standing,omitempty"`
	MinRank     *int           `json:"min_rank,omitempty"`
	Skills      map[string]int `json:"skills,omitempty"` // skill name -> minimum level
}

// Offer is one mission on the board. An offer past its expiry must never be
// surfaced as available.
type Offer struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Type         string        `json:"type"`
	Difficulty   string        `json:"difficulty,omitempty"`
	Duration     string        `json:"duration,omitempty"`
	Reward       Reward        `json:"reward"`
	NPC          string        `json:"npc"` // offering NPC id
	Expiry       time.Time     `json:"expiry"`
	Requirements *Requirements `json:"requirements,omitempty"`
}

// Expired reports whether the offer is past its expiry at the given time.
func (o Offer) Expired(now time.Time) bool {
	return !now.Before(o.Expiry)
}

// Player is the view of the caller needed to evaluate requirements.
// Standing is supplied by the NPC's relationship ledger.
type Player interface {
	Rank() int
	SkillLevel(name string) int
	AddMission(missionID string)
}

// MeetsRequirements reports whether the player satisfies the offer's gate.
// Offers without requirements are open to everyone.
func (o Offer) MeetsRequirements(p Player, standing float64) bool {
	r := o.Requirements
	if r == nil {
		return true
	}
	if r.MinStanding != nil && standing < *r.MinStanding {
		return false
	}
	if r.MinRank != nil && p.Rank() < *r.MinRank {
		return false
	}
	for skill, min := range r.Skills {
		if p.SkillLevel(skill) < min {
			return false
		}
	}
	return true
}
