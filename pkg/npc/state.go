// Package npc implements the NPC entity: an activity state machine
// composed with a relationship ledger, dialogue graph, shop ledger and
// mission offer board.
package npc

import (
	"encoding/json"
	"fmt"
)

// ActivityState is the mutually exclusive behavioral mode an entity
// occupies. Exactly one state is active at any time.
type ActivityState int

const (
	StateIdle ActivityState = iota
	StateTalking
	StateTrading
	StateMissionOffer
	StateMoving
	StateSleeping
	StateCombat
)

var stateNames = map[ActivityState]string{
	StateIdle:         "idle",
	StateTalking:      "talking",
	StateTrading:      "trading",
	StateMissionOffer: "mission_offer",
	StateMoving:       "moving",
	StateSleeping:     "sleeping",
	StateCombat:       "combat",
}

func (s ActivityState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Interruptible reports whether a new conversation may start in this state.
// Talking, Combat and Sleeping reject interaction attempts.
func (s ActivityState) Interruptible() bool {
	switch s {
	case StateTalking, StateCombat, StateSleeping:
		return false
	default:
		return true
	}
}

// ParseActivityState resolves a state name from a snapshot.
func ParseActivityState(name string) (ActivityState, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return StateIdle, fmt.Errorf("unknown activity state %q", name)
}

// MarshalJSON serializes the state by name so snapshots stay readable and
// stable across reorderings of the enum.
func (s ActivityState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ActivityState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseActivityState(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
