package relationship

import (
	"errors"
	"fmt"
	"math"

	"github.com/jwebster45206/npc-engine/pkg/actor"
)

// ErrInvalidDelta is returned by Modify for NaN or infinite deltas.
var ErrInvalidDelta = errors.New("standing delta must be a finite number")

// TierChange reports the result of a standing mutation. Changed is true
// when the mutation crossed a tier breakpoint; callers use it to emit
// tier-change events. Gated content must consult the current tier live
// rather than latching on Changed: standing can regress and re-lock.
type TierChange struct {
	Standing float64
	Old      Tier
	New      Tier
	Changed  bool
}

// Ledger holds one NPC's standing per player. Players with no record yet
// read as the configured initial standing.
type Ledger struct {
	initial   float64
	standings map[actor.PlayerID]float64
}

// NewLedger creates a ledger with the given initial standing for unknown
// players. The initial value is clamped to the standing bounds.
func NewLedger(initial float64) *Ledger {
	return &Ledger{
		initial:   clamp(initial),
		standings: make(map[actor.PlayerID]float64),
	}
}

// Standing returns the stored value for the player, or the initial standing
// if the player has no record.
func (l *Ledger) Standing(id actor.PlayerID) float64 {
	if v, ok := l.standings[id]; ok {
		return v
	}
	return l.initial
}

// Tier returns the player's current tier.
func (l *Ledger) Tier(id actor.PlayerID) Tier {
	return TierOf(l.Standing(id))
}

// Modify applies a delta to the player's standing, clamped to
// [MinStanding, MaxStanding], and reports the tier transition. The ledger
// is unchanged on error.
func (l *Ledger) Modify(id actor.PlayerID, delta float64) (TierChange, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return TierChange{}, fmt.Errorf("modify standing for %s: %w", id, ErrInvalidDelta)
	}

	old := l.Standing(id)
	next := clamp(old + delta)
	l.standings[id] = next

	change := TierChange{
		Standing: next,
		Old:      TierOf(old),
		New:      TierOf(next),
	}
	change.Changed = change.Old != change.New
	return change, nil
}

// Set overwrites a player's standing, clamped. Used when restoring a world
// snapshot.
func (l *Ledger) Set(id actor.PlayerID, standing float64) {
	l.standings[id] = clamp(standing)
}

// Snapshot returns a copy of all per-player standings.
func (l *Ledger) Snapshot() map[actor.PlayerID]float64 {
	out := make(map[actor.PlayerID]float64, len(l.standings))
	for id, v := range l.standings {
		out[id] = v
	}
	return out
}

func clamp(v float64) float64 {
	return math.Max(MinStanding, math.Min(MaxStanding, v))
}
