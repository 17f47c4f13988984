package mission

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrNotFound           = errors.New("offer not found")
	ErrRequirementsNotMet = errors.New("requirements not met")
)

// Board is one NPC's offer list. Expired offers are pruned on every manager
// tick and filtered again on read, so a stale offer is never observable even
// between ticks.
type Board struct {
	npcID    string
	types    []string
	weight   float64
	cooldown time.Duration

	offers       []Offer
	lastAccepted time.Time
}

// NewBoard creates a board that generates offers of the given type tags.
// weight scales the per-tick regeneration chance; cooldown gates how soon
// after an acceptance the empty board may refill.
func NewBoard(npcID string, types []string, weight float64, cooldown time.Duration) *Board {
	return &Board{
		npcID:    npcID,
		types:    types,
		weight:   weight,
		cooldown: cooldown,
	}
}

// Populate seeds the initial offer pool, one offer per configured type.
func (b *Board) Populate(now time.Time, rng *rand.Rand) {
	for _, t := range b.types {
		if o, ok := generateOffer(b.npcID, t, now, rng); ok {
			b.offers = append(b.offers, o)
		}
	}
}

// Active returns the unexpired offers.
func (b *Board) Active(now time.Time) []Offer {
	var out []Offer
	for _, o := range b.offers {
		if !o.Expired(now) {
			out = append(out, o)
		}
	}
	return out
}

// Prune drops expired offers and returns how many were removed.
func (b *Board) Prune(now time.Time) int {
	kept := b.offers[:0]
	for _, o := range b.offers {
		if !o.Expired(now) {
			kept = append(kept, o)
		}
	}
	removed := len(b.offers) - len(kept)
	b.offers = kept
	return removed
}

// IsAvailable reports whether the player could accept the offer right now.
func (b *Board) IsAvailable(o Offer, p Player, standing float64, now time.Time) bool {
	return !o.Expired(now) && o.MeetsRequirements(p, standing)
}

// Accept removes the offer from the board and records it in the player's
// mission log. The board is untouched on any failure.
func (b *Board) Accept(now time.Time, p Player, offerID string, standing float64) (Offer, error) {
	idx := -1
	for i, o := range b.offers {
		if o.ID == offerID {
			idx = i
			break
		}
	}
	if idx < 0 || b.offers[idx].Expired(now) {
		return Offer{}, fmt.Errorf("accept %q: %w", offerID, ErrNotFound)
	}

	offer := b.offers[idx]
	if !offer.MeetsRequirements(p, standing) {
		return Offer{}, fmt.Errorf("accept %q: %w", offerID, ErrRequirementsNotMet)
	}

	b.offers = append(b.offers[:idx], b.offers[idx+1:]...)
	b.lastAccepted = now
	p.AddMission(offer.ID)
	return offer, nil
}

// Regenerate refills an empty board once the acceptance cooldown has
// elapsed. The roll is scaled by the configured weight and the tick length
// so boards refill at roughly the same real-time rate regardless of tick
// rate. Returns the number of offers created.
func (b *Board) Regenerate(now time.Time, dt time.Duration, rng *rand.Rand) int {
	if len(b.offers) > 0 || b.weight <= 0 {
		return 0
	}
	if !b.lastAccepted.IsZero() && now.Sub(b.lastAccepted) < b.cooldown {
		return 0
	}
	if rng.Float64() >= b.weight*dt.Seconds() {
		return 0
	}

	before := len(b.offers)
	b.Populate(now, rng)
	return len(b.offers) - before
}

// Restore overwrites the offer pool from a world snapshot.
func (b *Board) Restore(offers []Offer, lastAccepted time.Time) {
	b.offers = append(b.offers[:0], offers...)
	b.lastAccepted = lastAccepted
}

// LastAccepted returns the most recent acceptance time, zero if none.
func (b *Board) LastAccepted() time.Time { return b.lastAccepted }
