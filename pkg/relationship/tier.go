// Package relationship tracks per-player standing with an NPC and maps it
// onto named tiers.
package relationship

// Tier is a named band of the standing value. Tiers are ordered: comparison
// operators are meaningful (TierHostile < TierNeutral).
type Tier int

const (
	TierHated Tier = iota
	TierHostile
	TierUnfriendly
	TierNeutral
	TierFriendly
	TierRespected
	TierHonored
	TierRevered
)

// Standing bounds and tier breakpoints.
const (
	MinStanding = -100.0
	MaxStanding = 100.0

	reveredAt    = 100.0
	honoredAt    = 75.0
	respectedAt  = 50.0
	friendlyAt   = 25.0
	neutralAt    = 0.0
	unfriendlyAt = -25.0
	hostileAt    = -50.0
)

func (t Tier) String() string {
	switch t {
	case TierHated:
		return "hated"
	case TierHostile:
		return "hostile"
	case TierUnfriendly:
		return "unfriendly"
	case TierNeutral:
		return "neutral"
	case TierFriendly:
		return "friendly"
	case TierRespected:
		return "respected"
	case TierHonored:
		return "honored"
	case TierRevered:
		return "revered"
	default:
		return "unknown"
	}
}

// TierOf maps a standing value to its tier. Total: every float maps to
// exactly one tier, and the mapping is monotonic in standing.
func TierOf(standing float64) Tier {
	switch {
	case standing >= reveredAt:
		return TierRevered
	case standing >= honoredAt:
		return TierHonored
	case standing >= respectedAt:
		return TierRespected
	case standing >= friendlyAt:
		return TierFriendly
	case standing >= neutralAt:
		return TierNeutral
	case standing >= unfriendlyAt:
		return TierUnfriendly
	case standing >= hostileAt:
		return TierHostile
	default:
		return TierHated
	}
}
