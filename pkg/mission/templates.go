package mission

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// template describes how offers of one mission type are minted.
type template struct {
	titles       []string
	description  string
	difficulties []string
	lifetime     time.Duration
	baseReward   float64
	requirements *Requirements
}

var offerTemplates = map[string]template{
	"delivery": {
		titles: []string{
			"Priority Courier Run",
			"Sealed Cargo Transfer",
			"Medical Supply Drop",
		},
		description:  "Haul a sealed consignment to the destination station before the window closes.",
		difficulties: []string{"easy", "medium"},
		lifetime:     2 * time.Hour,
		baseReward:   400,
	},
	"bounty": {
		titles: []string{
			"Pirate Skiff Bounty",
			"Deserter Warrant",
			"Raider Suppression",
		},
		description:  "Track down the marked target and collect proof of the kill.",
		difficulties: []string{"medium", "hard"},
		lifetime:     4 * time.Hour,
		baseReward:   1200,
		requirements: &Requirements{
			MinRank: intPtr(2),
			Skills:  map[string]int{"gunnery": 2},
		},
	},
	"survey": {
		titles: []string{
			"Deep Field Survey",
			"Asteroid Composition Scan",
			"Anomaly Mapping",
		},
		description:  "Chart the target region and return the sensor logs intact.",
		difficulties: []string{"easy", "medium"},
		lifetime:     6 * time.Hour,
		baseReward:   650,
		requirements: &Requirements{
			Skills: map[string]int{"scanning": 1},
		},
	},
	"escort": {
		titles: []string{
			"Convoy Escort Detail",
			"VIP Transit Cover",
		},
		description:  "Shadow the client through contested space and keep them breathing.",
		difficulties: []string{"medium", "hard"},
		lifetime:     3 * time.Hour,
		baseReward:   900,
		requirements: &Requirements{
			MinStanding: floatPtr(25),
		},
	},
	"smuggling": {
		titles: []string{
			"No-Questions Freight",
			"Dark Lane Delivery",
		},
		description:  "Move the crate. Don't scan it, don't dock anywhere official.",
		difficulties: []string{"hard"},
		lifetime:     90 * time.Minute,
		baseReward:   2000,
		requirements: &Requirements{
			MinStanding: floatPtr(50),
		},
	},
}

var difficultyMultiplier = map[string]float64{
	"easy":   1.0,
	"medium": 1.5,
	"hard":   2.5,
}

// generateOffer mints one offer of the given type. ok is false for unknown
// type tags, which are skipped rather than failing the board.
func generateOffer(npcID, missionType string, now time.Time, rng *rand.Rand) (Offer, bool) {
	tpl, ok := offerTemplates[missionType]
	if !ok {
		return Offer{}, false
	}

	difficulty := tpl.difficulties[rng.Intn(len(tpl.difficulties))]
	reward := tpl.baseReward * difficultyMultiplier[difficulty]

	return Offer{
		ID:          uuid.NewString(),
		Title:       tpl.titles[rng.Intn(len(tpl.titles))],
		Description: tpl.description,
		Type:        missionType,
		Difficulty:  difficulty,
		Duration:    tpl.lifetime.String(),
		Reward: Reward{
			Credits:  reward,
			Standing: 2,
		},
		NPC:          npcID,
		Expiry:       now.Add(tpl.lifetime),
		Requirements: tpl.requirements,
	}, true
}

// KnownType reports whether a mission type tag has a template.
func KnownType(tag string) bool {
	_, ok := offerTemplates[tag]
	return ok
}
