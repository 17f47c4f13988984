package dialogue

func floatPtr(v float64) *float64 { return &v }

// ArchetypeNodes returns the stock node set for an archetype tag. Unknown
// archetypes get no extra nodes; the greeting/shop/missions trio still
// applies.
func ArchetypeNodes(archetype, faction string) []Node {
	switch archetype {
	case "merchant":
		return []Node{
			{
				ID:       "merchant_gossip",
				Text:     "Heard anything interesting on the trade lanes?",
				Terminal: true,
				When:     &When{MinStanding: floatPtr(25)},
			},
			{
				ID:       "merchant_discount",
				Text:     "Surely an old friend gets a better price?",
				Terminal: true,
				When:     &When{MinStanding: floatPtr(50)},
			},
		}
	case "guard":
		return []Node{
			{
				ID:       "guard_report",
				Text:     "Anything to report on station security?",
				Terminal: true,
				When:     &When{Faction: faction},
			},
			{
				ID:       "guard_patrol",
				Text:     "Mind if I tag along on your next patrol?",
				Terminal: true,
				When:     &When{MinStanding: floatPtr(50), Faction: faction},
			},
		}
	case "scientist":
		return []Node{
			{
				ID:       "scientist_research",
				Text:     "How goes the research?",
				Terminal: true,
				When:     &When{MinStanding: floatPtr(25)},
			},
			{
				ID:       "scientist_breakthrough",
				Text:     "You mentioned a breakthrough last time...",
				Terminal: true,
				When:     &When{MissionCompleted: "survey_deep_field"},
			},
		}
	case "smuggler":
		return []Node{
			{
				ID:       "smuggler_backroom",
				Text:     "I hear you deal in... specialty goods.",
				Terminal: true,
				When:     &When{MinStanding: floatPtr(50)},
			},
		}
	default:
		return nil
	}
}
