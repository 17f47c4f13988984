package dialogue

import (
	"strings"
	"testing"
)

type fakePlayer struct {
	factions  map[string]bool
	completed map[string]bool
}

func (f fakePlayer) MemberOf(faction string) bool { return f.factions[faction] }
func (f fakePlayer) HasCompletedMission(id string) bool {
	return f.completed[id]
}

type fakeNPC struct {
	stocked bool
	offers  int
}

func (f fakeNPC) ShopStocked() bool   { return f.stocked }
func (f fakeNPC) OpenOfferCount() int { return f.offers }

func TestAvailableOptionsAlwaysStartsWithGreeting(t *testing.T) {
	g := NewGraph("mara voss", "", nil)
	options := g.AvailableOptions(fakeNPC{}, fakePlayer{}, 0)

	if len(options) != 1 {
		t.Fatalf("expected only greeting, got %d options", len(options))
	}
	if options[0].ID != NodeGreeting {
		t.Errorf("first option = %s, want greeting", options[0].ID)
	}
	if !strings.Contains(options[0].Text, "Mara Voss") {
		t.Errorf("greeting should title-case the name: %q", options[0].Text)
	}
}

func TestGreetingVariesByTier(t *testing.T) {
	g := NewGraph("enzo", "", nil)

	hostile := g.AvailableOptions(fakeNPC{}, fakePlayer{}, -60)[0].Text
	neutral := g.AvailableOptions(fakeNPC{}, fakePlayer{}, 0)[0].Text
	warm := g.AvailableOptions(fakeNPC{}, fakePlayer{}, 30)[0].Text

	if hostile == neutral || neutral == warm || hostile == warm {
		t.Errorf("greetings should differ by tier:\nhostile: %q\nneutral: %q\nwarm: %q", hostile, neutral, warm)
	}
}

func TestGreetingOverrideAppliesToNeutralOnly(t *testing.T) {
	override := "The clerk waves you over."
	g := NewGraph("clerk", override, nil)

	if got := g.AvailableOptions(fakeNPC{}, fakePlayer{}, 0)[0].Text; got != override {
		t.Errorf("neutral greeting = %q, want override", got)
	}
	if got := g.AvailableOptions(fakeNPC{}, fakePlayer{}, -60)[0].Text; got == override {
		t.Error("hostile greeting should ignore the override")
	}
}

func TestShopAndMissionNodesAreConditional(t *testing.T) {
	g := NewGraph("vendor", "", nil)

	options := g.AvailableOptions(fakeNPC{stocked: true, offers: 2}, fakePlayer{}, 0)
	ids := optionIDs(options)
	if !ids[NodeShop] || !ids[NodeMissions] {
		t.Errorf("expected shop and missions nodes, got %v", ids)
	}

	options = g.AvailableOptions(fakeNPC{stocked: false, offers: 0}, fakePlayer{}, 0)
	ids = optionIDs(options)
	if ids[NodeShop] || ids[NodeMissions] {
		t.Errorf("shop/missions nodes should be absent, got %v", ids)
	}
}

func TestConditionalNodesNeverLeak(t *testing.T) {
	minStanding := 25.0
	nodes := []Node{
		{ID: "gossip", Text: "Any news?", Terminal: true, When: &When{MinStanding: &minStanding}},
		{ID: "faction_talk", Text: "Guild business?", Terminal: true, When: &When{Faction: "guild"}},
		{ID: "debrief", Text: "About that job...", Terminal: true, When: &When{MissionCompleted: "job_1"}},
		{ID: "open", Text: "Hello.", Terminal: true},
	}
	g := NewGraph("npc", "", nodes)

	tests := []struct {
		name     string
		player   fakePlayer
		standing float64
		want     []string
	}{
		{
			name:     "nothing unlocked",
			player:   fakePlayer{},
			standing: 0,
			want:     []string{"open"},
		},
		{
			name:     "standing unlocks gossip",
			player:   fakePlayer{},
			standing: 30,
			want:     []string{"gossip", "open"},
		},
		{
			name:     "faction member",
			player:   fakePlayer{factions: map[string]bool{"guild": true}},
			standing: 0,
			want:     []string{"faction_talk", "open"},
		},
		{
			name:     "mission complete",
			player:   fakePlayer{completed: map[string]bool{"job_1": true}},
			standing: 0,
			want:     []string{"debrief", "open"},
		},
		{
			name: "all unlocked",
			player: fakePlayer{
				factions:  map[string]bool{"guild": true},
				completed: map[string]bool{"job_1": true},
			},
			standing: 50,
			want:     []string{"gossip", "faction_talk", "debrief", "open"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := g.AvailableOptions(fakeNPC{}, tt.player, tt.standing)
			var got []string
			for _, n := range options {
				if n.ID != NodeGreeting {
					got = append(got, n.ID)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// Tier regressions re-lock content: evaluation is live, nothing is cached.
func TestTierRegressionRelocksNodes(t *testing.T) {
	minStanding := 25.0
	g := NewGraph("npc", "", []Node{
		{ID: "gossip", Text: "Any news?", Terminal: true, When: &When{MinStanding: &minStanding}},
	})

	if ids := optionIDs(g.AvailableOptions(fakeNPC{}, fakePlayer{}, 30)); !ids["gossip"] {
		t.Fatal("gossip should be unlocked at standing 30")
	}
	if ids := optionIDs(g.AvailableOptions(fakeNPC{}, fakePlayer{}, 10)); ids["gossip"] {
		t.Fatal("gossip should re-lock when standing drops")
	}
}

func TestArchetypeNodes(t *testing.T) {
	if nodes := ArchetypeNodes("merchant", ""); len(nodes) == 0 {
		t.Error("merchant archetype should have nodes")
	}
	if nodes := ArchetypeNodes("unknown_archetype", ""); nodes != nil {
		t.Errorf("unknown archetype should have no nodes, got %d", len(nodes))
	}
}

func optionIDs(options []Node) map[string]bool {
	ids := make(map[string]bool, len(options))
	for _, n := range options {
		ids[n.ID] = true
	}
	return ids
}
