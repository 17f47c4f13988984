package dialogue

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/npc-engine/pkg/relationship"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// Graph is one NPC's dialogue content: greeting templates keyed by mood
// plus archetype-specific nodes in presentation order.
type Graph struct {
	npcName  string
	greeting string // optional override from the definition record
	nodes    []Node
}

// NewGraph builds a graph for an NPC. greetingOverride may be empty, in
// which case tier-appropriate templates are used. Extra nodes keep their
// declared order.
func NewGraph(npcName, greetingOverride string, nodes []Node) *Graph {
	return &Graph{
		npcName:  npcName,
		greeting: greetingOverride,
		nodes:    nodes,
	}
}

// NPCState is the view of the owning NPC needed to surface the shop and
// missions nodes.
type NPCState interface {
	ShopStocked() bool
	OpenOfferCount() int
}

// AvailableOptions returns the dialogue options currently open to the
// player, greeting first. Evaluation is pure and runs fresh on every call:
// tier, faction, and mission state may have changed since the last one, so
// nothing is cached.
func (g *Graph) AvailableOptions(npc NPCState, p Player, standing float64) []Node {
	tier := relationship.TierOf(standing)

	options := []Node{{
		ID:   NodeGreeting,
		Text: g.greetingText(tier),
	}}

	if npc.ShopStocked() {
		options = append(options, Node{
			ID:   NodeShop,
			Text: "Let me see your wares.",
			Next: NodeFarewell,
		})
	}
	if npc.OpenOfferCount() > 0 {
		options = append(options, Node{
			ID:   NodeMissions,
			Text: "Any work available?",
			Next: NodeFarewell,
		})
	}

	for _, n := range g.nodes {
		if evaluateWhen(n.When, p, standing) {
			options = append(options, n)
		}
	}
	return options
}

// greetingText picks the greeting for the caller's tier. An explicit
// override from the definition record wins for neutral moods; hostile and
// warm moods always use the tier template so the tone tracks standing.
func (g *Graph) greetingText(tier relationship.Tier) string {
	name := titleCaser.String(g.npcName)
	switch {
	case tier <= relationship.TierHostile:
		return fmt.Sprintf("%s eyes you coldly. \"You've got nerve showing your face here.\"", name)
	case tier >= relationship.TierFriendly:
		return fmt.Sprintf("%s smiles. \"Good to see you again, friend. What can I do for you?\"", name)
	default:
		if g.greeting != "" {
			return g.greeting
		}
		return fmt.Sprintf("%s nods. \"What do you need?\"", name)
	}
}

// Node looks up an archetype node by id.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
