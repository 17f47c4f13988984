package npc

import (
	"fmt"
	"math"

	"github.com/jwebster45206/npc-engine/pkg/actor"
	"github.com/jwebster45206/npc-engine/pkg/mission"
	"github.com/jwebster45206/npc-engine/pkg/relationship"
	"github.com/jwebster45206/npc-engine/pkg/shop"
)

// Configuration defaults applied by ApplyDefaults.
const (
	DefaultPriceModifier       = 1.0
	DefaultMissionWeight       = 0.3
	DefaultMissionCooldownSecs = 300
	DefaultInteractionRadius   = 200.0
	DefaultWanderRadius        = 50.0
	DefaultConversationSecs    = 30
)

// ValidationError describes a malformed definition record. Loading is
// independent per record: the manager logs and skips a bad definition
// without aborting the rest.
type ValidationError struct {
	ID      string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("npc definition: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("npc definition %q: %s: %s", e.ID, e.Field, e.Message)
}

// Definition is the external NPC definition record. Every recognized key is
// enumerated here; the validator rejects unknown fields at load time.
type Definition struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Archetype   string `json:"archetype,omitempty"`
	Faction     string `json:"faction,omitempty"`

	Location      LocationConfig      `json:"location"`
	Personality   PersonalityConfig   `json:"personality"`
	Shop          ShopConfig          `json:"shop"`
	Missions      MissionsConfig      `json:"missions"`
	Relationships RelationshipsConfig `json:"relationships"`
	AIBehavior    AIBehaviorConfig    `json:"ai_behavior"`
}

type LocationConfig struct {
	System   string         `json:"system"`
	Station  string         `json:"station,omitempty"`
	Position actor.Position `json:"position"`
}

type PersonalityConfig struct {
	Trait       string `json:"trait,omitempty"`
	Disposition string `json:"disposition,omitempty"`
	Greeting    string `json:"greeting,omitempty"` // optional neutral-greeting override
}

type ShopConfig struct {
	Sells         []string `json:"sells,omitempty"`
	Buys          []string `json:"buys,omitempty"`
	PriceModifier float64  `json:"price_modifier,omitempty"`
}

type MissionsConfig struct {
	Offers          []string `json:"offers,omitempty"`
	Weight          float64  `json:"weight,omitempty"`
	CooldownSeconds int      `json:"cooldown_seconds,omitempty"`
}

type RelationshipsConfig struct {
	InitialStanding float64 `json:"initial_standing,omitempty"`
}

type AIBehaviorConfig struct {
	DailyRoutine                string  `json:"daily_routine,omitempty"`
	InteractionRadius           float64 `json:"interaction_radius,omitempty"`
	WanderRadius                float64 `json:"wander_radius,omitempty"`
	ConversationDurationSeconds int     `json:"conversation_duration_seconds,omitempty"`
}

// ApplyDefaults fills zero-valued optional fields with their documented
// defaults. Returns the definition for chaining.
func (d Definition) ApplyDefaults() Definition {
	if d.DisplayName == "" {
		d.DisplayName = d.ID
	}
	if d.Shop.PriceModifier == 0 {
		d.Shop.PriceModifier = DefaultPriceModifier
	}
	if d.Missions.Weight == 0 {
		d.Missions.Weight = DefaultMissionWeight
	}
	if d.Missions.CooldownSeconds == 0 {
		d.Missions.CooldownSeconds = DefaultMissionCooldownSecs
	}
	if d.AIBehavior.InteractionRadius == 0 {
		d.AIBehavior.InteractionRadius = DefaultInteractionRadius
	}
	if d.AIBehavior.WanderRadius == 0 {
		d.AIBehavior.WanderRadius = DefaultWanderRadius
	}
	if d.AIBehavior.ConversationDurationSeconds == 0 {
		d.AIBehavior.ConversationDurationSeconds = DefaultConversationSecs
	}
	return d
}

// Validate checks the record after defaults. It returns a *ValidationError
// naming the first offending field.
func (d Definition) Validate() error {
	if d.ID == "" {
		return &ValidationError{Field: "id", Message: "required"}
	}
	if d.Location.System == "" {
		return &ValidationError{ID: d.ID, Field: "location.system", Message: "required"}
	}
	for _, tag := range d.Shop.Sells {
		if _, ok := shop.ParseCategory(tag); !ok {
			return &ValidationError{ID: d.ID, Field: "shop.sells", Message: fmt.Sprintf("unknown category %q", tag)}
		}
	}
	for _, tag := range d.Shop.Buys {
		if _, ok := shop.ParseCategory(tag); !ok {
			return &ValidationError{ID: d.ID, Field: "shop.buys", Message: fmt.Sprintf("unknown category %q", tag)}
		}
	}
	if d.Shop.PriceModifier <= 0 {
		return &ValidationError{ID: d.ID, Field: "shop.price_modifier", Message: "must be positive"}
	}
	for _, tag := range d.Missions.Offers {
		if !mission.KnownType(tag) {
			return &ValidationError{ID: d.ID, Field: "missions.offers", Message: fmt.Sprintf("unknown mission type %q", tag)}
		}
	}
	if d.Missions.Weight < 0 || d.Missions.Weight > 1 {
		return &ValidationError{ID: d.ID, Field: "missions.weight", Message: "must be within [0, 1]"}
	}
	if d.Missions.CooldownSeconds < 0 {
		return &ValidationError{ID: d.ID, Field: "missions.cooldown_seconds", Message: "must not be negative"}
	}
	if s := d.Relationships.InitialStanding; math.IsNaN(s) || s < relationship.MinStanding || s > relationship.MaxStanding {
		return &ValidationError{ID: d.ID, Field: "relationships.initial_standing", Message: "must be within [-100, 100]"}
	}
	if d.AIBehavior.InteractionRadius <= 0 {
		return &ValidationError{ID: d.ID, Field: "ai_behavior.interaction_radius", Message: "must be positive"}
	}
	if d.AIBehavior.WanderRadius < 0 {
		return &ValidationError{ID: d.ID, Field: "ai_behavior.wander_radius", Message: "must not be negative"}
	}
	if d.AIBehavior.ConversationDurationSeconds <= 0 {
		return &ValidationError{ID: d.ID, Field: "ai_behavior.conversation_duration_seconds", Message: "must be positive"}
	}
	return nil
}

// sellCategories resolves the configured sell tags. Validate has already
// rejected unknown tags.
func (d Definition) sellCategories() []shop.Category {
	out := make([]shop.Category, 0, len(d.Shop.Sells))
	for _, tag := range d.Shop.Sells {
		if cat, ok := shop.ParseCategory(tag); ok {
			out = append(out, cat)
		}
	}
	return out
}
