// Package shop implements the priced, quantity-tracked inventory an NPC
// trades from.
package shop

// Category is the closed set of item category tags. Definition records
// resolve their category strings through ParseCategory; there is no
// free-form category branching.
type Category string

const (
	CategoryWeapons     Category = "weapons"
	CategoryArmor       Category = "armor"
	CategoryConsumables Category = "consumables"
	CategoryMaterials   Category = "materials"
	CategoryTech        Category = "tech"
	CategoryContraband  Category = "contraband"

	// CategoryBought holds items the NPC bought back from players.
	CategoryBought Category = "bought"
)

// DefaultBaseValue is used when an item has no catalog entry, e.g. reselling
// an item minted by another NPC's buyback. Missing data degrades to a cheap
// resale rather than a failed transaction.
const DefaultBaseValue = 10.0

// Template describes one stockable item: catalog identity, base price and
// the quantity an NPC opens with.
type Template struct {
	ID        string
	Name      string
	Category  Category
	BasePrice float64
	Rarity    string
	Stock     int
}

var catalog = buildCatalog()

func buildCatalog() map[Category][]Template {
	templates := []Template{
		{ID: "pulse_pistol", Name: "Pulse Pistol", Category: CategoryWeapons, BasePrice: 250, Rarity: "common", Stock: 5},
		{ID: "scatter_carbine", Name: "Scatter Carbine", Category: CategoryWeapons, BasePrice: 600, Rarity: "uncommon", Stock: 3},
		{ID: "mono_blade", Name: "Monofilament Blade", Category: CategoryWeapons, BasePrice: 1400, Rarity: "rare", Stock: 1},

		{ID: "flak_vest", Name: "Flak Vest", Category: CategoryArmor, BasePrice: 180, Rarity: "common", Stock: 6},
		{ID: "ablative_plate", Name: "Ablative Plating", Category: CategoryArmor, BasePrice: 520, Rarity: "uncommon", Stock: 3},

		{ID: "med_stim", Name: "Medical Stim", Category: CategoryConsumables, BasePrice: 40, Rarity: "common", Stock: 20},
		{ID: "ration_pack", Name: "Ration Pack", Category: CategoryConsumables, BasePrice: 12, Rarity: "common", Stock: 30},
		{ID: "booster_shot", Name: "Reflex Booster", Category: CategoryConsumables, BasePrice: 95, Rarity: "uncommon", Stock: 8},

		{ID: "scrap_alloy", Name: "Scrap Alloy", Category: CategoryMaterials, BasePrice: 8, Rarity: "common", Stock: 50},
		{ID: "refined_ore", Name: "Refined Ore", Category: CategoryMaterials, BasePrice: 35, Rarity: "common", Stock: 25},
		{ID: "exotic_isotope", Name: "Exotic Isotope", Category: CategoryMaterials, BasePrice: 400, Rarity: "rare", Stock: 4},

		{ID: "nav_chip", Name: "Navigation Chip", Category: CategoryTech, BasePrice: 150, Rarity: "common", Stock: 10},
		{ID: "sensor_array", Name: "Sensor Array", Category: CategoryTech, BasePrice: 750, Rarity: "uncommon", Stock: 2},
		{ID: "quantum_core", Name: "Quantum Core", Category: CategoryTech, BasePrice: 3200, Rarity: "rare", Stock: 1},

		{ID: "spice_crate", Name: "Unmarked Spice Crate", Category: CategoryContraband, BasePrice: 900, Rarity: "uncommon", Stock: 2},
		{ID: "jammer_rig", Name: "Transponder Jammer", Category: CategoryContraband, BasePrice: 1800, Rarity: "rare", Stock: 1},
	}

	byCategory := make(map[Category][]Template)
	for _, t := range templates {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}
	return byCategory
}

// ParseCategory resolves a config tag to a Category. Resale-only
// CategoryBought is not a stockable tag.
func ParseCategory(tag string) (Category, bool) {
	switch Category(tag) {
	case CategoryWeapons, CategoryArmor, CategoryConsumables,
		CategoryMaterials, CategoryTech, CategoryContraband:
		return Category(tag), true
	default:
		return "", false
	}
}

// TemplatesFor returns the stock templates for a category.
func TemplatesFor(cat Category) []Template {
	return catalog[cat]
}

// BaseValue returns the catalog base price for an item id. ok is false for
// items with no catalog entry.
func BaseValue(itemID string) (float64, bool) {
	for _, templates := range catalog {
		for _, t := range templates {
			if t.ID == itemID {
				return t.BasePrice, true
			}
		}
	}
	return 0, false
}
