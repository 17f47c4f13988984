package shop

import (
	"errors"
	"fmt"
)

// Pricing rules.
const (
	// SellPriceRatio is the fraction of base value paid out when a player
	// sells to an NPC.
	SellPriceRatio = 0.6
	// ResaleMarkup is applied over the sell price when a bought-back item is
	// put up for resale.
	ResaleMarkup = 1.5
)

// Transaction failures.
var (
	ErrNotFound          = errors.New("item not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPlayerLacksItem   = errors.New("player lacks item")
)

// Item is one shop inventory entry. Quantity never goes negative.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    float64  `json:"price"` // unit price before the NPC modifier
	Quantity int      `json:"quantity"`
	Rarity   string   `json:"rarity,omitempty"`
}

// Player is the collaborator view a shop transaction needs.
type Player interface {
	Credits() float64
	Deposit(amount float64)
	Withdraw(amount float64) error
	AddItem(itemID string, qty int)
	RemoveItem(itemID string, qty int) bool
	HasItem(itemID string, qty int) bool
}

// Receipt reports a completed transaction.
type Receipt struct {
	ItemID   string
	Name     string
	Quantity int
	Total    float64 // credits moved: debit on buy, credit on sell
}

// Ledger is one NPC's shop inventory. The price modifier scales every
// quoted buy price.
type Ledger struct {
	items    []*Item // ordered for stable listings
	modifier float64
}

// NewLedger stocks a ledger from catalog templates for the given
// categories. modifier <= 0 falls back to 1.0.
func NewLedger(modifier float64, sells []Category) *Ledger {
	if modifier <= 0 {
		modifier = 1.0
	}
	l := &Ledger{modifier: modifier}
	for _, cat := range sells {
		for _, t := range TemplatesFor(cat) {
			l.items = append(l.items, &Item{
				ID:       t.ID,
				Name:     t.Name,
				Category: t.Category,
				Price:    t.BasePrice,
				Quantity: t.Stock,
				Rarity:   t.Rarity,
			})
		}
	}
	return l
}

// Modifier returns the NPC price modifier.
func (l *Ledger) Modifier() float64 { return l.modifier }

// Items lists inventory entries, optionally filtered by category. Pass ""
// for all. Entries are copies; mutation goes through Buy/Sell.
func (l *Ledger) Items(category Category) []Item {
	var out []Item
	for _, it := range l.items {
		if category != "" && it.Category != category {
			continue
		}
		out = append(out, *it)
	}
	return out
}

// Stocked reports whether any entry has quantity > 0.
func (l *Ledger) Stocked() bool {
	for _, it := range l.items {
		if it.Quantity > 0 {
			return true
		}
	}
	return false
}

// Quote returns the total buy price for qty units of an item.
func (l *Ledger) Quote(itemID string, qty int) (float64, error) {
	if qty < 1 {
		return 0, fmt.Errorf("quote %q: %w", itemID, ErrInvalidQuantity)
	}
	it := l.find(itemID)
	if it == nil {
		return 0, fmt.Errorf("quote %q: %w", itemID, ErrNotFound)
	}
	return it.Price * l.modifier * float64(qty), nil
}

// Buy sells qty units of an item to the player. All-or-nothing: on any
// failure neither the shop nor the player is mutated.
func (l *Ledger) Buy(p Player, itemID string, qty int) (Receipt, error) {
	if qty < 1 {
		return Receipt{}, fmt.Errorf("buy %q: %w", itemID, ErrInvalidQuantity)
	}
	it := l.find(itemID)
	if it == nil {
		return Receipt{}, fmt.Errorf("buy %q: %w", itemID, ErrNotFound)
	}
	if qty > it.Quantity {
		return Receipt{}, fmt.Errorf("buy %d of %q (%d in stock): %w", qty, itemID, it.Quantity, ErrInsufficientStock)
	}

	total := it.Price * l.modifier * float64(qty)
	if p.Credits() < total {
		return Receipt{}, fmt.Errorf("buy %q for %.2f: %w", itemID, total, ErrInsufficientFunds)
	}
	if err := p.Withdraw(total); err != nil {
		return Receipt{}, fmt.Errorf("buy %q: %w", itemID, err)
	}

	it.Quantity -= qty
	p.AddItem(itemID, qty)

	return Receipt{ItemID: it.ID, Name: it.Name, Quantity: qty, Total: total}, nil
}

// Sell buys qty units of an item from the player at SellPriceRatio of the
// catalog base value. The bought stock is merged into an existing entry or
// listed fresh at a ResaleMarkup over the sell price under CategoryBought.
func (l *Ledger) Sell(p Player, itemID string, qty int) (Receipt, error) {
	if qty < 1 {
		return Receipt{}, fmt.Errorf("sell %q: %w", itemID, ErrInvalidQuantity)
	}
	if !p.HasItem(itemID, qty) {
		return Receipt{}, fmt.Errorf("sell %d of %q: %w", qty, itemID, ErrPlayerLacksItem)
	}

	base, ok := BaseValue(itemID)
	if !ok {
		base = DefaultBaseValue
	}
	sellPrice := base * SellPriceRatio
	total := sellPrice * float64(qty)

	if !p.RemoveItem(itemID, qty) {
		return Receipt{}, fmt.Errorf("sell %d of %q: %w", qty, itemID, ErrPlayerLacksItem)
	}
	p.Deposit(total)

	if it := l.find(itemID); it != nil {
		it.Quantity += qty
	} else {
		l.items = append(l.items, &Item{
			ID:       itemID,
			Name:     displayName(itemID),
			Category: CategoryBought,
			Price:    sellPrice * ResaleMarkup,
			Quantity: qty,
		})
	}

	name := displayName(itemID)
	return Receipt{ItemID: itemID, Name: name, Quantity: qty, Total: total}, nil
}

// Restore overwrites the inventory, used when loading a world snapshot.
func (l *Ledger) Restore(items []Item) {
	l.items = l.items[:0]
	for _, it := range items {
		copied := it
		if copied.Quantity < 0 {
			copied.Quantity = 0
		}
		l.items = append(l.items, &copied)
	}
}

func (l *Ledger) find(itemID string) *Item {
	for _, it := range l.items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// displayName resolves a catalog name, falling back to the raw id.
func displayName(itemID string) string {
	for _, templates := range catalog {
		for _, t := range templates {
			if t.ID == itemID {
				return t.Name
			}
		}
	}
	return itemID
}
