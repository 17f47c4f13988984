package shop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPlayer is a minimal wallet-and-bag implementation of Player.
type testPlayer struct {
	credits float64
	items   map[string]int
}

func newTestPlayer(credits float64) *testPlayer {
	return &testPlayer{credits: credits, items: make(map[string]int)}
}

func (p *testPlayer) Credits() float64       { return p.credits }
func (p *testPlayer) Deposit(amount float64) { p.credits += amount }

func (p *testPlayer) Withdraw(amount float64) error {
	if amount > p.credits {
		return errors.New("insufficient credits")
	}
	p.credits -= amount
	return nil
}

func (p *testPlayer) AddItem(itemID string, qty int) { p.items[itemID] += qty }

func (p *testPlayer) RemoveItem(itemID string, qty int) bool {
	if p.items[itemID] < qty {
		return false
	}
	p.items[itemID] -= qty
	return true
}

func (p *testPlayer) HasItem(itemID string, qty int) bool {
	return p.items[itemID] >= qty
}

func TestNewLedgerStocksFromCatalog(t *testing.T) {
	l := NewLedger(1.0, []Category{CategoryConsumables})

	items := l.Items("")
	require.NotEmpty(t, items)
	for _, it := range items {
		assert.Equal(t, CategoryConsumables, it.Category)
		assert.Greater(t, it.Quantity, 0)
	}
	assert.True(t, l.Stocked())
}

func TestNewLedgerModifierFallback(t *testing.T) {
	l := NewLedger(0, nil)
	assert.Equal(t, 1.0, l.Modifier())

	l = NewLedger(-2, nil)
	assert.Equal(t, 1.0, l.Modifier())
}

func TestBuy(t *testing.T) {
	l := NewLedger(1.0, []Category{CategoryConsumables})
	p := newTestPlayer(100)

	// med_stim has base price 40.
	receipt, err := l.Buy(p, "med_stim", 2)
	require.NoError(t, err)
	assert.Equal(t, "med_stim", receipt.ItemID)
	assert.Equal(t, "Medical Stim", receipt.Name)
	assert.Equal(t, 2, receipt.Quantity)
	assert.Equal(t, 80.0, receipt.Total)

	assert.Equal(t, 20.0, p.Credits())
	assert.True(t, p.HasItem("med_stim", 2))

	items := l.Items(CategoryConsumables)
	for _, it := range items {
		if it.ID == "med_stim" {
			assert.Equal(t, 18, it.Quantity)
		}
	}
}

func TestBuyAppliesPriceModifier(t *testing.T) {
	l := NewLedger(1.5, []Category{CategoryConsumables})
	p := newTestPlayer(1000)

	receipt, err := l.Buy(p, "med_stim", 1)
	require.NoError(t, err)
	assert.Equal(t, 60.0, receipt.Total)
}

func TestBuyFailuresLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		credits float64
		itemID  string
		qty     int
		wantErr error
	}{
		{"zero quantity", 1000, "med_stim", 0, ErrInvalidQuantity},
		{"negative quantity", 1000, "med_stim", -3, ErrInvalidQuantity},
		{"unknown item", 1000, "phase_cannon", 1, ErrNotFound},
		{"not enough stock", 100000, "quantum_core", 2, ErrInsufficientStock},
		{"not enough credits", 100, "quantum_core", 1, ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(1.0, []Category{CategoryConsumables, CategoryTech})
			p := newTestPlayer(tt.credits)
			before := l.Items("")

			_, err := l.Buy(p, tt.itemID, tt.qty)
			require.ErrorIs(t, err, tt.wantErr)

			// All-or-nothing: no partial mutation on either side.
			assert.Equal(t, tt.credits, p.Credits())
			assert.Empty(t, p.items)
			assert.Equal(t, before, l.Items(""))
		})
	}
}

func TestSellMergesIntoExistingStock(t *testing.T) {
	l := NewLedger(1.0, []Category{CategoryConsumables})
	p := newTestPlayer(0)
	p.AddItem("med_stim", 3)

	receipt, err := l.Sell(p, "med_stim", 2)
	require.NoError(t, err)

	// Sell price is 60% of the 40-credit base value.
	assert.Equal(t, 48.0, receipt.Total)
	assert.Equal(t, 48.0, p.Credits())
	assert.True(t, p.HasItem("med_stim", 1))
	assert.False(t, p.HasItem("med_stim", 2))

	for _, it := range l.Items(CategoryConsumables) {
		if it.ID == "med_stim" {
			assert.Equal(t, 22, it.Quantity)
			assert.Equal(t, 40.0, it.Price, "merged stock keeps its listed price")
		}
	}
}

func TestSellListsBuybackForResale(t *testing.T) {
	l := NewLedger(1.0, []Category{CategoryWeapons})
	p := newTestPlayer(0)
	p.AddItem("med_stim", 1)

	receipt, err := l.Sell(p, "med_stim", 1)
	require.NoError(t, err)
	assert.Equal(t, 24.0, receipt.Total)

	bought := l.Items(CategoryBought)
	require.Len(t, bought, 1)
	assert.Equal(t, "med_stim", bought[0].ID)
	assert.Equal(t, 1, bought[0].Quantity)
	// Resale lists at 1.5x the sell price: 40 * 0.6 * 1.5.
	assert.Equal(t, 36.0, bought[0].Price)
}

func TestSellUnknownItemUsesDefaultBaseValue(t *testing.T) {
	l := NewLedger(1.0, nil)
	p := newTestPlayer(0)
	p.AddItem("alien_widget", 1)

	receipt, err := l.Sell(p, "alien_widget", 1)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseValue*SellPriceRatio, receipt.Total)

	bought := l.Items(CategoryBought)
	require.Len(t, bought, 1)
	assert.Equal(t, "alien_widget", bought[0].Name, "no catalog name, id is used")
}

func TestSellRequiresOwnership(t *testing.T) {
	l := NewLedger(1.0, nil)
	p := newTestPlayer(50)

	_, err := l.Sell(p, "med_stim", 1)
	require.ErrorIs(t, err, ErrPlayerLacksItem)
	assert.Equal(t, 50.0, p.Credits())

	_, err = l.Sell(p, "med_stim", 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

// Buying back what you just bought costs the spread, not zero.
func TestBuyThenSellRoundTrip(t *testing.T) {
	l := NewLedger(1.0, []Category{CategoryConsumables})
	p := newTestPlayer(100)

	_, err := l.Buy(p, "med_stim", 1)
	require.NoError(t, err)
	_, err = l.Sell(p, "med_stim", 1)
	require.NoError(t, err)

	// Bought at 40, sold back at 24.
	assert.Equal(t, 84.0, p.Credits())
	assert.False(t, p.HasItem("med_stim", 1))
}

func TestQuote(t *testing.T) {
	l := NewLedger(1.1, []Category{CategoryWeapons})

	total, err := l.Quote("pulse_pistol", 2)
	require.NoError(t, err)
	assert.InDelta(t, 550.0, total, 1e-9)

	_, err = l.Quote("pulse_pistol", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = l.Quote("nonexistent", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStockedIgnoresEmptyEntries(t *testing.T) {
	l := NewLedger(1.0, nil)
	assert.False(t, l.Stocked())

	l.Restore([]Item{{ID: "a", Quantity: 0}})
	assert.False(t, l.Stocked())

	l.Restore([]Item{{ID: "a", Quantity: 0}, {ID: "b", Quantity: 2}})
	assert.True(t, l.Stocked())
}

func TestRestoreClampsNegativeQuantity(t *testing.T) {
	l := NewLedger(1.0, nil)
	l.Restore([]Item{{ID: "a", Quantity: -4}})

	items := l.Items("")
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Quantity)
}
