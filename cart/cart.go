package cart

import (
	"sync"

	"commission-catalog/models"
	"commission-catalog/utils"
)

// Cart is an ordered collection of composed commissions for one browsing
// session. Mutations are serialised; the zero value is ready to use.
type Cart struct {
	mu     sync.Mutex
	items  []models.SelectedCommission
	nextID int64
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add appends commission and returns the local id assigned to it. Local ids
// are only meaningful within this cart and are never reused.
func (c *Cart) Add(commission models.SelectedCommission) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	commission.LocalID = c.nextID
	c.items = append(c.items, commission)
	return commission.LocalID
}

// Remove drops the commission with localID. It reports whether anything was
// removed; removing an absent id is a no-op.
func (c *Cart) Remove(localID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.LocalID == localID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart. Local ids keep increasing afterwards.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the commissions in insertion order.
func (c *Cart) Items() []models.SelectedCommission {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.SelectedCommission, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of commissions in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Total sums the precomputed totals of every commission. It is recomputed on
// each call.
func (c *Cart) Total() models.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sum(c.items)
}

// Snapshot returns the items and their total under a single lock.
func (c *Cart) Snapshot() models.CartResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.SelectedCommission, len(c.items))
	copy(items, c.items)
	return models.CartResponse{Items: items, Totals: sum(c.items)}
}

func sum(items []models.SelectedCommission) models.Totals {
	var t models.Totals
	for _, item := range items {
		t.CLP += item.Totals.CLP
		t.USD += item.Totals.USD
	}
	t.USD = utils.RoundCents(t.USD)
	return t
}
