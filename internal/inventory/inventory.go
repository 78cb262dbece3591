// Package inventory holds the in-memory item collection and the pure
// projections the views render from it. The collection is the single source
// of truth for the process; every mutation is written through to the
// persistence slot before it is considered applied.
package inventory

import (
	"stash/internal/models"
)

// Saver persists the full item list after each mutation.
type Saver interface {
	Save(items []models.InventoryItem) error
}

// Collection is the ordered, append-only item list, newest first.
type Collection struct {
	items []models.InventoryItem
	saver Saver
}

// NewCollection wraps an initial item list (typically store.Load output)
// with write-through persistence.
func NewCollection(items []models.InventoryItem, saver Saver) *Collection {
	return &Collection{items: items, saver: saver}
}

// Add validates the item, prepends it, and writes the list through to the
// saver. A validation failure mutates nothing. A persistence failure is
// returned with the item already in memory; the prior persisted state is
// left as it was.
func (c *Collection) Add(item models.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	c.items = append([]models.InventoryItem{item}, c.items...)
	return c.saver.Save(c.items)
}

// Items returns a copy of the current list, newest first.
func (c *Collection) Items() []models.InventoryItem {
	out := make([]models.InventoryItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of tracked items.
func (c *Collection) Len() int { return len(c.items) }
