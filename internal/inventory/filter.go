package inventory

import (
	"math"
	"sort"
	"strings"
	"time"

	"stash/internal/models"
)

// Expiring-soon window, in days relative to now. Items expired up to 30 days
// ago or expiring within the next 7 days need attention.
const (
	ExpiringWindowPastDays   = -30
	ExpiringWindowFutureDays = 7
)

// daysUntil returns the day difference between now and t, rounded up so a
// partial day ahead still counts as one day.
func daysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// ExpiringSoon returns the items whose expiry falls inside the attention
// window, soonest (or most overdue) first. Items without an expiry date
// never appear.
func ExpiringSoon(items []models.InventoryItem, now time.Time) []models.InventoryItem {
	var out []models.InventoryItem
	for _, item := range items {
		if item.ExpiryDate == nil {
			continue
		}
		d := daysUntil(now, *item.ExpiryDate)
		if d >= ExpiringWindowPastDays && d <= ExpiringWindowFutureDays {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpiryDate.Before(*out[j].ExpiryDate)
	})
	return out
}

// IsExpired reports whether the item's expiry instant is strictly before now.
// Items without an expiry date never expire.
func IsExpired(item models.InventoryItem, now time.Time) bool {
	return item.ExpiryDate != nil && item.ExpiryDate.Before(now)
}

// Filter returns the items matching a case-insensitive substring query
// against name or location, restricted to the given category.
// models.CategoryAll matches every item.
func Filter(items []models.InventoryItem, query string, category models.Category) []models.InventoryItem {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.InventoryItem
	for _, item := range items {
		if category != models.CategoryAll && item.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Location), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}
